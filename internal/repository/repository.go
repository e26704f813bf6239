package repository

import (
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
)

// PeriodRepository defines the interface for period configuration access
type PeriodRepository interface {
	// List returns all periods ordered by display order
	List() ([]models.Period, error)

	// FindByID finds a period by ID
	FindByID(id uint64) (*models.Period, error)

	// FindByCode finds a period by its slug
	FindByCode(code string) (*models.Period, error)

	// Create creates a new period
	Create(period *models.Period) error

	// Update updates a period
	Update(period *models.Period) error

	// Delete removes a period; fails while task definitions still reference it
	Delete(id uint64) error
}

// TaskDefinitionFilter holds filtering options for listing task definitions
type TaskDefinitionFilter struct {
	Role     *models.StaffRole
	PeriodID *uint64
	Floating *bool
}

// TaskDefinitionRepository defines the interface for task definition access
type TaskDefinitionRepository interface {
	// Create creates a new task definition
	Create(def *models.TaskDefinition) error

	// FindByID finds a task definition by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TaskDefinition, error)

	// List retrieves task definitions matching the filter
	List(filter TaskDefinitionFilter) ([]models.TaskDefinition, error)

	// ListPaged retrieves a page of task definitions matching the filter
	// along with the total match count
	ListPaged(filter TaskDefinitionFilter, params utils.PaginationParams) ([]models.TaskDefinition, int64, error)

	// Update updates a task definition
	Update(def *models.TaskDefinition) error

	// Delete soft deletes a task definition
	Delete(id uint64) error
}

// SubmissionRepository defines the interface for task submission access
type SubmissionRepository interface {
	// Create creates a new submission
	Create(submission *models.TaskSubmission) error

	// FindByID finds a submission by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TaskSubmission, error)

	// FindActive finds the live submission for a task on a business date
	FindActive(taskDefinitionID uint64, businessDate string) (*models.TaskSubmission, error)

	// ListByDate lists all live submissions for a business date
	ListByDate(businessDate string) ([]models.TaskSubmission, error)

	// ListByDateRange lists live submissions between two business dates inclusive
	ListByDateRange(from, to string) ([]models.TaskSubmission, error)

	// Update updates a submission
	Update(submission *models.TaskSubmission) error

	// Delete soft deletes a submission (used when resubmitting after rejection)
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// MissingTaskRepository defines the interface for settled missing-task rows
type MissingTaskRepository interface {
	// ReplaceForDate atomically replaces all records for a business date
	ReplaceForDate(businessDate string, records []models.MissingTaskRecord) error

	// ListByDate lists records for a business date
	ListByDate(businessDate string) ([]models.MissingTaskRecord, error)

	// ListByDateRange lists records between two business dates inclusive
	ListByDateRange(from, to string) ([]models.MissingTaskRecord, error)
}

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	// CreateItem creates a new inventory item
	CreateItem(item *models.InventoryItem) error

	// FindItem finds an item by ID
	FindItem(id uint64) (*models.InventoryItem, error)

	// ListItems lists all items
	ListItems() ([]models.InventoryItem, error)

	// CreateBatch records a received batch
	CreateBatch(batch *models.InventoryBatch) error

	// ListOpenBatches lists an item's batches with stock remaining, oldest first
	ListOpenBatches(itemID uint64) ([]models.InventoryBatch, error)

	// SaveBatches persists updated remaining quantities in one transaction
	SaveBatches(batches []models.InventoryBatch) error
}
