package repository

import (
	"github.com/tamaki/restaurant-ops-api/internal/database"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskDefinitionRepository is a GORM implementation of TaskDefinitionRepository
type GormTaskDefinitionRepository struct {
	db *gorm.DB
}

// NewTaskDefinitionRepository creates a new TaskDefinitionRepository
func NewTaskDefinitionRepository(db *gorm.DB) TaskDefinitionRepository {
	return &GormTaskDefinitionRepository{db: db}
}

// Create creates a new task definition
func (r *GormTaskDefinitionRepository) Create(def *models.TaskDefinition) error {
	return r.db.Create(def).Error
}

// FindByID finds a task definition by ID with optional preloading
func (r *GormTaskDefinitionRepository) FindByID(id uint64, preload ...string) (*models.TaskDefinition, error) {
	var def models.TaskDefinition
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&def, id).Error; err != nil {
		return nil, err
	}

	return &def, nil
}

// List retrieves task definitions matching the filter
func (r *GormTaskDefinitionRepository) List(filter TaskDefinitionFilter) ([]models.TaskDefinition, error) {
	var defs []models.TaskDefinition

	if err := r.filtered(filter).Preload("Period").Order("display_order, id").Find(&defs).Error; err != nil {
		return nil, err
	}

	return defs, nil
}

// ListPaged retrieves a page of task definitions matching the filter along
// with the total match count
func (r *GormTaskDefinitionRepository) ListPaged(filter TaskDefinitionFilter, params utils.PaginationParams) ([]models.TaskDefinition, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var defs []models.TaskDefinition
	if err := r.filtered(filter).
		Scopes(database.Paginate(params)).
		Preload("Period").
		Order("display_order, id").
		Find(&defs).Error; err != nil {
		return nil, 0, err
	}

	return defs, total, nil
}

func (r *GormTaskDefinitionRepository) filtered(filter TaskDefinitionFilter) *gorm.DB {
	query := r.db.Model(&models.TaskDefinition{})

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.Floating != nil {
		query = query.Where("is_floating = ?", *filter.Floating)
	}

	return query
}

// Update updates a task definition
func (r *GormTaskDefinitionRepository) Update(def *models.TaskDefinition) error {
	return r.db.Save(def).Error
}

// Delete soft deletes a task definition
func (r *GormTaskDefinitionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_definition_id = ?", id).Delete(&models.TaskSubmission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.TaskDefinition{}, id).Error
	})
}
