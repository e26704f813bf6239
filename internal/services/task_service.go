package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTaskRoleInvalid    = errors.New("unknown task role")
	ErrTaskPeriodNotFound = errors.New("task period not found")
	ErrFloatingWithPeriod = errors.New("floating tasks cannot belong to a period")
	ErrBoundWithoutPeriod = errors.New("non-floating tasks need a period")
	ErrBadReviewLink      = errors.New("review link must target a duty manager task")
)

// TaskService manages the task definition catalog.
type TaskService struct {
	taskRepo   repository.TaskDefinitionRepository
	periodRepo repository.PeriodRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskDefinitionRepository, periodRepo repository.PeriodRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		periodRepo: periodRepo,
	}
}

// ListTasksInput represents filters for listing task definitions.
type ListTasksInput struct {
	Role     *models.StaffRole
	PeriodID *uint64
	Floating *bool
}

// ListTasks returns a page of task definitions matching the filters along
// with the total match count.
func (s *TaskService) ListTasks(input ListTasksInput, params utils.PaginationParams) ([]models.TaskDefinition, int64, error) {
	defs, total, err := s.taskRepo.ListPaged(repository.TaskDefinitionFilter{
		Role:     input.Role,
		PeriodID: input.PeriodID,
		Floating: input.Floating,
	}, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list task definitions: %w", err)
	}
	return defs, total, nil
}

// GetTask returns a task definition with its period and review link.
func (s *TaskService) GetTask(id uint64) (*models.TaskDefinition, error) {
	def, err := s.taskRepo.FindByID(id, "Period", "ReviewOfTask")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task definition: %w", err)
	}
	return def, nil
}

// CreateTaskInput represents input for creating a task definition.
type CreateTaskInput struct {
	Title          string
	Description    string
	Role           models.StaffRole
	Kind           models.SubmissionKind
	IsNotice       bool
	IsFloating     bool
	PeriodID       *uint64
	DisplayOrder   int
	ReviewOfTaskID *uint64
}

// CreateTask adds a task definition to the catalog.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.TaskDefinition, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !models.ValidRole(input.Role) || input.Role == models.RoleExecutive {
		return nil, ErrTaskRoleInvalid
	}
	if err := s.validatePlacement(input.IsFloating, input.PeriodID); err != nil {
		return nil, err
	}
	if err := s.validateReviewLink(input.Role, input.ReviewOfTaskID); err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = models.KindNone
	}

	def := &models.TaskDefinition{
		Title:          input.Title,
		Description:    input.Description,
		Role:           input.Role,
		Kind:           kind,
		IsNotice:       input.IsNotice,
		IsFloating:     input.IsFloating,
		PeriodID:       input.PeriodID,
		DisplayOrder:   input.DisplayOrder,
		ReviewOfTaskID: input.ReviewOfTaskID,
	}

	if err := s.taskRepo.Create(def); err != nil {
		return nil, fmt.Errorf("failed to create task definition: %w", err)
	}

	return s.taskRepo.FindByID(def.ID, "Period", "ReviewOfTask")
}

// UpdateTaskInput represents partial updates to a task definition.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Kind         *models.SubmissionKind
	DisplayOrder *int
}

// UpdateTask updates a task definition's presentation fields. Role, period,
// and flags are fixed at creation so historical submissions stay coherent.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.TaskDefinition, error) {
	def, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task definition: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		def.Title = *input.Title
	}
	if input.Description != nil {
		def.Description = *input.Description
	}
	if input.Kind != nil {
		def.Kind = *input.Kind
	}
	if input.DisplayOrder != nil {
		def.DisplayOrder = *input.DisplayOrder
	}

	if err := s.taskRepo.Update(def); err != nil {
		return nil, fmt.Errorf("failed to update task definition: %w", err)
	}

	return s.taskRepo.FindByID(def.ID, "Period", "ReviewOfTask")
}

// DeleteTask removes a task definition and its submissions.
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task definition: %w", err)
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task definition: %w", err)
	}
	return nil
}

func (s *TaskService) validatePlacement(isFloating bool, periodID *uint64) error {
	if isFloating {
		if periodID != nil {
			return ErrFloatingWithPeriod
		}
		return nil
	}
	if periodID == nil {
		return ErrBoundWithoutPeriod
	}
	if _, err := s.periodRepo.FindByID(*periodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskPeriodNotFound
		}
		return fmt.Errorf("failed to find period: %w", err)
	}
	return nil
}

func (s *TaskService) validateReviewLink(role models.StaffRole, reviewOfTaskID *uint64) error {
	if reviewOfTaskID == nil {
		return nil
	}
	if role != models.RoleManager {
		return ErrBadReviewLink
	}
	target, err := s.taskRepo.FindByID(*reviewOfTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadReviewLink
		}
		return fmt.Errorf("failed to find review target: %w", err)
	}
	if target.Role != models.RoleDutyManager {
		return ErrBadReviewLink
	}
	return nil
}
