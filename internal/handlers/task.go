package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/dto"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/services"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
)

// TaskHandler coordinates task definition catalog endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns task definitions, optionally filtered by role, period,
// or floating state.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{}

	if roleStr := c.Query("role"); roleStr != "" {
		role := models.StaffRole(roleStr)
		if !models.ValidRole(role) {
			apierrors.BadRequest(c, "Invalid role")
			return
		}
		input.Role = &role
	}
	if periodIDStr := c.Query("period_id"); periodIDStr != "" {
		periodID, err := strconv.ParseUint(periodIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid period_id")
			return
		}
		input.PeriodID = &periodID
	}
	if floatingStr := c.Query("floating"); floatingStr != "" {
		floating, err := strconv.ParseBool(floatingStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid floating flag")
			return
		}
		input.Floating = &floating
	}

	params := utils.GetPaginationParams(c)

	defs, total, err := h.taskService.ListTasks(input, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list task definitions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDefinitionDTOs(defs),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a single task definition.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	def, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDefinitionDTO(*def))
}

// CreateTask adds a task definition to the catalog.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title          string                `json:"title" binding:"required"`
		Description    string                `json:"description"`
		Role           models.StaffRole      `json:"role" binding:"required"`
		Kind           models.SubmissionKind `json:"kind"`
		IsNotice       bool                  `json:"is_notice"`
		IsFloating     bool                  `json:"is_floating"`
		PeriodID       *uint64               `json:"period_id"`
		DisplayOrder   int                   `json:"display_order"`
		ReviewOfTaskID *uint64               `json:"review_of_task_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	def, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Role:           req.Role,
		Kind:           req.Kind,
		IsNotice:       req.IsNotice,
		IsFloating:     req.IsFloating,
		PeriodID:       req.PeriodID,
		DisplayOrder:   req.DisplayOrder,
		ReviewOfTaskID: req.ReviewOfTaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDefinitionDTO(*def))
}

// UpdateTask updates a task definition's presentation fields.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string                `json:"title"`
		Description  *string                `json:"description"`
		Kind         *models.SubmissionKind `json:"kind"`
		DisplayOrder *int                   `json:"display_order"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	def, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Kind:         req.Kind,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDefinitionDTO(*def))
}

// DeleteTask removes a task definition and its submissions.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task definition deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTaskRoleInvalid),
		errors.Is(err, services.ErrFloatingWithPeriod),
		errors.Is(err, services.ErrBoundWithoutPeriod),
		errors.Is(err, services.ErrBadReviewLink):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskPeriodNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
