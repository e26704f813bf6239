package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/dto"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/services"
)

// PeriodHandler coordinates period configuration endpoints.
type PeriodHandler struct {
	periodService *services.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService *services.PeriodService) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
	}
}

// ListPeriods returns the configured daily cycle.
func (h *PeriodHandler) ListPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods()
	if err != nil {
		apierrors.InternalError(c, "Failed to list periods")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"periods": dto.ToPeriodDTOs(periods),
	})
}

// CreatePeriod adds a period to the cycle.
func (h *PeriodHandler) CreatePeriod(c *gin.Context) {
	type CreatePeriodRequest struct {
		Code          string `json:"code" binding:"required"`
		Name          string `json:"name" binding:"required"`
		StartTime     string `json:"start_time" binding:"required"`
		EndTime       string `json:"end_time" binding:"required"`
		DisplayOrder  int    `json:"display_order"`
		IsEventDriven bool   `json:"is_event_driven"`
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	period, err := h.periodService.CreatePeriod(services.CreatePeriodInput{
		Code:          req.Code,
		Name:          req.Name,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DisplayOrder:  req.DisplayOrder,
		IsEventDriven: req.IsEventDriven,
	})
	if err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodDTO(*period))
}

// UpdatePeriod updates a period's window or ordering.
func (h *PeriodHandler) UpdatePeriod(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdatePeriodRequest struct {
		Name          *string `json:"name"`
		StartTime     *string `json:"start_time"`
		EndTime       *string `json:"end_time"`
		DisplayOrder  *int    `json:"display_order"`
		IsEventDriven *bool   `json:"is_event_driven"`
	}

	var req UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	period, err := h.periodService.UpdatePeriod(periodID, services.UpdatePeriodInput{
		Name:          req.Name,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DisplayOrder:  req.DisplayOrder,
		IsEventDriven: req.IsEventDriven,
	})
	if err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodDTO(*period))
}

// DeletePeriod removes an empty period from the cycle.
func (h *PeriodHandler) DeletePeriod(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.periodService.DeletePeriod(periodID); err != nil {
		respondPeriodError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Period deleted successfully",
	})
}

func respondPeriodError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPeriodNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPeriodCodeTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPeriodHasTasks):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrInvalidPeriodTime):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseIDParam parses the :id path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
