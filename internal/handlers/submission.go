package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/dto"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/middleware"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/services"
	"gorm.io/datatypes"
)

// SubmissionHandler coordinates task submission endpoints.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// CreateSubmission records a task completion for the current business date.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateSubmissionRequest struct {
		TaskDefinitionID uint64                `json:"task_definition_id" binding:"required"`
		Kind             models.SubmissionKind `json:"kind"`
		TextContent      string                `json:"text_content"`
		PhotoURL         string                `json:"photo_url"`
		ChecklistData    datatypes.JSON        `json:"checklist_data"`
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.Create(services.CreateSubmissionInput{
		TaskDefinitionID: req.TaskDefinitionID,
		Actor:            user,
		Kind:             req.Kind,
		TextContent:      req.TextContent,
		PhotoURL:         req.PhotoURL,
		ChecklistData:    req.ChecklistData,
		Now:              time.Now(),
	})
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

// ListSubmissions returns a business date's submissions, optionally
// filtered by role. Defaults to today's business date.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		apierrors.BadRequest(c, "date query parameter is required")
		return
	}
	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		apierrors.BadRequest(c, "Invalid date, want YYYY-MM-DD")
		return
	}

	var role *models.StaffRole
	if roleStr := c.Query("role"); roleStr != "" {
		r := models.StaffRole(roleStr)
		if !models.ValidRole(r) {
			apierrors.BadRequest(c, "Invalid role")
			return
		}
		role = &r
	}

	submissions, err := h.submissionService.ListByDate(date, role)
	if err != nil {
		apierrors.InternalError(c, "Failed to list submissions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": dto.ToSubmissionDTOs(submissions),
	})
}

// ReviewSubmission approves or rejects a duty-manager submission.
func (h *SubmissionHandler) ReviewSubmission(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	submissionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ReviewRequest struct {
		Approve *bool `json:"approve" binding:"required"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.Review(submissionID, user, *req.Approve)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

func respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoticeNotSubmittable),
		errors.Is(err, services.ErrKindMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrWrongRole),
		errors.Is(err, services.ErrReviewForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadySubmitted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotReviewable):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
