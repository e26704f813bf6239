package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/dto"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/middleware"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/services"
)

// ChecklistHandler serves the live completion snapshot and the
// period-grouped task board.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// GetSnapshot returns the completion snapshot for a role. Non-executive
// users always get their own role; executives may pass ?role=. An optional
// ?at= RFC3339 timestamp overrides "now" for historical inspection.
func (h *ChecklistHandler) GetSnapshot(c *gin.Context) {
	role, ok := h.resolveRole(c)
	if !ok {
		return
	}
	now, ok := resolveAt(c)
	if !ok {
		return
	}

	snapshot, err := h.checklistService.Snapshot(role, now)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDTO(snapshot))
}

// GetBoard returns the role's period-grouped task list with completion
// state.
func (h *ChecklistHandler) GetBoard(c *gin.Context) {
	role, ok := h.resolveRole(c)
	if !ok {
		return
	}
	now, ok := resolveAt(c)
	if !ok {
		return
	}

	board, err := h.checklistService.Board(role, now)
	if err != nil {
		apierrors.InternalError(c, "Failed to build board")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// resolveRole picks the effective role for checklist queries: the caller's
// own role, unless an executive asks for another one.
func (h *ChecklistHandler) resolveRole(c *gin.Context) (models.StaffRole, bool) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return "", false
	}

	role := user.Role
	if roleStr := c.Query("role"); roleStr != "" {
		requested := models.StaffRole(roleStr)
		if !models.ValidRole(requested) {
			apierrors.BadRequest(c, "Invalid role")
			return "", false
		}
		if requested != user.Role && user.Role != models.RoleExecutive {
			apierrors.Forbidden(c, "Only executives can view other roles")
			return "", false
		}
		role = requested
	}

	if role == models.RoleExecutive {
		apierrors.BadRequest(c, "The executive role has no checklist; pass ?role=")
		return "", false
	}

	return role, true
}

func resolveAt(c *gin.Context) (time.Time, bool) {
	atStr := c.Query("at")
	if atStr == "" {
		return time.Now(), true
	}
	at, err := time.Parse(time.RFC3339, atStr)
	if err != nil {
		apierrors.BadRequest(c, "Invalid at timestamp, want RFC3339")
		return time.Time{}, false
	}
	return at, true
}
