package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/dto"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/services"
)

// DashboardHandler serves the executive dashboard endpoints.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetHistory returns per-date, per-role completion rates for a date range.
func (h *DashboardHandler) GetHistory(c *gin.Context) {
	from, to, ok := requireRange(c)
	if !ok {
		return
	}

	entries, err := h.dashboardService.History(from, to)
	if err != nil {
		respondDashboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": entries,
	})
}

// GetMissing returns settled missing-task records, either for a single
// ?date= or for a ?from=/?to= range.
func (h *DashboardHandler) GetMissing(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		records, err := h.dashboardService.MissingRecordsForDate(date)
		if err != nil {
			respondDashboardError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"missing": dto.ToMissingTaskRecordDTOs(records),
		})
		return
	}

	from, to, ok := requireRange(c)
	if !ok {
		return
	}

	records, err := h.dashboardService.MissingRecords(from, to)
	if err != nil {
		respondDashboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"missing": dto.ToMissingTaskRecordDTOs(records),
	})
}

// ExportHistory streams the history range as an xlsx attachment.
func (h *DashboardHandler) ExportHistory(c *gin.Context) {
	from, to, ok := requireRange(c)
	if !ok {
		return
	}

	file, err := h.dashboardService.ExportHistory(from, to)
	if err != nil {
		respondDashboardError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("completion_%s_%s.xlsx", from, to)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		apierrors.InternalError(c, "Failed to write export")
		return
	}
}

func requireRange(c *gin.Context) (string, string, bool) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		apierrors.BadRequest(c, "from and to query parameters are required")
		return "", "", false
	}
	return from, to, true
}

func respondDashboardError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidDateRange) {
		apierrors.BadRequest(c, err.Error())
		return
	}
	apierrors.InternalError(c, "Internal server error")
}
