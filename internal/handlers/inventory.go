package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/inventory"
	"github.com/tamaki/restaurant-ops-api/internal/services"
)

// InventoryHandler coordinates inventory batch and costing endpoints.
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListItems returns all stocked items.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems()
	if err != nil {
		apierrors.InternalError(c, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}

// CreateItem registers a new stocked ingredient.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	type CreateItemRequest struct {
		Name string `json:"name" binding:"required"`
		Unit string `json:"unit" binding:"required"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.inventoryService.CreateItem(req.Name, req.Unit)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// AddBatch records a received lot for an item.
func (h *InventoryHandler) AddBatch(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type AddBatchRequest struct {
		Quantity   float64    `json:"quantity" binding:"required"`
		UnitCost   float64    `json:"unit_cost"`
		ReceivedAt *time.Time `json:"received_at"`
	}

	var req AddBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	receivedAt := time.Now()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	batch, err := h.inventoryService.AddBatch(itemID, req.Quantity, req.UnitCost, receivedAt)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// Consume draws down an item's stock oldest-batch-first.
func (h *InventoryHandler) Consume(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ConsumeRequest struct {
		Quantity float64 `json:"quantity" binding:"required"`
	}

	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.inventoryService.Consume(itemID, req.Quantity)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCost returns an item's stock on hand and weighted-average cost.
func (h *InventoryHandler) GetCost(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	cost, err := h.inventoryService.Cost(itemID)
	if err != nil {
		respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, cost)
}

func respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrItemNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidUnitCost):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
