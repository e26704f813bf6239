package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/inventory"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrItemNameTaken   = errors.New("inventory item already exists")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidUnitCost = errors.New("unit cost cannot be negative")
)

// InventoryService manages ingredient batches and FIFO cost accounting.
type InventoryService struct {
	invRepo repository.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(invRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{
		invRepo: invRepo,
	}
}

// CreateItem registers a new stocked ingredient.
func (s *InventoryService) CreateItem(name, unit string) (*models.InventoryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("item name is required")
	}

	item := &models.InventoryItem{
		Name: name,
		Unit: unit,
	}
	if err := s.invRepo.CreateItem(item); err != nil {
		return nil, ErrItemNameTaken
	}
	return item, nil
}

// ListItems returns all stocked items.
func (s *InventoryService) ListItems() ([]models.InventoryItem, error) {
	items, err := s.invRepo.ListItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// AddBatch records a received lot for an item.
func (s *InventoryService) AddBatch(itemID uint64, quantity, unitCost float64, receivedAt time.Time) (*models.InventoryBatch, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitCost < 0 {
		return nil, ErrInvalidUnitCost
	}

	if _, err := s.invRepo.FindItem(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	batch := &models.InventoryBatch{
		ItemID:     itemID,
		Quantity:   quantity,
		Remaining:  quantity,
		UnitCost:   unitCost,
		ReceivedAt: receivedAt,
	}
	if err := s.invRepo.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return batch, nil
}

// ConsumeResult summarizes a FIFO draw-down.
type ConsumeResult struct {
	Consumptions []inventory.Consumption `json:"consumptions"`
	Quantity     float64                 `json:"quantity"`
	TotalCost    float64                 `json:"total_cost"`
	AvgUnitCost  float64                 `json:"avg_unit_cost"`
	Remaining    float64                 `json:"remaining"`
}

// Consume draws down stock oldest-batch-first and reports the blended cost
// of what was consumed.
func (s *InventoryService) Consume(itemID uint64, quantity float64) (*ConsumeResult, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.invRepo.FindItem(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	batches, err := s.invRepo.ListOpenBatches(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batches: %w", err)
	}

	consumptions, updated, err := inventory.ConsumeFIFO(batches, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.invRepo.SaveBatches(updated); err != nil {
		return nil, fmt.Errorf("failed to persist batch remainders: %w", err)
	}

	totalCost := inventory.Cost(consumptions)
	return &ConsumeResult{
		Consumptions: consumptions,
		Quantity:     quantity,
		TotalCost:    totalCost,
		AvgUnitCost:  totalCost / quantity,
		Remaining:    inventory.TotalRemaining(updated),
	}, nil
}

// StockCost reports an item's stock on hand and its weighted-average cost.
type StockCost struct {
	ItemID      uint64  `json:"item_id"`
	Remaining   float64 `json:"remaining"`
	AvgUnitCost float64 `json:"avg_unit_cost"`
	StockValue  float64 `json:"stock_value"`
}

// Cost returns an item's current stock position.
func (s *InventoryService) Cost(itemID uint64) (*StockCost, error) {
	if _, err := s.invRepo.FindItem(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	batches, err := s.invRepo.ListOpenBatches(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batches: %w", err)
	}

	remaining := inventory.TotalRemaining(batches)
	avg := inventory.WeightedAverageCost(batches)
	return &StockCost{
		ItemID:      itemID,
		Remaining:   remaining,
		AvgUnitCost: avg,
		StockValue:  remaining * avg,
	}, nil
}
