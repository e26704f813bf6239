package repository

import (
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"gorm.io/gorm"
)

// GormInventoryRepository is a GORM implementation of InventoryRepository
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &GormInventoryRepository{db: db}
}

// CreateItem creates a new inventory item
func (r *GormInventoryRepository) CreateItem(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// FindItem finds an item by ID
func (r *GormInventoryRepository) FindItem(id uint64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems lists all items
func (r *GormInventoryRepository) ListItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBatch records a received batch
func (r *GormInventoryRepository) CreateBatch(batch *models.InventoryBatch) error {
	return r.db.Create(batch).Error
}

// ListOpenBatches lists an item's batches with stock remaining, oldest first.
// FIFO consumption depends on the received_at ordering here.
func (r *GormInventoryRepository) ListOpenBatches(itemID uint64) ([]models.InventoryBatch, error) {
	var batches []models.InventoryBatch
	if err := r.db.
		Where("item_id = ? AND remaining > 0", itemID).
		Order("received_at, id").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// SaveBatches persists updated remaining quantities in one transaction
func (r *GormInventoryRepository) SaveBatches(batches []models.InventoryBatch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range batches {
			if err := tx.Model(&models.InventoryBatch{}).
				Where("id = ?", batches[i].ID).
				Update("remaining", batches[i].Remaining).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
