package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is a stocked ingredient tracked by the kitchen checklist.
type InventoryItem struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Unit      string         `gorm:"type:varchar(20);not null" json:"unit"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Batches []InventoryBatch `gorm:"foreignKey:ItemID" json:"batches,omitempty"`
}

// InventoryBatch is one received lot of an item. Consumption drains batches
// oldest first; Remaining reaching zero closes the batch.
type InventoryBatch struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ItemID     uint64    `gorm:"not null;index" json:"item_id"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Remaining  float64   `gorm:"not null" json:"remaining"`
	UnitCost   float64   `gorm:"not null" json:"unit_cost"`
	ReceivedAt time.Time `gorm:"not null;index" json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Item InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
