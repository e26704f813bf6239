// Package inventory holds the batch-costing math for stocked ingredients.
// Like the schedule package it is pure: callers load batches, apply a
// consumption here, and persist the updated remainders themselves.
package inventory

import (
	"errors"
	"fmt"

	"github.com/tamaki/restaurant-ops-api/internal/models"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Consumption records how much of one batch a draw-down took and at what
// unit cost.
type Consumption struct {
	BatchID  uint64  `json:"batch_id"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

// ConsumeFIFO drains quantity from batches oldest-first. Batches must
// already be ordered by receipt (the repository guarantees this). It returns
// the per-batch consumptions and the batches with updated remainders; the
// input slice is not modified.
func ConsumeFIFO(batches []models.InventoryBatch, quantity float64) ([]Consumption, []models.InventoryBatch, error) {
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("quantity must be positive, got %v", quantity)
	}
	if TotalRemaining(batches) < quantity {
		return nil, nil, ErrInsufficientStock
	}

	updated := make([]models.InventoryBatch, len(batches))
	copy(updated, batches)

	var consumptions []Consumption
	left := quantity
	for i := range updated {
		if left <= 0 {
			break
		}
		take := updated[i].Remaining
		if take > left {
			take = left
		}
		if take <= 0 {
			continue
		}
		updated[i].Remaining -= take
		left -= take
		consumptions = append(consumptions, Consumption{
			BatchID:  updated[i].ID,
			Quantity: take,
			UnitCost: updated[i].UnitCost,
		})
	}

	return consumptions, updated, nil
}

// Cost totals the cost of a set of consumptions.
func Cost(consumptions []Consumption) float64 {
	var total float64
	for _, c := range consumptions {
		total += c.Quantity * c.UnitCost
	}
	return total
}

// TotalRemaining sums the stock left across batches.
func TotalRemaining(batches []models.InventoryBatch) float64 {
	var total float64
	for _, b := range batches {
		total += b.Remaining
	}
	return total
}

// WeightedAverageCost is the average unit cost of the stock on hand,
// weighted by each batch's remaining quantity. Zero stock costs zero.
func WeightedAverageCost(batches []models.InventoryBatch) float64 {
	var quantity, value float64
	for _, b := range batches {
		quantity += b.Remaining
		value += b.Remaining * b.UnitCost
	}
	if quantity == 0 {
		return 0
	}
	return value / quantity
}
