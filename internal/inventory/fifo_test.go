package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamaki/restaurant-ops-api/internal/models"
)

func testBatches() []models.InventoryBatch {
	received := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return []models.InventoryBatch{
		{ID: 1, ItemID: 1, Quantity: 10, Remaining: 10, UnitCost: 2.0, ReceivedAt: received},
		{ID: 2, ItemID: 1, Quantity: 10, Remaining: 10, UnitCost: 3.0, ReceivedAt: received.Add(24 * time.Hour)},
		{ID: 3, ItemID: 1, Quantity: 5, Remaining: 5, UnitCost: 4.0, ReceivedAt: received.Add(48 * time.Hour)},
	}
}

func TestConsumeFIFO_DrainsOldestFirst(t *testing.T) {
	consumptions, updated, err := ConsumeFIFO(testBatches(), 12)
	require.NoError(t, err)

	require.Len(t, consumptions, 2)
	assert.Equal(t, uint64(1), consumptions[0].BatchID)
	assert.Equal(t, 10.0, consumptions[0].Quantity)
	assert.Equal(t, uint64(2), consumptions[1].BatchID)
	assert.Equal(t, 2.0, consumptions[1].Quantity)

	assert.Equal(t, 0.0, updated[0].Remaining)
	assert.Equal(t, 8.0, updated[1].Remaining)
	assert.Equal(t, 5.0, updated[2].Remaining)

	// 10 @ 2.00 + 2 @ 3.00
	assert.InDelta(t, 26.0, Cost(consumptions), 1e-9)
}

func TestConsumeFIFO_DoesNotMutateInput(t *testing.T) {
	batches := testBatches()
	_, _, err := ConsumeFIFO(batches, 12)
	require.NoError(t, err)

	assert.Equal(t, 10.0, batches[0].Remaining)
	assert.Equal(t, 10.0, batches[1].Remaining)
}

func TestConsumeFIFO_SkipsEmptyBatches(t *testing.T) {
	batches := testBatches()
	batches[0].Remaining = 0

	consumptions, _, err := ConsumeFIFO(batches, 11)
	require.NoError(t, err)
	require.Len(t, consumptions, 2)
	assert.Equal(t, uint64(2), consumptions[0].BatchID)
	assert.Equal(t, uint64(3), consumptions[1].BatchID)
}

func TestConsumeFIFO_InsufficientStock(t *testing.T) {
	_, _, err := ConsumeFIFO(testBatches(), 26)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestConsumeFIFO_RejectsNonPositiveQuantity(t *testing.T) {
	_, _, err := ConsumeFIFO(testBatches(), 0)
	require.Error(t, err)

	_, _, err = ConsumeFIFO(testBatches(), -1)
	require.Error(t, err)
}

func TestWeightedAverageCost(t *testing.T) {
	// (10*2 + 10*3 + 5*4) / 25 = 3.2
	assert.InDelta(t, 3.2, WeightedAverageCost(testBatches()), 1e-9)

	assert.Equal(t, 0.0, WeightedAverageCost(nil))

	drained := testBatches()
	for i := range drained {
		drained[i].Remaining = 0
	}
	assert.Equal(t, 0.0, WeightedAverageCost(drained))
}

func TestTotalRemaining(t *testing.T) {
	assert.Equal(t, 25.0, TotalRemaining(testBatches()))
	assert.Equal(t, 0.0, TotalRemaining(nil))
}
