package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamaki/restaurant-ops-api/internal/models"
)

func ptr(v uint64) *uint64 {
	return &v
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

func twoPeriodSetup() ([]models.Period, []models.TaskDefinition) {
	periods := []models.Period{
		{ID: 1, Code: "opening", Name: "Opening", StartTime: "10:00", EndTime: "10:30", DisplayOrder: 1},
		{ID: 2, Code: "lunch-prep", Name: "Lunch Prep", StartTime: "10:30", EndTime: "11:30", DisplayOrder: 2},
	}
	defs := []models.TaskDefinition{
		{ID: 1, Title: "Unlock doors", Role: models.RoleManager, PeriodID: ptr(1)},
		{ID: 2, Title: "Check reservations", Role: models.RoleManager, PeriodID: ptr(2)},
	}
	return periods, defs
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:45")
	require.NoError(t, err)
	require.Equal(t, 9*60+45, minutes)

	for _, bad := range []string{"", "9:45", "24:00", "10:60", "ab:cd", "10-30"} {
		_, err := ParseClock(bad)
		require.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestValidatePeriods(t *testing.T) {
	periods, _ := twoPeriodSetup()
	require.NoError(t, ValidatePeriods(periods))

	bad := append([]models.Period{}, periods...)
	bad[0].StartTime = "25:00"
	require.Error(t, ValidatePeriods(bad))

	dup := append([]models.Period{}, periods...)
	dup[1].Code = dup[0].Code
	require.Error(t, ValidatePeriods(dup))
}

func TestResolveCurrentPeriod_MidnightWraparound(t *testing.T) {
	periods := []models.Period{
		{ID: 1, Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "04:00", DisplayOrder: 1},
	}

	require.NotNil(t, ResolveCurrentPeriod(periods, at(23, 30)))
	require.NotNil(t, ResolveCurrentPeriod(periods, at(2, 0)))
	require.Nil(t, ResolveCurrentPeriod(periods, at(12, 0)))
}

func TestResolveCurrentPeriod_FirstMatchWinsOnOverlap(t *testing.T) {
	periods := []models.Period{
		{ID: 2, Code: "late", Name: "Late", StartTime: "10:00", EndTime: "12:00", DisplayOrder: 2},
		{ID: 1, Code: "early", Name: "Early", StartTime: "09:00", EndTime: "11:00", DisplayOrder: 1},
	}

	current := ResolveCurrentPeriod(periods, at(10, 30))
	require.NotNil(t, current)
	require.Equal(t, "early", current.Code)
}

func TestResolveCurrentPeriod_ClosedState(t *testing.T) {
	periods, _ := twoPeriodSetup()
	require.Nil(t, ResolveCurrentPeriod(periods, at(3, 0)))
	require.Nil(t, ResolveCurrentPeriod(nil, at(12, 0)))
}

func TestComputeSnapshot_Determinism(t *testing.T) {
	periods, defs := twoPeriodSetup()
	completed := map[uint64]bool{1: true}
	now := at(11, 0)

	first := ComputeSnapshot(periods, defs, completed, models.RoleManager, now)
	second := ComputeSnapshot(periods, defs, completed, models.RoleManager, now)
	assert.Equal(t, first, second)
}

func TestComputeSnapshot_EmptyInputs(t *testing.T) {
	snapshot := ComputeSnapshot(nil, nil, nil, models.RoleManager, at(11, 0))

	assert.Nil(t, snapshot.CurrentPeriod)
	assert.Equal(t, 0, snapshot.TotalDue)
	assert.Equal(t, 100, snapshot.CompletionRate)
	assert.Empty(t, snapshot.MissingTasks)
}

func TestComputeSnapshot_DuringCurrentPeriod(t *testing.T) {
	periods, defs := twoPeriodSetup()
	completed := map[uint64]bool{1: true}

	snapshot := ComputeSnapshot(periods, defs, completed, models.RoleManager, at(11, 0))

	require.NotNil(t, snapshot.CurrentPeriod)
	assert.Equal(t, "lunch-prep", snapshot.CurrentPeriod.Code)
	assert.Equal(t, 2, snapshot.TotalDue)
	assert.Equal(t, 1, snapshot.TotalCompleted)
	assert.Equal(t, 50, snapshot.CompletionRate)
	// Task 2 belongs to the current period, so it is not yet missing.
	assert.Empty(t, snapshot.MissingTasks)
}

func TestComputeSnapshot_AfterAllPeriods(t *testing.T) {
	periods, defs := twoPeriodSetup()
	completed := map[uint64]bool{1: true}

	snapshot := ComputeSnapshot(periods, defs, completed, models.RoleManager, at(12, 0))

	assert.Nil(t, snapshot.CurrentPeriod)
	assert.Equal(t, 2, snapshot.TotalDue)
	assert.Equal(t, 1, snapshot.TotalCompleted)
	assert.Equal(t, 50, snapshot.CompletionRate)
	require.Len(t, snapshot.MissingTasks, 1)
	assert.Equal(t, uint64(2), snapshot.MissingTasks[0].Task.ID)
	assert.Equal(t, "Lunch Prep", snapshot.MissingTasks[0].PeriodName)
}

func TestComputeSnapshot_ChefClosingExclusion(t *testing.T) {
	periods := []models.Period{
		{ID: 1, Code: "dinner", Name: "Dinner", StartTime: "17:00", EndTime: "22:00", DisplayOrder: 1},
		{ID: 2, Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "01:00", DisplayOrder: 2},
	}
	defs := []models.TaskDefinition{
		{ID: 1, Title: "Clean stations", Role: models.RoleChef, PeriodID: ptr(2)},
		{ID: 2, Title: "Store perishables", Role: models.RoleChef, PeriodID: ptr(2)},
		{ID: 3, Title: "Final walkthrough", Role: models.RoleChef, PeriodID: ptr(1)},
	}

	snapshot := ComputeSnapshot(periods, defs, nil, models.RoleChef, at(23, 0))

	// Closing tasks are excluded from the chef denominator entirely.
	assert.Equal(t, 1, snapshot.TotalDue)
	require.Len(t, snapshot.MissingTasks, 1)
	assert.Equal(t, uint64(3), snapshot.MissingTasks[0].Task.ID)

	managerSnapshot := ComputeSnapshot(periods, defs, nil, models.RoleManager, at(23, 0))
	assert.Equal(t, 0, managerSnapshot.TotalDue)
	assert.Equal(t, 100, managerSnapshot.CompletionRate)
}

func TestComputeSnapshot_ExcludesNoticesAndFloating(t *testing.T) {
	periods, defs := twoPeriodSetup()
	defs = append(defs,
		models.TaskDefinition{ID: 3, Title: "Allergy notice", Role: models.RoleManager, PeriodID: ptr(1), IsNotice: true},
		models.TaskDefinition{ID: 4, Title: "Restock napkins", Role: models.RoleManager, IsFloating: true},
	)

	snapshot := ComputeSnapshot(periods, defs, nil, models.RoleManager, at(12, 0))

	assert.Equal(t, 2, snapshot.TotalDue)
	for _, missing := range snapshot.MissingTasks {
		assert.False(t, missing.Task.IsNotice)
		assert.False(t, missing.Task.IsFloating)
	}
}

func TestComputeSnapshot_MissingTasksListedOnce(t *testing.T) {
	periods, defs := twoPeriodSetup()

	snapshot := ComputeSnapshot(periods, defs, nil, models.RoleManager, at(12, 0))

	seen := make(map[uint64]int)
	for _, missing := range snapshot.MissingTasks {
		seen[missing.Task.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "task %d listed %d times", id, count)
	}
}

func TestComputeSnapshot_RateBounds(t *testing.T) {
	periods, defs := twoPeriodSetup()

	for _, completed := range []map[uint64]bool{
		nil,
		{1: true},
		{1: true, 2: true},
	} {
		for _, now := range []time.Time{at(9, 0), at(10, 15), at(11, 0), at(12, 0)} {
			snapshot := ComputeSnapshot(periods, defs, completed, models.RoleManager, now)
			assert.GreaterOrEqual(t, snapshot.CompletionRate, 0)
			assert.LessOrEqual(t, snapshot.CompletionRate, 100)
			if snapshot.TotalDue == 0 {
				assert.Equal(t, 100, snapshot.CompletionRate)
			}
		}
	}
}

func TestComputeSnapshot_WrappedPeriodCurrentAfterMidnight(t *testing.T) {
	periods := []models.Period{
		{ID: 1, Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "04:00", DisplayOrder: 1},
	}
	defs := []models.TaskDefinition{
		{ID: 1, Title: "Lock safe", Role: models.RoleManager, PeriodID: ptr(1)},
	}

	// At 02:00 the wrapped period is current even though today's 22:00
	// start is still in the future, so its task is due but not missing.
	snapshot := ComputeSnapshot(periods, defs, nil, models.RoleManager, at(2, 0))

	require.NotNil(t, snapshot.CurrentPeriod)
	assert.Equal(t, 1, snapshot.TotalDue)
	assert.Empty(t, snapshot.MissingTasks)
}

func TestSettleDay(t *testing.T) {
	periods, defs := twoPeriodSetup()
	completed := map[uint64]bool{1: true}

	snapshot := SettleDay(periods, defs, completed, models.RoleManager)

	assert.Nil(t, snapshot.CurrentPeriod)
	assert.Equal(t, 2, snapshot.TotalDue)
	assert.Equal(t, 1, snapshot.TotalCompleted)
	assert.Equal(t, 50, snapshot.CompletionRate)
	require.Len(t, snapshot.MissingTasks, 1)
	assert.Equal(t, uint64(2), snapshot.MissingTasks[0].Task.ID)
}

func TestSettleDay_ChefClosingExclusion(t *testing.T) {
	periods := []models.Period{
		{ID: 1, Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "01:00", DisplayOrder: 1},
	}
	defs := []models.TaskDefinition{
		{ID: 1, Title: "Clean stations", Role: models.RoleChef, PeriodID: ptr(1)},
	}

	snapshot := SettleDay(periods, defs, nil, models.RoleChef)

	assert.Equal(t, 0, snapshot.TotalDue)
	assert.Equal(t, 100, snapshot.CompletionRate)
	assert.Empty(t, snapshot.MissingTasks)
}
