// Package schedule holds the period-window and completion-rate math shared
// by the checklist, dashboard, and rollover services. Everything here is a
// pure function of its inputs: no clock reads, no I/O, no shared state, so
// identical inputs always produce identical snapshots.
package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/models"
)

// MissingTask is a due task from an elapsed, non-current period that has no
// completed submission yet.
type MissingTask struct {
	Task       models.TaskDefinition
	PeriodCode string
	PeriodName string
}

// Snapshot is the derived completion state for one role at one instant.
// It is recomputed on demand and never persisted.
type Snapshot struct {
	CurrentPeriod  *models.Period
	TotalDue       int
	TotalCompleted int
	CompletionRate int
	MissingTasks   []MissingTask
}

// ParseClock converts an "HH:MM" wall-clock string to minutes since
// midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock string %q: want HH:MM", s)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock string %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock string %q: out of range", s)
	}
	return hour*60 + minute, nil
}

// ValidatePeriods rejects malformed period configuration. Callers run this
// at load time; the window functions below assume validated input.
func ValidatePeriods(periods []models.Period) error {
	codes := make(map[string]struct{}, len(periods))
	for _, p := range periods {
		if _, err := ParseClock(p.StartTime); err != nil {
			return fmt.Errorf("period %q start: %w", p.Code, err)
		}
		if _, err := ParseClock(p.EndTime); err != nil {
			return fmt.Errorf("period %q end: %w", p.Code, err)
		}
		if _, dup := codes[p.Code]; dup {
			return fmt.Errorf("duplicate period code %q", p.Code)
		}
		codes[p.Code] = struct{}{}
	}
	return nil
}

// ResolveCurrentPeriod returns the period whose window contains now, or nil
// when the venue is between windows ("closed"). A window whose end precedes
// its start wraps past midnight. If misconfigured periods overlap, the first
// match in display order wins.
func ResolveCurrentPeriod(periods []models.Period, now time.Time) *models.Period {
	minutes := minutesOfDay(now)
	for _, p := range sortedByDisplayOrder(periods) {
		start := clockMinutes(p.StartTime)
		end := clockMinutes(p.EndTime)
		if end < start {
			if minutes >= start || minutes < end {
				return &p
			}
		} else if minutes >= start && minutes < end {
			return &p
		}
	}
	return nil
}

// ComputeSnapshot derives the live completion state for a role.
//
// A period counts toward the denominator when it has started today or is the
// current period; its tasks count as missing only once it has started and is
// no longer current. Notices, floating tasks, and (for the chef role) the
// trailing closing period are excluded from both.
func ComputeSnapshot(periods []models.Period, defs []models.TaskDefinition, completedIDs map[uint64]bool, role models.StaffRole, now time.Time) Snapshot {
	snapshot := Snapshot{
		CompletionRate: 100,
		MissingTasks:   []MissingTask{},
	}
	snapshot.CurrentPeriod = ResolveCurrentPeriod(periods, now)

	byPeriod := groupCountable(defs, role)

	for _, p := range sortedByDisplayOrder(periods) {
		if role == models.RoleChef && p.Code == constants.PeriodCodeClosing {
			continue
		}

		start := clockMinutes(p.StartTime)
		periodStart := time.Date(now.Year(), now.Month(), now.Day(), start/60, start%60, 0, 0, now.Location())
		elapsed := !now.Before(periodStart)
		isCurrent := snapshot.CurrentPeriod != nil && snapshot.CurrentPeriod.ID == p.ID

		if !elapsed && !isCurrent {
			continue
		}

		tasks := byPeriod[p.ID]
		snapshot.TotalDue += len(tasks)
		for _, task := range tasks {
			if completedIDs[task.ID] {
				snapshot.TotalCompleted++
				continue
			}
			if elapsed && !isCurrent {
				snapshot.MissingTasks = append(snapshot.MissingTasks, MissingTask{
					Task:       task,
					PeriodCode: p.Code,
					PeriodName: p.Name,
				})
			}
		}
	}

	if snapshot.TotalDue > 0 {
		snapshot.CompletionRate = int(math.Round(float64(snapshot.TotalCompleted) / float64(snapshot.TotalDue) * 100))
	}

	return snapshot
}

// SettleDay computes the final state of a closed business date: every period
// has elapsed and none is current, so everything undone is missing. The
// rollover job and the history dashboard both use this.
func SettleDay(periods []models.Period, defs []models.TaskDefinition, completedIDs map[uint64]bool, role models.StaffRole) Snapshot {
	snapshot := Snapshot{
		CompletionRate: 100,
		MissingTasks:   []MissingTask{},
	}

	byPeriod := groupCountable(defs, role)

	for _, p := range sortedByDisplayOrder(periods) {
		if role == models.RoleChef && p.Code == constants.PeriodCodeClosing {
			continue
		}

		tasks := byPeriod[p.ID]
		snapshot.TotalDue += len(tasks)
		for _, task := range tasks {
			if completedIDs[task.ID] {
				snapshot.TotalCompleted++
				continue
			}
			snapshot.MissingTasks = append(snapshot.MissingTasks, MissingTask{
				Task:       task,
				PeriodCode: p.Code,
				PeriodName: p.Name,
			})
		}
	}

	if snapshot.TotalDue > 0 {
		snapshot.CompletionRate = int(math.Round(float64(snapshot.TotalCompleted) / float64(snapshot.TotalDue) * 100))
	}

	return snapshot
}

// groupCountable indexes a role's denominator-eligible tasks by period,
// preserving display order within each period.
func groupCountable(defs []models.TaskDefinition, role models.StaffRole) map[uint64][]models.TaskDefinition {
	byPeriod := make(map[uint64][]models.TaskDefinition)
	for _, def := range defs {
		if def.Role != role || !def.Countable() {
			continue
		}
		byPeriod[*def.PeriodID] = append(byPeriod[*def.PeriodID], def)
	}
	for id := range byPeriod {
		tasks := byPeriod[id]
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].DisplayOrder < tasks[j].DisplayOrder
		})
		byPeriod[id] = tasks
	}
	return byPeriod
}

func sortedByDisplayOrder(periods []models.Period) []models.Period {
	sorted := make([]models.Period, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// clockMinutes assumes the string passed ValidatePeriods at load time.
func clockMinutes(s string) int {
	minutes, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return minutes
}
