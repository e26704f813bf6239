package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"github.com/xuri/excelize/v2"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// HistoryEntry is one role's settled completion result for one date.
type HistoryEntry struct {
	BusinessDate   string           `json:"business_date"`
	Role           models.StaffRole `json:"role"`
	TotalDue       int              `json:"total_tasks_due"`
	TotalCompleted int              `json:"total_tasks_completed"`
	CompletionRate int              `json:"completion_rate"`
	MissingCount   int              `json:"missing_count"`
}

// DashboardService produces the executive views: completion history over a
// date range, settled missing-task records, and spreadsheet export.
type DashboardService struct {
	periodRepo     repository.PeriodRepository
	taskRepo       repository.TaskDefinitionRepository
	submissionRepo repository.SubmissionRepository
	missingRepo    repository.MissingTaskRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(periodRepo repository.PeriodRepository, taskRepo repository.TaskDefinitionRepository, submissionRepo repository.SubmissionRepository, missingRepo repository.MissingTaskRepository) *DashboardService {
	return &DashboardService{
		periodRepo:     periodRepo,
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		missingRepo:    missingRepo,
	}
}

// History recomputes per-date, per-role completion from stored submissions.
// Dates are settled with every period elapsed, so current-period grace does
// not apply retroactively.
func (s *DashboardService) History(from, to string) ([]HistoryEntry, error) {
	fromDay, toDay, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	defs, err := s.taskRepo.List(repository.TaskDefinitionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load task definitions: %w", err)
	}

	submissions, err := s.submissionRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	byDate := make(map[string][]models.TaskSubmission)
	for _, sub := range submissions {
		byDate[sub.BusinessDate] = append(byDate[sub.BusinessDate], sub)
	}

	var entries []HistoryEntry
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateLayout)
		completed := CompletedTaskIDs(defs, byDate[date])
		for _, role := range models.WorkingRoles() {
			snapshot := schedule.SettleDay(periods, defs, completed, role)
			entries = append(entries, HistoryEntry{
				BusinessDate:   date,
				Role:           role,
				TotalDue:       snapshot.TotalDue,
				TotalCompleted: snapshot.TotalCompleted,
				CompletionRate: snapshot.CompletionRate,
				MissingCount:   len(snapshot.MissingTasks),
			})
		}
	}

	return entries, nil
}

// MissingRecords returns the settled missing-task rows for a date range.
func (s *DashboardService) MissingRecords(from, to string) ([]models.MissingTaskRecord, error) {
	if _, _, err := parseDateRange(from, to); err != nil {
		return nil, err
	}
	records, err := s.missingRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list missing-task records: %w", err)
	}
	return records, nil
}

// MissingRecordsForDate returns one settled date's missing-task rows.
func (s *DashboardService) MissingRecordsForDate(date string) ([]models.MissingTaskRecord, error) {
	if _, err := time.Parse(constants.DateLayout, date); err != nil {
		return nil, ErrInvalidDateRange
	}
	records, err := s.missingRepo.ListByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to list missing-task records: %w", err)
	}
	return records, nil
}

// ExportHistory renders a history range as an xlsx workbook.
func (s *DashboardService) ExportHistory(from, to string) (*excelize.File, error) {
	entries, err := s.History(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Completion"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"Business Date", "Role", "Tasks Due", "Tasks Completed", "Completion Rate (%)", "Missing"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, entry := range entries {
		row := []interface{}{
			entry.BusinessDate,
			string(entry.Role),
			entry.TotalDue,
			entry.TotalCompleted,
			entry.CompletionRate,
			entry.MissingCount,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDay, err := time.Parse(constants.DateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	toDay, err := time.Parse(constants.DateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if toDay.Before(fromDay) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return fromDay, toDay, nil
}
