package services

import (
	"fmt"
	"log"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
)

// BackfillService settles a closed business date: whatever is still undone
// after rollover becomes a MissingTaskRecord. Event-driven periods are only
// judged here, once the day is over.
type BackfillService struct {
	periodRepo     repository.PeriodRepository
	taskRepo       repository.TaskDefinitionRepository
	submissionRepo repository.SubmissionRepository
	missingRepo    repository.MissingTaskRepository
	cutoffHour     int
}

// NewBackfillService creates a new BackfillService.
func NewBackfillService(periodRepo repository.PeriodRepository, taskRepo repository.TaskDefinitionRepository, submissionRepo repository.SubmissionRepository, missingRepo repository.MissingTaskRepository, cutoffHour int) *BackfillService {
	return &BackfillService{
		periodRepo:     periodRepo,
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		missingRepo:    missingRepo,
		cutoffHour:     cutoffHour,
	}
}

// Run settles one business date. Records for the date are replaced
// wholesale, so rerunning is safe.
func (s *BackfillService) Run(businessDate string) error {
	periods, err := s.periodRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load periods: %w", err)
	}
	defs, err := s.taskRepo.List(repository.TaskDefinitionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load task definitions: %w", err)
	}
	submissions, err := s.submissionRepo.ListByDate(businessDate)
	if err != nil {
		return fmt.Errorf("failed to load submissions: %w", err)
	}

	completed := CompletedTaskIDs(defs, submissions)
	now := time.Now()

	var records []models.MissingTaskRecord
	for _, role := range models.WorkingRoles() {
		snapshot := schedule.SettleDay(periods, defs, completed, role)
		for _, missing := range snapshot.MissingTasks {
			records = append(records, models.MissingTaskRecord{
				BusinessDate:     businessDate,
				TaskDefinitionID: missing.Task.ID,
				PeriodCode:       missing.PeriodCode,
				PeriodName:       missing.PeriodName,
				Role:             role,
				RecordedAt:       now,
			})
		}
	}

	if err := s.missingRepo.ReplaceForDate(businessDate, records); err != nil {
		return fmt.Errorf("failed to store missing-task records: %w", err)
	}

	log.Printf("Backfill for %s: %d missing tasks recorded", businessDate, len(records))
	return nil
}

// RunForClosedDate settles the business date that ended at the most recent
// rollover. Intended to run from the scheduler shortly after the cutoff
// hour.
func (s *BackfillService) RunForClosedDate(now time.Time) error {
	current, err := time.Parse(constants.DateLayout, utils.BusinessDate(now, s.cutoffHour))
	if err != nil {
		return fmt.Errorf("failed to resolve business date: %w", err)
	}
	closed := current.AddDate(0, 0, -1).Format(constants.DateLayout)
	return s.Run(closed)
}
