package services

import (
	"fmt"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
)

// ChecklistService resolves the live checklist state for a role: it joins
// the day's submissions onto the task configuration and hands the result to
// the pure period calculator.
type ChecklistService struct {
	periodRepo     repository.PeriodRepository
	taskRepo       repository.TaskDefinitionRepository
	submissionRepo repository.SubmissionRepository
	cutoffHour     int
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(periodRepo repository.PeriodRepository, taskRepo repository.TaskDefinitionRepository, submissionRepo repository.SubmissionRepository, cutoffHour int) *ChecklistService {
	return &ChecklistService{
		periodRepo:     periodRepo,
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		cutoffHour:     cutoffHour,
	}
}

// CompletedTaskIDs derives the set of task definition IDs that count as
// completed from a date's live submissions. Rejected submissions never
// count. A manager review task additionally counts once the duty-manager
// task it reviews has an approved submission; this join happens here, on
// purpose, so the period calculator stays a pure function of its inputs.
func CompletedTaskIDs(defs []models.TaskDefinition, submissions []models.TaskSubmission) map[uint64]bool {
	completed := make(map[uint64]bool)
	approved := make(map[uint64]bool)

	for _, sub := range submissions {
		if sub.ReviewStatus == models.ReviewRejected {
			continue
		}
		completed[sub.TaskDefinitionID] = true
		if sub.ReviewStatus == models.ReviewApproved {
			approved[sub.TaskDefinitionID] = true
		}
	}

	for _, def := range defs {
		if def.Role != models.RoleManager || def.ReviewOfTaskID == nil {
			continue
		}
		if approved[*def.ReviewOfTaskID] {
			completed[def.ID] = true
		}
	}

	return completed
}

// Snapshot computes the completion snapshot for a role at the given instant.
func (s *ChecklistService) Snapshot(role models.StaffRole, now time.Time) (schedule.Snapshot, error) {
	periods, defs, submissions, err := s.loadDay(now)
	if err != nil {
		return schedule.Snapshot{}, err
	}

	completed := CompletedTaskIDs(defs, submissions)
	return schedule.ComputeSnapshot(periods, defs, completed, role, now), nil
}

// BoardTask is one task on the checklist board with its completion state.
type BoardTask struct {
	Definition models.TaskDefinition
	Submission *models.TaskSubmission
	Completed  bool
}

// BoardPeriod groups a period's tasks for display.
type BoardPeriod struct {
	Period    models.Period
	IsCurrent bool
	Tasks     []BoardTask
}

// Board is the period-grouped task list a role works from.
type Board struct {
	Role          models.StaffRole
	BusinessDate  string
	CurrentPeriod *models.Period
	Periods       []BoardPeriod
	Floating      []BoardTask
}

// Board returns the role's full task list grouped by period, including
// notices and floating tasks, with per-task completion state attached.
func (s *ChecklistService) Board(role models.StaffRole, now time.Time) (*Board, error) {
	periods, defs, submissions, err := s.loadDay(now)
	if err != nil {
		return nil, err
	}

	completed := CompletedTaskIDs(defs, submissions)
	submissionByTask := make(map[uint64]*models.TaskSubmission, len(submissions))
	for i := range submissions {
		if submissions[i].ReviewStatus == models.ReviewRejected {
			continue
		}
		submissionByTask[submissions[i].TaskDefinitionID] = &submissions[i]
	}

	board := &Board{
		Role:          role,
		BusinessDate:  utils.BusinessDate(now, s.cutoffHour),
		CurrentPeriod: schedule.ResolveCurrentPeriod(periods, now),
		Periods:       []BoardPeriod{},
		Floating:      []BoardTask{},
	}

	byPeriod := make(map[uint64][]BoardTask)
	for _, def := range defs {
		if def.Role != role {
			continue
		}
		task := BoardTask{
			Definition: def,
			Submission: submissionByTask[def.ID],
			Completed:  completed[def.ID],
		}
		if def.PeriodID == nil {
			board.Floating = append(board.Floating, task)
			continue
		}
		byPeriod[*def.PeriodID] = append(byPeriod[*def.PeriodID], task)
	}

	for _, p := range periods {
		tasks, ok := byPeriod[p.ID]
		if !ok {
			continue
		}
		board.Periods = append(board.Periods, BoardPeriod{
			Period:    p,
			IsCurrent: board.CurrentPeriod != nil && board.CurrentPeriod.ID == p.ID,
			Tasks:     tasks,
		})
	}

	return board, nil
}

func (s *ChecklistService) loadDay(now time.Time) ([]models.Period, []models.TaskDefinition, []models.TaskSubmission, error) {
	periods, err := s.periodRepo.List()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load periods: %w", err)
	}

	defs, err := s.taskRepo.List(repository.TaskDefinitionFilter{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load task definitions: %w", err)
	}

	date := utils.BusinessDate(now, s.cutoffHour)
	submissions, err := s.submissionRepo.ListByDate(date)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	return periods, defs, submissions, nil
}
