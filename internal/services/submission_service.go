package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"github.com/tamaki/restaurant-ops-api/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task definition not found")
	ErrNoticeNotSubmittable = errors.New("notices do not take submissions")
	ErrWrongRole            = errors.New("task belongs to a different role")
	ErrKindMismatch         = errors.New("submission kind does not match the task")
	ErrAlreadySubmitted     = errors.New("task already has a live submission for this date")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrNotReviewable        = errors.New("only duty manager submissions are reviewed")
	ErrReviewForbidden      = errors.New("only managers can review submissions")
)

// SubmissionService handles task submission business logic.
type SubmissionService struct {
	taskRepo       repository.TaskDefinitionRepository
	submissionRepo repository.SubmissionRepository
	cutoffHour     int
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(taskRepo repository.TaskDefinitionRepository, submissionRepo repository.SubmissionRepository, cutoffHour int) *SubmissionService {
	return &SubmissionService{
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		cutoffHour:     cutoffHour,
	}
}

// CreateSubmissionInput represents input for completing a task.
type CreateSubmissionInput struct {
	TaskDefinitionID uint64
	Actor            *models.User
	Kind             models.SubmissionKind
	TextContent      string
	PhotoURL         string
	ChecklistData    datatypes.JSON
	Now              time.Time
}

// Create records a task completion for the current business date. A
// rejected submission may be replaced; a pending or approved one may not.
func (s *SubmissionService) Create(input CreateSubmissionInput) (*models.TaskSubmission, error) {
	def, err := s.taskRepo.FindByID(input.TaskDefinitionID, "Period")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task definition: %w", err)
	}

	if def.IsNotice {
		return nil, ErrNoticeNotSubmittable
	}
	if input.Actor.Role != models.RoleExecutive && input.Actor.Role != def.Role {
		return nil, ErrWrongRole
	}

	kind := input.Kind
	if kind == "" {
		kind = def.Kind
	}
	if def.Kind != models.KindNone && kind != def.Kind {
		return nil, ErrKindMismatch
	}

	date := utils.BusinessDate(input.Now, s.cutoffHour)

	existing, err := s.submissionRepo.FindActive(def.ID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if existing != nil {
		if existing.ReviewStatus != models.ReviewRejected {
			return nil, ErrAlreadySubmitted
		}
		// Resubmission: retire the rejected row.
		if err := s.submissionRepo.Delete(existing.ID); err != nil {
			return nil, fmt.Errorf("failed to retire rejected submission: %w", err)
		}
	}

	photoURL := input.PhotoURL
	if photoURL == "" && (kind == models.KindPhoto || kind == models.KindAudio) {
		// Issue a storage key the client uploads the evidence under.
		key, err := utils.GenerateEvidenceKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate evidence key: %w", err)
		}
		photoURL = fmt.Sprintf("evidence/%s/%s", date, key)
	}

	submission := &models.TaskSubmission{
		TaskDefinitionID: def.ID,
		BusinessDate:     date,
		SubmittedByID:    input.Actor.ID,
		SubmittedAt:      input.Now,
		IsLate:           s.isLate(def, date, input.Now),
		ReviewStatus:     models.ReviewPending,
		Kind:             kind,
		TextContent:      input.TextContent,
		PhotoURL:         photoURL,
		ChecklistData:    input.ChecklistData,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return s.submissionRepo.FindByID(submission.ID, "TaskDefinition", "TaskDefinition.Period", "SubmittedBy")
}

// ListByDate returns a date's live submissions, optionally restricted to a
// role's tasks.
func (s *SubmissionService) ListByDate(businessDate string, role *models.StaffRole) ([]models.TaskSubmission, error) {
	submissions, err := s.submissionRepo.ListByDate(businessDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	if role == nil {
		return submissions, nil
	}

	filtered := make([]models.TaskSubmission, 0, len(submissions))
	for _, sub := range submissions {
		if sub.TaskDefinition.Role == *role {
			filtered = append(filtered, sub)
		}
	}
	return filtered, nil
}

// Review approves or rejects a duty-manager submission. Only manager and
// executive actors may review; other submissions are not subject to review.
func (s *SubmissionService) Review(submissionID uint64, actor *models.User, approve bool) (*models.TaskSubmission, error) {
	if actor.Role != models.RoleManager && actor.Role != models.RoleExecutive {
		return nil, ErrReviewForbidden
	}

	submission, err := s.submissionRepo.FindByID(submissionID, "TaskDefinition")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if submission.TaskDefinition.Role != models.RoleDutyManager {
		return nil, ErrNotReviewable
	}

	if approve {
		submission.ReviewStatus = models.ReviewApproved
	} else {
		submission.ReviewStatus = models.ReviewRejected
	}

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	return submission, nil
}

// isLate reports whether a submission arrived after its period's window
// closed for the business date. Floating tasks and event-driven periods
// have no hard deadline.
func (s *SubmissionService) isLate(def *models.TaskDefinition, businessDate string, now time.Time) bool {
	if def.IsFloating || def.PeriodID == nil || def.Period == nil {
		return false
	}
	if def.Period.IsEventDriven {
		return false
	}

	start, errStart := schedule.ParseClock(def.Period.StartTime)
	end, errEnd := schedule.ParseClock(def.Period.EndTime)
	if errStart != nil || errEnd != nil {
		return false
	}

	dayStart, err := utils.BusinessDateStart(businessDate, now.Location())
	if err != nil {
		return false
	}

	deadline := dayStart.Add(time.Duration(end) * time.Minute)
	if end <= start {
		// Window wraps midnight: the deadline is on the next calendar day.
		deadline = deadline.Add(24 * time.Hour)
	}

	return now.After(deadline)
}
