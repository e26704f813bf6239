package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"gorm.io/gorm"
)

var (
	ErrPeriodNotFound    = errors.New("period not found")
	ErrPeriodCodeTaken   = errors.New("period code already exists")
	ErrPeriodHasTasks    = errors.New("period still has task definitions")
	ErrInvalidPeriodTime = errors.New("invalid period time")
)

// PeriodService manages the daily cycle configuration. Time strings are
// validated here, at the edge, so the schedule package never sees malformed
// input.
type PeriodService struct {
	periodRepo repository.PeriodRepository
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo repository.PeriodRepository) *PeriodService {
	return &PeriodService{
		periodRepo: periodRepo,
	}
}

// ListPeriods returns the configured cycle in display order.
func (s *PeriodService) ListPeriods() ([]models.Period, error) {
	periods, err := s.periodRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// CreatePeriodInput represents parameters for a new period.
type CreatePeriodInput struct {
	Code          string
	Name          string
	StartTime     string
	EndTime       string
	DisplayOrder  int
	IsEventDriven bool
}

// CreatePeriod adds a period to the cycle.
func (s *PeriodService) CreatePeriod(input CreatePeriodInput) (*models.Period, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("code and name are required")
	}
	if err := validateClockPair(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.periodRepo.FindByCode(code); err == nil {
		return nil, ErrPeriodCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check period code: %w", err)
	}

	period := &models.Period{
		Code:          code,
		Name:          input.Name,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		DisplayOrder:  input.DisplayOrder,
		IsEventDriven: input.IsEventDriven,
	}
	if err := s.periodRepo.Create(period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}
	return period, nil
}

// UpdatePeriodInput represents partial updates to a period.
type UpdatePeriodInput struct {
	Name          *string
	StartTime     *string
	EndTime       *string
	DisplayOrder  *int
	IsEventDriven *bool
}

// UpdatePeriod updates a period's window or ordering. The code is fixed at
// creation: the chef exclusion and linkage rules key on it.
func (s *PeriodService) UpdatePeriod(id uint64, input UpdatePeriodInput) (*models.Period, error) {
	period, err := s.periodRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("failed to find period: %w", err)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		period.Name = *input.Name
	}
	if input.StartTime != nil {
		period.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		period.EndTime = *input.EndTime
	}
	if err := validateClockPair(period.StartTime, period.EndTime); err != nil {
		return nil, err
	}
	if input.DisplayOrder != nil {
		period.DisplayOrder = *input.DisplayOrder
	}
	if input.IsEventDriven != nil {
		period.IsEventDriven = *input.IsEventDriven
	}

	if err := s.periodRepo.Update(period); err != nil {
		return nil, fmt.Errorf("failed to update period: %w", err)
	}
	return period, nil
}

// DeletePeriod removes an empty period from the cycle.
func (s *PeriodService) DeletePeriod(id uint64) error {
	if _, err := s.periodRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPeriodNotFound
		}
		return fmt.Errorf("failed to find period: %w", err)
	}

	if err := s.periodRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrPeriodInUse) {
			return ErrPeriodHasTasks
		}
		return fmt.Errorf("failed to delete period: %w", err)
	}
	return nil
}

func validateClockPair(start, end string) error {
	if _, err := schedule.ParseClock(start); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeriodTime, err)
	}
	if _, err := schedule.ParseClock(end); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeriodTime, err)
	}
	return nil
}
