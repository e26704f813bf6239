package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type submissionTestEnv struct {
	db      *gorm.DB
	service *SubmissionService
}

func setupSubmissionTestEnv(t *testing.T) submissionTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Period{},
		&models.TaskDefinition{},
		&models.TaskSubmission{},
	)
	require.NoError(t, err)

	taskRepo := repository.NewTaskDefinitionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	service := NewSubmissionService(taskRepo, submissionRepo, constants.DefaultBusinessDayCutoffHour)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return submissionTestEnv{db: db, service: service}
}

func (env submissionTestEnv) createUser(t *testing.T, username string, role models.StaffRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env submissionTestEnv) createPeriod(t *testing.T, code, start, end string, order int, eventDriven bool) *models.Period {
	t.Helper()
	period := &models.Period{
		Code:          code,
		Name:          code,
		StartTime:     start,
		EndTime:       end,
		DisplayOrder:  order,
		IsEventDriven: eventDriven,
	}
	require.NoError(t, env.db.Create(period).Error)
	return period
}

func (env submissionTestEnv) createTask(t *testing.T, title string, role models.StaffRole, periodID *uint64, floating bool) *models.TaskDefinition {
	t.Helper()
	def := &models.TaskDefinition{
		Title:      title,
		Role:       role,
		Kind:       models.KindNone,
		IsFloating: floating,
		PeriodID:   periodID,
	}
	require.NoError(t, env.db.Create(def).Error)
	return def
}

func TestCreateSubmission_OnTimeWithinWindow(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	lunchPrep := env.createPeriod(t, "lunch-prep", "10:30", "11:30", 2, false)
	task := env.createTask(t, "Lunch Prep Check", models.RoleManager, &lunchPrep.ID, false)

	submission, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.False(t, submission.IsLate)
	require.Equal(t, "2025-03-14", submission.BusinessDate)
}

func TestCreateSubmission_LateAfterWindow(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	lunchPrep := env.createPeriod(t, "lunch-prep", "10:30", "11:30", 2, false)
	task := env.createTask(t, "Lunch Prep Check", models.RoleManager, &lunchPrep.ID, false)

	submission, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 14, 11, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.True(t, submission.IsLate)
}

func TestCreateSubmission_WrappedWindowDeadline(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	// Window wraps midnight: work submitted at 00:30 still belongs to the
	// previous business date and beats the 01:00 deadline.
	closing := env.createPeriod(t, "closing", "22:00", "01:00", 6, false)
	beforeCutover := env.createTask(t, "Lock Safe", models.RoleManager, &closing.ID, false)
	afterCutover := env.createTask(t, "Set Alarm", models.RoleManager, &closing.ID, false)

	onTime, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: beforeCutover.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 15, 0, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "2025-03-14", onTime.BusinessDate)
	require.False(t, onTime.IsLate)

	late, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: afterCutover.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 15, 1, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "2025-03-14", late.BusinessDate)
	require.True(t, late.IsLate)
}

func TestCreateSubmission_FloatingNeverLate(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	task := env.createTask(t, "Restock Napkins", models.RoleManager, nil, true)

	submission, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 14, 23, 50, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.False(t, submission.IsLate)
}

func TestCreateSubmission_EventDrivenNeverLate(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	closing := env.createPeriod(t, "closing", "22:00", "01:00", 6, true)
	task := env.createTask(t, "Final Walkthrough", models.RoleManager, &closing.ID, false)

	// 03:00 is past the nominal 01:00 deadline, but event-driven windows
	// have no hard one.
	submission, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "2025-03-14", submission.BusinessDate)
	require.False(t, submission.IsLate)
}

func TestCreateSubmission_OneLiveRowPerTaskAndDate(t *testing.T) {
	env := setupSubmissionTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager)
	lunchPrep := env.createPeriod(t, "lunch-prep", "10:30", "11:30", 2, false)
	task := env.createTask(t, "Lunch Prep Check", models.RoleManager, &lunchPrep.ID, false)

	first, err := env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = env.service.Create(CreateSubmissionInput{
		TaskDefinitionID: task.ID,
		Actor:            manager,
		Now:              time.Date(2025, 3, 14, 11, 10, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrAlreadySubmitted)

	// The unique index backs the service check: inserting a second live
	// row directly must fail too.
	dup := &models.TaskSubmission{
		TaskDefinitionID: task.ID,
		BusinessDate:     first.BusinessDate,
		SubmittedByID:    manager.ID,
		SubmittedAt:      time.Date(2025, 3, 14, 11, 10, 0, 0, time.UTC),
		ReviewStatus:     models.ReviewPending,
		Kind:             models.KindNone,
	}
	require.Error(t, env.db.Create(dup).Error)
}
