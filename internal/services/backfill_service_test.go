package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type backfillTestEnv struct {
	db        *gorm.DB
	backfill  *BackfillService
	dashboard *DashboardService
}

func setupBackfillTestEnv(t *testing.T) backfillTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Period{},
		&models.TaskDefinition{},
		&models.TaskSubmission{},
		&models.MissingTaskRecord{},
	)
	require.NoError(t, err)

	periodRepo := repository.NewPeriodRepository(db)
	taskRepo := repository.NewTaskDefinitionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	missingRepo := repository.NewMissingTaskRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return backfillTestEnv{
		db:        db,
		backfill:  NewBackfillService(periodRepo, taskRepo, submissionRepo, missingRepo, 6),
		dashboard: NewDashboardService(periodRepo, taskRepo, submissionRepo, missingRepo),
	}
}

// seedSettledDay installs two periods and one task per working role, with
// only the manager task submitted. Settling the date should record the chef
// opening task and the duty-manager task as missing; the chef closing task
// is excluded by the role rule.
func (env backfillTestEnv) seedSettledDay(t *testing.T, date string) {
	t.Helper()

	opening := &models.Period{Code: "opening", Name: "Opening", StartTime: "10:00", EndTime: "10:30", DisplayOrder: 1}
	closing := &models.Period{Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "01:00", DisplayOrder: 6, IsEventDriven: true}
	require.NoError(t, env.db.Create(opening).Error)
	require.NoError(t, env.db.Create(closing).Error)

	managerTask := &models.TaskDefinition{Title: "Temperature Log", Role: models.RoleManager, Kind: models.KindNone, PeriodID: &opening.ID}
	chefTask := &models.TaskDefinition{Title: "Knife Check", Role: models.RoleChef, Kind: models.KindNone, PeriodID: &opening.ID}
	chefClosingTask := &models.TaskDefinition{Title: "Final Clean", Role: models.RoleChef, Kind: models.KindNone, PeriodID: &closing.ID}
	dutyTask := &models.TaskDefinition{Title: "Cash Count", Role: models.RoleDutyManager, Kind: models.KindNone, PeriodID: &opening.ID}
	for _, def := range []*models.TaskDefinition{managerTask, chefTask, chefClosingTask, dutyTask} {
		require.NoError(t, env.db.Create(def).Error)
	}

	submitter := &models.User{Username: "manager", PasswordHash: "hashedpassword", Role: models.RoleManager}
	require.NoError(t, env.db.Create(submitter).Error)
	require.NoError(t, env.db.Create(&models.TaskSubmission{
		TaskDefinitionID: managerTask.ID,
		BusinessDate:     date,
		SubmittedByID:    submitter.ID,
		SubmittedAt:      time.Date(2025, 3, 14, 10, 15, 0, 0, time.UTC),
		ReviewStatus:     models.ReviewPending,
		Kind:             models.KindNone,
	}).Error)
}

func TestBackfillRun_RecordsMissingPerRole(t *testing.T) {
	env := setupBackfillTestEnv(t)
	const date = "2025-03-14"
	env.seedSettledDay(t, date)

	require.NoError(t, env.backfill.Run(date))

	records, err := env.dashboard.MissingRecordsForDate(date)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Ordered by role, then period code.
	require.Equal(t, models.RoleChef, records[0].Role)
	require.Equal(t, "Knife Check", records[0].TaskDefinition.Title)
	require.Equal(t, "opening", records[0].PeriodCode)
	require.Equal(t, models.RoleDutyManager, records[1].Role)
	require.Equal(t, "Cash Count", records[1].TaskDefinition.Title)

	for _, record := range records {
		require.Equal(t, date, record.BusinessDate)
		require.NotEqual(t, "Final Clean", record.TaskDefinition.Title, "chef closing work is never owed")
	}
}

func TestBackfillRun_Idempotent(t *testing.T) {
	env := setupBackfillTestEnv(t)
	const date = "2025-03-14"
	env.seedSettledDay(t, date)

	require.NoError(t, env.backfill.Run(date))
	require.NoError(t, env.backfill.Run(date))

	records, err := env.dashboard.MissingRecordsForDate(date)
	require.NoError(t, err)
	require.Len(t, records, 2, "rerunning a date must not duplicate rows")

	seen := make(map[uint64]bool)
	for _, record := range records {
		require.False(t, seen[record.TaskDefinitionID])
		seen[record.TaskDefinitionID] = true
	}
}

func TestBackfillRun_LeavesOtherDatesAlone(t *testing.T) {
	env := setupBackfillTestEnv(t)
	const date = "2025-03-14"
	env.seedSettledDay(t, date)

	require.NoError(t, env.backfill.Run(date))
	require.NoError(t, env.backfill.Run("2025-03-15"))

	records, err := env.dashboard.MissingRecordsForDate(date)
	require.NoError(t, err)
	require.Len(t, records, 2)

	others, err := env.dashboard.MissingRecordsForDate("2025-03-15")
	require.NoError(t, err)
	require.Len(t, others, 3, "a date with no submissions owes every counted task")
}
