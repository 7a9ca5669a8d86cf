//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())

	err := ctx.ScheduleRepo.Create(context.Background(), schedule)
	require.NoError(t, err)

	// Verify using GORM model (infrastructure concern)
	var createdModel models.MedicationScheduleModel
	err = ctx.DB.First(&createdModel, "id = ?", schedule.ID).Error
	require.NoError(t, err)
	assert.Equal(t, schedule.ID, createdModel.ID)
	assert.Equal(t, schedule.MedicationName, createdModel.MedicationName)
}

func TestScheduleRepository_Create_InvalidSchedule(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := &medications.MedicationSchedule{} // Invalid - missing required fields

	err := ctx.ScheduleRepo.Create(context.Background(), schedule)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestScheduleSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	fetched, err := ctx.ScheduleRepo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.ID, fetched.ID)
	assert.Equal(t, []string{"08:00", "20:00"}, fetched.TimesOfDay)
}

func TestScheduleRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.ScheduleRepo.GetByID(context.Background(), "non-existent-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestScheduleSqliteRepository_List_ActiveOnly(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	patientID := uuid.NewString()
	active := CreateTestSchedule(t, patientID)
	inactive := CreateTestSchedule(t, patientID)
	inactive.Active = false

	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), active))
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), inactive))

	query := medications.NewScheduleQuery()
	query.PatientID = patientID
	query.ActiveOnly = true

	list, err := ctx.ScheduleRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)
}

func TestScheduleSqliteRepository_ListActivePatients(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	patientID := uuid.NewString()
	first := CreateTestSchedule(t, patientID)
	second := CreateTestSchedule(t, patientID)
	inactive := CreateTestSchedule(t, uuid.NewString())
	inactive.Active = false

	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), first))
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), second))
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), inactive))

	patients, err := ctx.ScheduleRepo.ListActivePatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{patientID}, patients)
}

func TestScheduleSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	schedule.Dosage = "850"
	schedule.TimesOfDay = []string{"07:30"}
	require.NoError(t, ctx.ScheduleRepo.UpdateByID(context.Background(), schedule))

	fetched, err := ctx.ScheduleRepo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, "850", fetched.Dosage)
	assert.Equal(t, []string{"07:30"}, fetched.TimesOfDay)
}

func TestScheduleSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))
	require.NoError(t, ctx.ScheduleRepo.DeleteByID(context.Background(), schedule.ID))

	var deletedModel models.MedicationScheduleModel
	err := ctx.DB.First(&deletedModel, "id = ?", schedule.ID).Error
	assert.Error(t, err)
}

func TestMedicationLogSqliteRepository_CreateAndList(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	log := CreateTestLog(t, schedule, medications.DoseStatusTaken)
	require.NoError(t, ctx.MedicationLogRepo.Create(context.Background(), log))

	query := medications.NewLogQuery()
	query.PatientID = schedule.PatientID
	list, err := ctx.MedicationLogRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, medications.DoseStatusTaken, list[0].Status)
}

func TestMedicationLogSqliteRepository_CountByStatus(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	for _, status := range []string{
		medications.DoseStatusTaken,
		medications.DoseStatusTaken,
		medications.DoseStatusMissed,
		medications.DoseStatusSkipped,
	} {
		log := CreateTestLog(t, schedule, status)
		require.NoError(t, ctx.MedicationLogRepo.Create(context.Background(), log))
	}

	counts, err := ctx.MedicationLogRepo.CountByStatus(
		context.Background(),
		schedule.PatientID,
		time.Now().Add(-24*time.Hour),
		time.Now().Add(time.Hour),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[medications.DoseStatusTaken])
	assert.Equal(t, 1, counts[medications.DoseStatusMissed])
	assert.Equal(t, 1, counts[medications.DoseStatusSkipped])
}

func TestAdherenceReportSqliteRepository_UpsertReplacesPeriod(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	patientID := uuid.NewString()
	periodStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)

	first := &medications.AdherenceReport{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		ScheduledDoses:  14,
		TakenDoses:      10,
		MissedDoses:     4,
		AdherenceRate:   medications.CalculateAdherenceRate(10, 14),
		Status:          medications.AdherenceStatusFor(medications.CalculateAdherenceRate(10, 14)),
		DateTimeCreated: time.Now(),
	}
	require.NoError(t, ctx.AdherenceReportRepo.Upsert(context.Background(), first))

	second := &medications.AdherenceReport{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		ScheduledDoses:  14,
		TakenDoses:      13,
		MissedDoses:     1,
		AdherenceRate:   medications.CalculateAdherenceRate(13, 14),
		Status:          medications.AdherenceStatusFor(medications.CalculateAdherenceRate(13, 14)),
		DateTimeCreated: time.Now(),
	}
	require.NoError(t, ctx.AdherenceReportRepo.Upsert(context.Background(), second))

	query := medications.NewReportQuery()
	query.PatientID = patientID
	list, err := ctx.AdherenceReportRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 13, list[0].TakenDoses)
}

func TestReminderSqliteRepository_SlotLifecycle(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	sendAt := time.Now().Add(-10 * time.Minute).Truncate(time.Minute)
	reminder := &medications.MedicationReminder{
		ID:         uuid.NewString(),
		ScheduleID: schedule.ID,
		PatientID:  schedule.PatientID,
		SendAt:     sendAt,
		Channels:   []string{"push", "inapp"},
	}
	require.NoError(t, ctx.ReminderRepo.Create(context.Background(), reminder))

	exists, err := ctx.ReminderRepo.ExistsForSlot(context.Background(), schedule.ID, sendAt)
	require.NoError(t, err)
	assert.True(t, exists)

	due, err := ctx.ReminderRepo.ListDue(context.Background(), time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, reminder.ID, due[0].ID)

	require.NoError(t, ctx.ReminderRepo.MarkSent(context.Background(), reminder.ID, time.Now()))

	due, err = ctx.ReminderRepo.ListDue(context.Background(), time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReminderSqliteRepository_DeleteBySchedule(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	reminder := &medications.MedicationReminder{
		ID:         uuid.NewString(),
		ScheduleID: schedule.ID,
		PatientID:  schedule.PatientID,
		SendAt:     time.Now().Add(time.Hour),
		Channels:   []string{"inapp"},
	}
	require.NoError(t, ctx.ReminderRepo.Create(context.Background(), reminder))
	require.NoError(t, ctx.ReminderRepo.DeleteBySchedule(context.Background(), schedule.ID))

	exists, err := ctx.ReminderRepo.ExistsForSlot(context.Background(), schedule.ID, reminder.SendAt)
	require.NoError(t, err)
	assert.False(t, exists)
}
