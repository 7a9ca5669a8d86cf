//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a local PostgreSQL reachable with the credentials in SetupTestDB.

func TestSchedulePsqlRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())

	err := ctx.ScheduleRepo.Create(context.Background(), schedule)
	require.NoError(t, err)

	var createdModel models.MedicationScheduleModel
	err = ctx.DB.First(&createdModel, "id = ?", schedule.ID).Error
	require.NoError(t, err)
	assert.Equal(t, schedule.ID, createdModel.ID)
}

func TestSchedulePsqlRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))

	fetched, err := ctx.ScheduleRepo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.MedicationName, fetched.MedicationName)
}

func TestSchedulePsqlRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	schedule := CreateTestSchedule(t, uuid.NewString())
	require.NoError(t, ctx.ScheduleRepo.Create(context.Background(), schedule))
	require.NoError(t, ctx.ScheduleRepo.DeleteByID(context.Background(), schedule.ID))

	var deletedModel models.MedicationScheduleModel
	err := ctx.DB.First(&deletedModel, "id = ?", schedule.ID).Error
	assert.Error(t, err)
}
