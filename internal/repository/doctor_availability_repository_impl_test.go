package repository

import (
	"context"
	"testing"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorAvailabilityRepository_UpsertReplacesDay(t *testing.T) {
	db := testutil.NewDB(t)
	doctor := testutil.SeedDoctor(t, db, 0, "Dr. Vega", "Cardiology")
	repo := NewDoctorAvailabilityRepository()
	ctx := context.Background()

	first := &entity.DoctorAvailabilitySlot{DoctorID: doctor.ID, DayOfWeek: entity.Monday, StartTime: "09:00", EndTime: "12:00"}
	require.NoError(t, repo.Upsert(ctx, db, first))

	second := &entity.DoctorAvailabilitySlot{DoctorID: doctor.ID, DayOfWeek: entity.Monday, StartTime: "14:00", EndTime: "18:00"}
	require.NoError(t, repo.Upsert(ctx, db, second))

	slots, err := repo.FindByDoctorID(ctx, db, doctor.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, first.ID, slots[0].ID)
	assert.Equal(t, "14:00", entity.ClockHHMM(slots[0].StartTime))
	assert.Equal(t, "18:00", entity.ClockHHMM(slots[0].EndTime))
}

func TestDoctorAvailabilityRepository_FindOrdersByDay(t *testing.T) {
	db := testutil.NewDB(t)
	doctor := testutil.SeedDoctor(t, db, 0, "Dr. Vega", "Cardiology")
	repo := NewDoctorAvailabilityRepository()
	ctx := context.Background()

	for _, day := range []entity.Weekday{entity.Friday, entity.Monday, entity.Wednesday} {
		require.NoError(t, repo.Upsert(ctx, db, &entity.DoctorAvailabilitySlot{
			DoctorID: doctor.ID, DayOfWeek: day, StartTime: "08:00", EndTime: "12:00",
		}))
	}

	slots, err := repo.FindByDoctorID(ctx, db, doctor.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, entity.Monday, slots[0].DayOfWeek)
	assert.Equal(t, entity.Wednesday, slots[1].DayOfWeek)
	assert.Equal(t, entity.Friday, slots[2].DayOfWeek)
}

func TestDoctorAvailabilityRepository_DeleteChecksOwner(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.SeedDoctor(t, db, 0, "Dr. Vega", "Cardiology")
	other := testutil.SeedDoctor(t, db, 0, "Dr. Ruiz", "Dermatology")
	repo := NewDoctorAvailabilityRepository()
	ctx := context.Background()

	slot := &entity.DoctorAvailabilitySlot{DoctorID: owner.ID, DayOfWeek: entity.Tuesday, StartTime: "10:00", EndTime: "11:00"}
	require.NoError(t, repo.Upsert(ctx, db, slot))

	affected, err := repo.DeleteByIDAndDoctor(ctx, db, slot.ID, other.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.EqualValues(t, 1, testutil.Count(t, db, &entity.DoctorAvailabilitySlot{}))

	affected, err = repo.DeleteByIDAndDoctor(ctx, db, slot.ID, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.Zero(t, testutil.Count(t, db, &entity.DoctorAvailabilitySlot{}))
}
