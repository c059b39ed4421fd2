package usecase

import (
	"context"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAvailabilityUsecase_UpsertSlot(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	u := f.availability()
	ctx := context.Background()

	created, err := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "monday", StartTime: "09:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.Equal(t, int(entity.Monday), created.DayOfWeek)
	assert.Equal(t, "Monday", created.DayName)

	replaced, err := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "1", StartTime: "10:00", EndTime: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)

	list, err := u.ListSlots(ctx, doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "10:00", list.Slots[0].StartTime)
	assert.Equal(t, "14:00", list.Slots[0].EndTime)

	assert.EqualValues(t, 2, testutil.Count(t, f.db, &entity.AuditLog{}))
}

func TestAvailabilityUsecase_UpsertSlotRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	u := f.availability()
	ctx := context.Background()

	_, err := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Someday", StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

	_, err = u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Friday", StartTime: "9am", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	assert.Zero(t, testutil.Count(t, f.db, &entity.DoctorAvailabilitySlot{}))
}

func TestAvailabilityUsecase_DeleteSlot(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	other := testutil.SeedDoctor(t, f.db, 0, "Dr. Ruiz", "Dermatology")
	u := f.availability()
	ctx := context.Background()

	slot, err := u.UpsertSlot(ctx, owner.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Tuesday", StartTime: "08:00", EndTime: "12:00"})
	require.NoError(t, err)

	assert.ErrorIs(t, u.DeleteSlot(ctx, other.ID, slot.ID), ErrSlotNotFound)
	assert.ErrorIs(t, u.DeleteSlot(ctx, owner.ID, slot.ID+100), ErrSlotNotFound)
	require.NoError(t, u.DeleteSlot(ctx, owner.ID, slot.ID))

	list, err := u.ListSlots(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestAvailabilityUsecase_ListPublicSlotsHidesIDs(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	u := f.availability()
	ctx := context.Background()

	_, err := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Thursday", StartTime: "08:00", EndTime: "12:00"})
	require.NoError(t, err)

	list, err := u.ListPublicSlots(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, list.Slots, 1)
	assert.Zero(t, list.Slots[0].ID)
	assert.Equal(t, "Thursday", list.Slots[0].DayName)
}

func TestAvailabilityUsecase_UpsertAuditsPreviousWindow(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	u := f.availability()
	ctx := context.Background()

	_, err := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "13:00"})
	require.NoError(t, err)

	audit := lastAudit(t, f.db, entity.AuditActionAvailabilityUpsert)
	assert.Nil(t, audit.Metadata["old_value"])

	_, err = u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "10:00", EndTime: "14:00"})
	require.NoError(t, err)

	audit = lastAudit(t, f.db, entity.AuditActionAvailabilityUpsert)
	oldValue, ok := audit.Metadata["old_value"].(map[string]interface{})
	require.True(t, ok, "old_value should be recorded")
	assert.Equal(t, "09:00", oldValue["start_time"])
	assert.Equal(t, "13:00", oldValue["end_time"])
	newValue, ok := audit.Metadata["new_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "10:00", newValue["start_time"])
	assert.Equal(t, "14:00", newValue["end_time"])
}

func TestAvailabilityUsecase_BeginFailureIsReported(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	ctx := context.Background()

	slot, err := f.availability().UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "13:00"})
	require.NoError(t, err)

	tx := f.openTx(t)
	u := NewAvailabilityUsecase(tx, f.log, f.metrics, f.availabilityRepo, f.audit)

	_, upsertErr := u.UpsertSlot(ctx, doctor.ID, &dto.UpsertAvailabilityRequest{DayOfWeek: "Tuesday", StartTime: "09:00", EndTime: "13:00"})
	deleteErr := u.DeleteSlot(ctx, doctor.ID, slot.ID)
	require.NoError(t, tx.Rollback().Error)

	for _, err := range []error{upsertErr, deleteErr} {
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
		assert.Contains(t, err.Error(), "begin transaction")
	}

	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.DoctorAvailabilitySlot{}))
	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.AuditLog{}))
}
