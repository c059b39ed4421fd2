package usecase

import (
	"context"
	"sync"
	"testing"

	"hospital-scheduling/config"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAppointmentUsecase_CreateIsPending(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)

	created, err := u.CreateAppointment(context.Background(), patient.ID, &dto.CreateAppointmentRequest{
		DoctorID:    doctor.ID,
		ScheduledAt: "2026-10-20T09:30",
		Reason:      "  Chest pain  ",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), created.Status)
	assert.Equal(t, "Chest pain", created.Reason)
	assert.Equal(t, "Dr. Vega", created.DoctorName)
	assert.Equal(t, 9, created.ScheduledAt.Hour())
	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.AuditLog{}))
}

func TestAppointmentUsecase_CreateValidation(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	_, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "next tuesday", Reason: "x"})
	assert.ErrorIs(t, err, ErrInvalidScheduledAt)

	_, err = u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "   "})
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID + 99, ScheduledAt: "2026-10-20T09:30", Reason: "x"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	assert.Zero(t, testutil.Count(t, f.db, &entity.Appointment{}))
}

func TestAppointmentUsecase_CreateIgnoresAvailabilityByDefault(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	_, err := f.availability().UpsertSlot(context.Background(), doctor.ID,
		&dto.UpsertAvailabilityRequest{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)

	// 2026-10-20 is a Tuesday
	req := &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T15:00:00Z", Reason: "Follow-up"}

	created, err := f.appointments(strictPolicy).CreateAppointment(context.Background(), patient.ID, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), created.Status)

	enforcing := config.SchedulingConfig{StrictTransitions: true, EnforceAvailability: true}
	_, err = f.appointments(enforcing).CreateAppointment(context.Background(), patient.ID, req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	// 2026-10-19 is a Monday
	req.ScheduledAt = "2026-10-19T10:00:00Z"
	_, err = f.appointments(enforcing).CreateAppointment(context.Background(), patient.ID, req)
	assert.NoError(t, err)
}

func TestAppointmentUsecase_Transition(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	accepted, err := u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	require.NoError(t, err)
	assert.Equal(t, "Accepted", accepted.Status)
	assert.NotNil(t, accepted.TransitionedAt)
	assert.Equal(t, "Ana Lopez", accepted.PatientName)

	_, err = u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Rejected"})
	assert.ErrorIs(t, err, ErrAppointmentAlreadyDecided)

	stored, err := f.appointmentRepo.FindByID(ctx, f.db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusAccepted, stored.Status)
}

func TestAppointmentUsecase_TransitionInvalidTargetDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	for _, target := range []string{"Pending", "accepted", "Cancelled", ""} {
		_, err := u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: target})
		assert.ErrorIs(t, err, ErrInvalidTargetState, target)
	}

	stored, err := f.appointmentRepo.FindByID(ctx, f.db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, stored.Status)
	assert.Nil(t, stored.TransitionedAt)
}

func TestAppointmentUsecase_TransitionOwnership(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	other := testutil.SeedDoctor(t, f.db, 0, "Dr. Ruiz", "Dermatology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	_, err = u.TransitionAppointment(ctx, other.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = u.TransitionAppointment(ctx, doctor.ID, created.ID+50, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentUsecase_LenientTransitionOverwrites(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(config.SchedulingConfig{StrictTransitions: false})
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	_, err = u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	require.NoError(t, err)

	rejected, err := u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, "Rejected", rejected.Status)
}

func TestAppointmentUsecase_ConcurrentDecisionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	targets := []string{"Accepted", "Rejected", "Accepted", "Rejected"}
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			_, errs[i] = u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: target})
		}(i, target)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, ErrAppointmentAlreadyDecided)
	}
	assert.Equal(t, 1, winners)
}

func TestAppointmentUsecase_ListOrdering(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(strictPolicy)
	ctx := context.Background()

	times := []string{"2026-10-22T09:00", "2026-10-20T09:00", "2026-10-21T09:00", "2026-10-23T09:00"}
	ids := make(map[string]int64)
	for _, at := range times {
		created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: at, Reason: "Visit"})
		require.NoError(t, err)
		ids[at] = created.ID
	}

	for _, at := range []string{"2026-10-21T09:00", "2026-10-23T09:00"} {
		_, err := u.TransitionAppointment(ctx, doctor.ID, ids[at], &dto.TransitionAppointmentRequest{Status: "Accepted"})
		require.NoError(t, err)
	}

	pending, err := u.ListPendingForDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 2, pending.Total)
	assert.Equal(t, ids["2026-10-20T09:00"], pending.Appointments[0].ID)
	assert.Equal(t, ids["2026-10-22T09:00"], pending.Appointments[1].ID)

	accepted, err := u.ListAcceptedForDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 2, accepted.Total)
	assert.Equal(t, ids["2026-10-23T09:00"], accepted.Appointments[0].ID)
	assert.Equal(t, ids["2026-10-21T09:00"], accepted.Appointments[1].ID)

	all, err := u.ListForPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)

	patientPending, err := u.ListPendingForPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, patientPending.Total)

	patientAccepted, err := u.ListAcceptedForPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, patientAccepted.Total)

	_, err = u.ListAcceptedForPatient(ctx, patient.ID+99)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAppointmentUsecase_TransitionAuditsPreviousStatus(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.appointments(config.SchedulingConfig{StrictTransitions: false})
	ctx := context.Background()

	created, err := u.CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	_, err = u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	require.NoError(t, err)

	audit := lastAudit(t, f.db, entity.AuditActionAppointmentTransition)
	oldValue, ok := audit.Metadata["old_value"].(map[string]interface{})
	require.True(t, ok, "old_value should be recorded")
	assert.Equal(t, "Pending", oldValue["status"])
	assert.Nil(t, oldValue["transitioned_at"])
	newValue, ok := audit.Metadata["new_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Accepted", newValue["status"])

	_, err = u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Rejected"})
	require.NoError(t, err)

	audit = lastAudit(t, f.db, entity.AuditActionAppointmentTransition)
	oldValue, ok = audit.Metadata["old_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Accepted", oldValue["status"])
	assert.NotNil(t, oldValue["transitioned_at"])
}

func TestAppointmentUsecase_BeginFailureIsReported(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Cardiology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	ctx := context.Background()

	created, err := f.appointments(strictPolicy).CreateAppointment(ctx, patient.ID,
		&dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Checkup"})
	require.NoError(t, err)

	tx := f.openTx(t)
	u := NewAppointmentUsecase(tx, f.log, f.metrics, strictPolicy,
		f.appointmentRepo, f.availabilityRepo, f.doctorRepo, f.patientRepo, f.audit, f.badges)

	_, createErr := u.CreateAppointment(ctx, patient.ID,
		&dto.CreateAppointmentRequest{DoctorID: doctor.ID, ScheduledAt: "2026-10-21T09:30", Reason: "Second visit"})
	_, transitionErr := u.TransitionAppointment(ctx, doctor.ID, created.ID, &dto.TransitionAppointmentRequest{Status: "Accepted"})
	require.NoError(t, tx.Rollback().Error)

	for _, err := range []error{createErr, transitionErr} {
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
		assert.Contains(t, err.Error(), "begin transaction")
	}

	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.Appointment{}))
	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.AuditLog{}))
	stored, err := f.appointmentRepo.FindByID(ctx, f.db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, stored.Status)
}
