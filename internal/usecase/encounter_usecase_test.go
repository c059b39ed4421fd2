package usecase

import (
	"context"
	"errors"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// brokenLinesRepository fails every line insert after the header is written.
type brokenLinesRepository struct {
	repository.PrescriptionRepository
}

func (brokenLinesRepository) CreateLines(ctx context.Context, db *gorm.DB, lines []entity.PrescriptionLine) error {
	return errors.New("insert prescription_lines: connection reset")
}

func amoxicillin() dto.PrescriptionLineRequest {
	return dto.PrescriptionLineRequest{
		MedicationName: "Amoxicillin",
		Dose:           "500 mg",
		Frequency:      "every 8 hours",
		Duration:       "7 days",
	}
}

func assertEncounterTables(t *testing.T, db *gorm.DB, encounters, prescriptions, lines int64) {
	t.Helper()
	assert.Equal(t, encounters, testutil.Count(t, db, &entity.Encounter{}), "encounters")
	assert.Equal(t, prescriptions, testutil.Count(t, db, &entity.Prescription{}), "prescriptions")
	assert.Equal(t, lines, testutil.Count(t, db, &entity.PrescriptionLine{}), "prescription lines")
}

func TestEncounterUsecase_RecordWithPrescription(t *testing.T) {
	f := newFixture(t)
	testutil.SeedDoctor(t, f.db, 7, "Dr. Vega", "Internal Medicine")
	testutil.SeedPatient(t, f.db, 3, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	result, err := u.RecordEncounter(ctx, 7, &dto.RecordEncounterRequest{
		PatientID:         3,
		ReasonForVisit:    "Sore throat",
		Diagnosis:         "J03.9",
		Vitals:            dto.VitalsRequest{TemperatureC: 36.5},
		PrescriptionLines: []dto.PrescriptionLineRequest{amoxicillin()},
	})
	require.NoError(t, err)
	require.NotZero(t, result.EncounterID)
	require.NotNil(t, result.PrescriptionID)
	assertEncounterTables(t, f.db, 1, 1, 1)
	assert.EqualValues(t, 1, testutil.Count(t, f.db, &entity.AuditLog{}))

	encounter, err := u.GetEncounter(ctx, result.EncounterID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), encounter.DoctorID)
	assert.Equal(t, int64(3), encounter.PatientID)
	assert.Equal(t, "Dr. Vega", encounter.DoctorName)
	assert.True(t, encounter.HasPrescription)
	require.NotNil(t, encounter.Vitals.TemperatureC)
	assert.Equal(t, "36.5", encounter.Vitals.TemperatureC.String())
	assert.Nil(t, encounter.Vitals.Glycemia)

	prescription, err := u.GetPrescription(ctx, *result.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, result.EncounterID, prescription.EncounterID)
	require.Len(t, prescription.Lines, 1)
	assert.Equal(t, "Amoxicillin", prescription.Lines[0].MedicationName)

	byEncounter, err := u.GetPrescriptionByEncounter(ctx, result.EncounterID)
	require.NoError(t, err)
	assert.Equal(t, prescription.ID, byEncounter.ID)
}

func TestEncounterUsecase_RecordWithoutLinesCreatesNoPrescription(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	result, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID:                patient.ID,
		Diagnosis:                "Z00.0",
		PrescriptionObservations: "none needed",
		PrescriptionLines:        []dto.PrescriptionLineRequest{},
	})
	require.NoError(t, err)
	assert.Nil(t, result.PrescriptionID)
	assertEncounterTables(t, f.db, 1, 0, 0)

	_, err = u.GetPrescriptionByEncounter(ctx, result.EncounterID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestEncounterUsecase_RecordKeepsLineOrder(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	lines := []dto.PrescriptionLineRequest{
		amoxicillin(),
		{MedicationName: "Ibuprofen", Dose: "400 mg", Frequency: "every 12 hours", Duration: "3 days"},
		{MedicationName: "Loratadine", Dose: "10 mg", Frequency: "daily", Duration: "5 days"},
	}
	result, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID:                patient.ID,
		Diagnosis:                "J03.9",
		PrescriptionObservations: "Take with food",
		PrescriptionLines:        lines,
	})
	require.NoError(t, err)
	require.NotNil(t, result.PrescriptionID)
	assertEncounterTables(t, f.db, 1, 1, 3)

	prescription, err := u.GetPrescription(ctx, *result.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, "Take with food", prescription.Observations)
	require.Len(t, prescription.Lines, 3)
	for i, line := range lines {
		assert.Equal(t, line.MedicationName, prescription.Lines[i].MedicationName)
	}
}

func TestEncounterUsecase_FailedLineInsertLeavesNothing(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encountersWith(brokenLinesRepository{PrescriptionRepository: f.prescriptionRepo})

	result, err := u.RecordEncounter(context.Background(), doctor.ID, &dto.RecordEncounterRequest{
		PatientID:         patient.ID,
		Diagnosis:         "J03.9",
		PrescriptionLines: []dto.PrescriptionLineRequest{amoxicillin(), amoxicillin()},
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEncounterSaveFailed)
	assertEncounterTables(t, f.db, 0, 0, 0)
	assert.Zero(t, testutil.Count(t, f.db, &entity.AuditLog{}))
}

func TestEncounterUsecase_RecordValidation(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	other := testutil.SeedDoctor(t, f.db, 0, "Dr. Ruiz", "Dermatology")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	_, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{PatientID: patient.ID, Diagnosis: "  "})
	assert.ErrorIs(t, err, ErrDiagnosisRequired)

	incomplete := amoxicillin()
	incomplete.Dose = ""
	_, err = u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID:         patient.ID,
		Diagnosis:         "J03.9",
		PrescriptionLines: []dto.PrescriptionLineRequest{amoxicillin(), incomplete},
	})
	assert.ErrorIs(t, err, ErrIncompletePrescriptionLine)
	assert.Contains(t, err.Error(), "line 2")

	_, err = u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{PatientID: patient.ID + 99, Diagnosis: "J03.9"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	appointment, err := f.appointments(strictPolicy).CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{
		DoctorID: other.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Rash",
	})
	require.NoError(t, err)
	_, err = u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID: patient.ID, AppointmentID: &appointment.ID, Diagnosis: "L30.9",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assertEncounterTables(t, f.db, 0, 0, 0)
}

func TestEncounterUsecase_RecordLinkedToAppointment(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	appointment, err := f.appointments(strictPolicy).CreateAppointment(ctx, patient.ID, &dto.CreateAppointmentRequest{
		DoctorID: doctor.ID, ScheduledAt: "2026-10-20T09:30", Reason: "Cough",
	})
	require.NoError(t, err)

	result, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID: patient.ID, AppointmentID: &appointment.ID, Diagnosis: "R05",
	})
	require.NoError(t, err)

	encounter, err := u.GetEncounter(ctx, result.EncounterID)
	require.NoError(t, err)
	require.NotNil(t, encounter.AppointmentID)
	assert.Equal(t, appointment.ID, *encounter.AppointmentID)
	assert.False(t, encounter.HasPrescription)
}

func TestEncounterUsecase_ListPatientEncounters(t *testing.T) {
	f := newFixture(t)
	doctor := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Internal Medicine")
	patient := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")
	u := f.encounters()
	ctx := context.Background()

	first, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{
		PatientID: patient.ID, Diagnosis: "J03.9", PrescriptionLines: []dto.PrescriptionLineRequest{amoxicillin()},
	})
	require.NoError(t, err)
	second, err := u.RecordEncounter(ctx, doctor.ID, &dto.RecordEncounterRequest{PatientID: patient.ID, Diagnosis: "Z00.0"})
	require.NoError(t, err)

	list, err := u.ListPatientEncounters(ctx, patient.ID)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, second.EncounterID, list.Encounters[0].ID)
	assert.False(t, list.Encounters[0].HasPrescription)
	assert.Equal(t, first.EncounterID, list.Encounters[1].ID)
	assert.True(t, list.Encounters[1].HasPrescription)
	assert.Nil(t, list.Encounters[1].Prescription)

	_, err = u.ListPatientEncounters(ctx, patient.ID+99)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = u.GetEncounter(ctx, second.EncounterID+99)
	assert.ErrorIs(t, err, ErrEncounterNotFound)
}
