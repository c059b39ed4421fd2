package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDiagnosisRequired          = errors.New("diagnosis is required")
	ErrIncompletePrescriptionLine = errors.New("prescription line requires medication name, dose, frequency and duration")
	ErrEncounterSaveFailed        = errors.New("could not save encounter, no changes were made")
	ErrEncounterNotFound          = errors.New("encounter not found")
	ErrPrescriptionNotFound       = errors.New("prescription not found")
)

type EncounterUsecase interface {
	RecordEncounter(ctx context.Context, doctorID int64, req *dto.RecordEncounterRequest) (*dto.RecordEncounterResponse, error)
	GetEncounter(ctx context.Context, encounterID int64) (*dto.EncounterResponse, error)
	ListPatientEncounters(ctx context.Context, patientID int64) (*dto.EncounterListResponse, error)
	GetPrescription(ctx context.Context, prescriptionID int64) (*dto.PrescriptionResponse, error)
	GetPrescriptionByEncounter(ctx context.Context, encounterID int64) (*dto.PrescriptionResponse, error)
}

type encounterUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	metrics          *metrics.Metrics
	encounterRepo    repository.EncounterRepository
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientProfileRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
}

func NewEncounterUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	m *metrics.Metrics,
	encounterRepo repository.EncounterRepository,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) EncounterUsecase {
	return &encounterUsecase{
		db:               db,
		log:              log,
		metrics:          m,
		encounterRepo:    encounterRepo,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
	}
}

// RecordEncounter saves a visit, its vitals and an optional prescription
// as one unit.
//
// Flow:
// 1. Validate input and referenced records (no transaction yet)
// 2. Begin transaction
// 3. Insert encounter
// 4. If there are lines: insert prescription header, then one row per line
// 5. Write audit row and commit
//
// Any failure after step 2 rolls everything back and returns
// ErrEncounterSaveFailed. Nothing is retried.
func (u *encounterUsecase) RecordEncounter(ctx context.Context, doctorID int64, req *dto.RecordEncounterRequest) (*dto.RecordEncounterResponse, error) {
	diagnosis := strings.TrimSpace(req.Diagnosis)
	if diagnosis == "" {
		return nil, ErrDiagnosisRequired
	}

	lines := make([]entity.PrescriptionLine, 0, len(req.PrescriptionLines))
	for i, line := range req.PrescriptionLines {
		normalized := entity.PrescriptionLine{
			MedicationName: strings.TrimSpace(line.MedicationName),
			Dose:           strings.TrimSpace(line.Dose),
			Frequency:      strings.TrimSpace(line.Frequency),
			Duration:       strings.TrimSpace(line.Duration),
		}
		if normalized.MedicationName == "" || normalized.Dose == "" || normalized.Frequency == "" || normalized.Duration == "" {
			return nil, fmt.Errorf("%w: line %d", ErrIncompletePrescriptionLine, i+1)
		}
		lines = append(lines, normalized)
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, u.db, *req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %d: %+v", *req.AppointmentID, err)
			return nil, err
		}
		if appointment == nil || appointment.DoctorID != doctorID || appointment.PatientID != req.PatientID {
			return nil, ErrAppointmentNotFound
		}
	}

	encounter := &entity.Encounter{
		PatientID:      req.PatientID,
		DoctorID:       doctorID,
		AppointmentID:  req.AppointmentID,
		ReasonForVisit: strings.TrimSpace(req.ReasonForVisit),
		Diagnosis:      diagnosis,
		EvolutionNotes: strings.TrimSpace(req.EvolutionNotes),
	}
	applyVitals(encounter, req.Vitals)

	startTime := time.Now()
	result, err := u.saveEncounter(ctx, encounter, req.PrescriptionObservations, lines)
	u.metrics.EncounterLatency.Observe(time.Since(startTime).Seconds())
	if err != nil {
		u.metrics.EncountersRecorded.WithLabelValues("failed").Inc()
		u.log.Errorf("Encounter transaction rolled back for patient %d, doctor %d: %+v", req.PatientID, doctorID, err)
		return nil, ErrEncounterSaveFailed
	}

	u.metrics.EncountersRecorded.WithLabelValues("ok").Inc()
	u.log.Infof("Encounter recorded: id=%d, patient=%d, doctor=%d, lines=%d", result.EncounterID, req.PatientID, doctorID, len(lines))
	return result, nil
}

func (u *encounterUsecase) saveEncounter(ctx context.Context, encounter *entity.Encounter, observations string, lines []entity.PrescriptionLine) (*dto.RecordEncounterResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	if err := u.encounterRepo.Create(ctx, tx, encounter); err != nil {
		return nil, fmt.Errorf("insert encounter: %w", err)
	}

	result := &dto.RecordEncounterResponse{EncounterID: encounter.ID}

	if len(lines) > 0 {
		prescription := &entity.Prescription{
			EncounterID:  encounter.ID,
			Observations: strings.TrimSpace(observations),
		}
		if err := u.prescriptionRepo.Create(ctx, tx, prescription); err != nil {
			return nil, fmt.Errorf("insert prescription: %w", err)
		}

		for i := range lines {
			lines[i].PrescriptionID = prescription.ID
		}
		if err := u.prescriptionRepo.CreateLines(ctx, tx, lines); err != nil {
			return nil, fmt.Errorf("insert prescription lines: %w", err)
		}

		result.PrescriptionID = &prescription.ID
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionEncounterRecord,
		"encounter", strconv.FormatInt(encounter.ID, 10), result); err != nil {
		return nil, fmt.Errorf("audit encounter: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return result, nil
}

func (u *encounterUsecase) GetEncounter(ctx context.Context, encounterID int64) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(ctx, u.db, encounterID)
	if err != nil {
		u.log.Warnf("Failed to find encounter %d: %+v", encounterID, err)
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	return converter.EncounterToResponse(encounter), nil
}

// ListPatientEncounters returns the patient's history, newest first, with a
// flag telling which visits produced a prescription.
func (u *encounterUsecase) ListPatientEncounters(ctx context.Context, patientID int64) (*dto.EncounterListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	encounters, err := u.encounterRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find encounters for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.EncounterListResponse{
		Encounters: converter.EncountersToResponses(encounters),
		Total:      len(encounters),
	}, nil
}

func (u *encounterUsecase) GetPrescription(ctx context.Context, prescriptionID int64) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(ctx, u.db, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *encounterUsecase) GetPrescriptionByEncounter(ctx context.Context, encounterID int64) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByEncounterID(ctx, u.db, encounterID)
	if err != nil {
		u.log.Warnf("Failed to find prescription for encounter %d: %+v", encounterID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}
