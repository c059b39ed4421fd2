package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-scheduling/config"
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
	ErrInvalidTargetState        = errors.New("target state must be Accepted or Rejected")
	ErrAppointmentNotFound       = errors.New("appointment not found")
	ErrAppointmentAlreadyDecided = errors.New("appointment has already been decided")
	ErrInvalidScheduledAt        = errors.New("scheduled_at must be a valid date and time")
	ErrReasonRequired            = errors.New("reason is required")
	ErrOutsideAvailability       = errors.New("requested time is outside the doctor's availability")
	ErrDoctorNotFound            = errors.New("doctor not found")
	ErrPatientNotFound           = errors.New("patient not found")
)

var scheduledAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	TransitionAppointment(ctx context.Context, doctorID, appointmentID int64, req *dto.TransitionAppointmentRequest) (*dto.AppointmentResponse, error)
	ListPendingForDoctor(ctx context.Context, doctorID int64) (*dto.AppointmentListResponse, error)
	ListAcceptedForDoctor(ctx context.Context, doctorID int64) (*dto.AppointmentListResponse, error)
	ListForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error)
	ListPendingForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error)
	ListAcceptedForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	metrics          *metrics.Metrics
	policy           config.SchedulingConfig
	appointmentRepo  repository.AppointmentRepository
	availabilityRepo repository.DoctorAvailabilityRepository
	doctorRepo       repository.DoctorProfileRepository
	patientRepo      repository.PatientProfileRepository
	auditService     service.AuditService
	badgeCache       service.BadgeCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	m *metrics.Metrics,
	policy config.SchedulingConfig,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.DoctorAvailabilityRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	badgeCache service.BadgeCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		metrics:          m,
		policy:           policy,
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
		badgeCache:       badgeCache,
	}
}

// CreateAppointment records a patient's request. New appointments are
// always Pending. Availability is only consulted when the policy asks.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	scheduledAt, err := parseScheduledAt(req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if u.policy.EnforceAvailability {
		slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find availability for doctor %d: %+v", req.DoctorID, err)
			return nil, err
		}
		if !entity.IsWithinAvailability(slots, scheduledAt) {
			return nil, ErrOutsideAvailability
		}
	}

	appointment := &entity.Appointment{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: scheduledAt,
		Reason:      reason,
		Status:      entity.AppointmentStatusPending,
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionAppointmentCreate,
		"appointment", strconv.FormatInt(appointment.ID, 10), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment: %+v", err)
		return nil, err
	}

	u.invalidateBadges(ctx, service.DoctorPendingKey(req.DoctorID))
	u.metrics.AppointmentsCreated.Inc()
	u.log.Infof("Appointment requested: id=%d, patient=%d, doctor=%d, at=%s", appointment.ID, patientID, req.DoctorID, scheduledAt.Format(time.RFC3339))

	appointment.Doctor = doctor
	return converter.AppointmentToResponse(appointment), nil
}

// TransitionAppointment moves the doctor's appointment to Accepted or
// Rejected. Ownership and, in strict mode, the Pending precondition are
// part of the UPDATE itself so concurrent decisions cannot both win.
func (u *appointmentUsecase) TransitionAppointment(ctx context.Context, doctorID, appointmentID int64, req *dto.TransitionAppointmentRequest) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(req.Status)
	if !entity.CanTransition(entity.AppointmentStatusPending, target, u.policy.StrictTransitions) {
		u.metrics.AppointmentTransitions.WithLabelValues(req.Status, "invalid").Inc()
		return nil, ErrInvalidTargetState
	}

	update := repository.StatusUpdate{
		AppointmentID:  appointmentID,
		DoctorID:       doctorID,
		Status:         target,
		TransitionedAt: time.Now().UTC(),
	}
	if u.policy.StrictTransitions {
		pending := entity.AppointmentStatusPending
		update.RequireStatus = &pending
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	// The prior row only feeds the audit trail and the error choice; the
	// guarded UPDATE below still decides who wins.
	previous, err := u.appointmentRepo.FindByID(ctx, tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if previous == nil || previous.DoctorID != doctorID {
		u.metrics.AppointmentTransitions.WithLabelValues(string(target), "not_found").Inc()
		return nil, ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.UpdateStatus(ctx, tx, update)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		u.metrics.AppointmentTransitions.WithLabelValues(string(target), "conflict").Inc()
		return nil, ErrAppointmentAlreadyDecided
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, appointmentID)
	if err != nil || appointment == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointmentID, err)
		return nil, fmt.Errorf("reload appointment %d: %w", appointmentID, err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionAppointmentTransition,
		"appointment", strconv.FormatInt(appointmentID, 10), map[string]interface{}{
			"status":          previous.Status,
			"transitioned_at": previous.TransitionedAt,
		}, map[string]interface{}{
			"status":          appointment.Status,
			"transitioned_at": appointment.TransitionedAt,
			"doctor_id":       doctorID,
		}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment transition: %+v", err)
		return nil, err
	}

	u.invalidateBadges(ctx, service.DoctorPendingKey(doctorID), service.PatientDecidedKey(appointment.PatientID))
	u.metrics.AppointmentTransitions.WithLabelValues(string(target), "ok").Inc()
	u.log.Infof("Appointment %d set to %s by doctor %d", appointmentID, target, doctorID)
	return converter.AppointmentToResponse(appointment), nil
}

// ListPendingForDoctor returns requests awaiting a decision, soonest first.
func (u *appointmentUsecase) ListPendingForDoctor(ctx context.Context, doctorID int64) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorAndStatus(ctx, u.db, doctorID, entity.AppointmentStatusPending, true)
	if err != nil {
		u.log.Warnf("Failed to find pending appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return toAppointmentList(appointments), nil
}

// ListAcceptedForDoctor returns the accepted agenda, latest first.
func (u *appointmentUsecase) ListAcceptedForDoctor(ctx context.Context, doctorID int64) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorAndStatus(ctx, u.db, doctorID, entity.AppointmentStatusAccepted, false)
	if err != nil {
		u.log.Warnf("Failed to find accepted appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return toAppointmentList(appointments), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return toAppointmentList(appointments), nil
}

func (u *appointmentUsecase) ListPendingForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error) {
	if err := u.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindByPatientAndStatus(ctx, u.db, patientID, entity.AppointmentStatusPending, true)
	if err != nil {
		u.log.Warnf("Failed to find pending appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return toAppointmentList(appointments), nil
}

func (u *appointmentUsecase) ListAcceptedForPatient(ctx context.Context, patientID int64) (*dto.AppointmentListResponse, error) {
	if err := u.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	appointments, err := u.appointmentRepo.FindByPatientAndStatus(ctx, u.db, patientID, entity.AppointmentStatusAccepted, false)
	if err != nil {
		u.log.Warnf("Failed to find accepted appointments for patient %d: %+v", patientID, err)
		return nil, err
	}
	return toAppointmentList(appointments), nil
}

func (u *appointmentUsecase) ensurePatient(ctx context.Context, patientID int64) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

// invalidateBadges drops cached counters after a committed change. A cache
// failure only delays the badge until its TTL runs out.
func (u *appointmentUsecase) invalidateBadges(ctx context.Context, keys ...string) {
	if err := u.badgeCache.Invalidate(ctx, keys...); err != nil {
		u.log.Warnf("Failed to invalidate badge cache (non-fatal): %+v", err)
	}
}

func toAppointmentList(appointments []entity.Appointment) *dto.AppointmentListResponse {
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}

func parseScheduledAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range scheduledAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidScheduledAt
}
