package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/pkg/metrics"
	"hospital-scheduling/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDayOfWeek  = errors.New("day of week must be Monday through Sunday")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrSlotNotFound      = errors.New("availability slot not found")
)

type AvailabilityUsecase interface {
	UpsertSlot(ctx context.Context, doctorID int64, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error)
	DeleteSlot(ctx context.Context, doctorID, slotID int64) error
	ListSlots(ctx context.Context, doctorID int64) (*dto.AvailabilityListResponse, error)
	ListPublicSlots(ctx context.Context, doctorID int64) (*dto.AvailabilityListResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	metrics          *metrics.Metrics
	availabilityRepo repository.DoctorAvailabilityRepository
	auditService     service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	m *metrics.Metrics,
	availabilityRepo repository.DoctorAvailabilityRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		metrics:          m,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
	}
}

// UpsertSlot creates or replaces the doctor's window for one weekday.
// Concurrent upserts for the same day resolve to the last writer.
// Start before end is not checked.
func (u *availabilityUsecase) UpsertSlot(ctx context.Context, doctorID int64, req *dto.UpsertAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	day, ok := entity.ParseWeekday(req.DayOfWeek)
	if !ok {
		return nil, ErrInvalidDayOfWeek
	}
	if !validator.IsClock(req.StartTime) || !validator.IsClock(req.EndTime) {
		return nil, ErrInvalidTimeFormat
	}

	slot := &entity.DoctorAvailabilitySlot{
		DoctorID:  doctorID,
		DayOfWeek: day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.availabilityRepo.FindByDoctorAndDay(ctx, tx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %d on %s: %+v", doctorID, day, err)
		return nil, err
	}

	if err := u.availabilityRepo.Upsert(ctx, tx, slot); err != nil {
		u.log.Warnf("Failed to upsert availability for doctor %d on %s: %+v", doctorID, day, err)
		return nil, err
	}

	// A first slot for the day has no prior value.
	var oldValue interface{}
	if existing != nil {
		oldValue = converter.AvailabilityToResponse(existing)
	}
	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionAvailabilityUpsert,
		"doctor_availability", strconv.FormatInt(slot.ID, 10), oldValue, converter.AvailabilityToResponse(slot)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit availability upsert: %+v", err)
		return nil, err
	}

	u.metrics.AvailabilityChanges.WithLabelValues("upsert").Inc()
	u.log.Infof("Availability saved: doctor=%d, day=%s, %s-%s", doctorID, day, req.StartTime, req.EndTime)
	return converter.AvailabilityToResponse(slot), nil
}

// DeleteSlot removes a slot owned by doctorID. A slot that exists but
// belongs to another doctor is reported as not found.
func (u *availabilityUsecase) DeleteSlot(ctx context.Context, doctorID, slotID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	affected, err := u.availabilityRepo.DeleteByIDAndDoctor(ctx, tx, slotID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to delete availability %d: %+v", slotID, err)
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionAvailabilityDelete,
		"doctor_availability", strconv.FormatInt(slotID, 10), map[string]int64{"doctor_id": doctorID}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit availability delete: %+v", err)
		return err
	}

	u.metrics.AvailabilityChanges.WithLabelValues("delete").Inc()
	u.log.Infof("Availability deleted: id=%d, doctor=%d", slotID, doctorID)
	return nil
}

// ListSlots returns the doctor's weekly availability, Monday first.
func (u *availabilityUsecase) ListSlots(ctx context.Context, doctorID int64) (*dto.AvailabilityListResponse, error) {
	slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Slots: converter.AvailabilitiesToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *availabilityUsecase) ListPublicSlots(ctx context.Context, doctorID int64) (*dto.AvailabilityListResponse, error) {
	slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Slots: converter.PublicAvailabilitiesToResponses(slots),
		Total: len(slots),
	}, nil
}
