package usecase

import (
	"context"
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

// decisionWindow is how long a patient keeps seeing a decided appointment
// in the notification badge.
const decisionWindow = 24 * time.Hour

// notificationListLimit caps the patient's notification list.
const notificationListLimit = 5

type NotificationUsecase interface {
	DoctorPendingCount(ctx context.Context, doctorID int64) (*dto.BadgeCountResponse, error)
	PatientNotificationCount(ctx context.Context, patientID int64) (*dto.BadgeCountResponse, error)
	PatientNotificationList(ctx context.Context, patientID int64) (*dto.NotificationListResponse, error)
}

type notificationUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	metrics         *metrics.Metrics
	appointmentRepo repository.AppointmentRepository
	badgeCache      service.BadgeCache
	now             func() time.Time
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	m *metrics.Metrics,
	appointmentRepo repository.AppointmentRepository,
	badgeCache service.BadgeCache,
) NotificationUsecase {
	return &notificationUsecase{
		db:              db,
		log:             log,
		metrics:         m,
		appointmentRepo: appointmentRepo,
		badgeCache:      badgeCache,
		now:             time.Now,
	}
}

// DoctorPendingCount is the number of appointments waiting for the doctor.
func (u *notificationUsecase) DoctorPendingCount(ctx context.Context, doctorID int64) (*dto.BadgeCountResponse, error) {
	key := service.DoctorPendingKey(doctorID)
	return u.cachedCount(ctx, key, func() (int64, error) {
		return u.appointmentRepo.CountByDoctorAndStatus(ctx, u.db, doctorID, entity.AppointmentStatusPending)
	})
}

// PatientNotificationCount is the number of the patient's appointments
// accepted or rejected during the last day.
func (u *notificationUsecase) PatientNotificationCount(ctx context.Context, patientID int64) (*dto.BadgeCountResponse, error) {
	key := service.PatientDecidedKey(patientID)
	since := u.now().UTC().Add(-decisionWindow)
	return u.cachedCount(ctx, key, func() (int64, error) {
		return u.appointmentRepo.CountDecidedForPatientSince(ctx, u.db, patientID, since)
	})
}

// PatientNotificationList returns the patient's latest decided
// appointments, latest scheduled first. Unlike the badge it has no time
// window and is never cached.
func (u *notificationUsecase) PatientNotificationList(ctx context.Context, patientID int64) (*dto.NotificationListResponse, error) {
	appointments, err := u.appointmentRepo.FindRecentDecidedForPatient(ctx, u.db, patientID, notificationListLimit)
	if err != nil {
		u.log.Warnf("Failed to find notifications for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.AppointmentsToNotifications(appointments),
		Total:         len(appointments),
	}, nil
}

func (u *notificationUsecase) cachedCount(ctx context.Context, key string, load func() (int64, error)) (*dto.BadgeCountResponse, error) {
	count, found, err := u.badgeCache.Get(ctx, key)
	if err != nil {
		u.log.Warnf("Failed to read badge %s, falling back to database: %+v", key, err)
	}
	if found {
		u.metrics.BadgeCacheLookups.WithLabelValues("hit").Inc()
		return &dto.BadgeCountResponse{Count: count}, nil
	}
	u.metrics.BadgeCacheLookups.WithLabelValues("miss").Inc()

	count, err = load()
	if err != nil {
		u.log.Warnf("Failed to count badge %s: %+v", key, err)
		return nil, err
	}

	if err := u.badgeCache.Set(ctx, key, count); err != nil {
		u.log.Warnf("Failed to store badge %s (non-fatal): %+v", key, err)
	}

	return &dto.BadgeCountResponse{Count: count}, nil
}
