package usecase

import (
	"testing"
	"time"

	"hospital-scheduling/config"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"
	repoImpl "hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/service"
	"hospital-scheduling/internal/testutil"
	"hospital-scheduling/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires the usecases against an in-memory database and Redis.
type fixture struct {
	db      *gorm.DB
	redis   *miniredis.Miniredis
	log     *logrus.Logger
	metrics *metrics.Metrics
	badges  *service.RedisBadgeCache
	audit   service.AuditService

	appointmentRepo  repository.AppointmentRepository
	availabilityRepo repository.DoctorAvailabilityRepository
	doctorRepo       repository.DoctorProfileRepository
	patientRepo      repository.PatientProfileRepository
	encounterRepo    repository.EncounterRepository
	prescriptionRepo repository.PrescriptionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	server, client := testutil.NewRedis(t)
	log := testutil.NewLogger()

	return &fixture{
		db:               db,
		redis:            server,
		log:              log,
		metrics:          testutil.NewMetrics(),
		badges:           service.NewRedisBadgeCache(db, client, log, time.Minute),
		audit:            service.NewAuditService(db, log, repoImpl.NewAuditLogRepository()),
		appointmentRepo:  repoImpl.NewAppointmentRepository(),
		availabilityRepo: repoImpl.NewDoctorAvailabilityRepository(),
		doctorRepo:       repoImpl.NewDoctorProfileRepository(),
		patientRepo:      repoImpl.NewPatientProfileRepository(),
		encounterRepo:    repoImpl.NewEncounterRepository(),
		prescriptionRepo: repoImpl.NewPrescriptionRepository(),
	}
}

func (f *fixture) appointments(policy config.SchedulingConfig) AppointmentUsecase {
	return NewAppointmentUsecase(f.db, f.log, f.metrics, policy,
		f.appointmentRepo, f.availabilityRepo, f.doctorRepo, f.patientRepo, f.audit, f.badges)
}

func (f *fixture) availability() AvailabilityUsecase {
	return NewAvailabilityUsecase(f.db, f.log, f.metrics, f.availabilityRepo, f.audit)
}

func (f *fixture) encounters() EncounterUsecase {
	return f.encountersWith(f.prescriptionRepo)
}

func (f *fixture) encountersWith(prescriptionRepo repository.PrescriptionRepository) EncounterUsecase {
	return NewEncounterUsecase(f.db, f.log, f.metrics,
		f.encounterRepo, prescriptionRepo, f.patientRepo, f.appointmentRepo, f.audit)
}

func (f *fixture) directory() DirectoryUsecase {
	return NewDirectoryUsecase(f.db, f.log, f.doctorRepo, f.patientRepo)
}

func (f *fixture) notifications(now time.Time) NotificationUsecase {
	u := NewNotificationUsecase(f.db, f.log, f.metrics, f.appointmentRepo, f.badges).(*notificationUsecase)
	u.now = func() time.Time { return now }
	return u
}

var strictPolicy = config.SchedulingConfig{StrictTransitions: true}

// lastAudit returns the newest audit row recorded for action.
func lastAudit(t *testing.T, db *gorm.DB, action string) entity.AuditLog {
	t.Helper()

	var audit entity.AuditLog
	require.NoError(t, db.Where("action = ?", action).Order("id DESC").First(&audit).Error)
	return audit
}

// openTx returns a handle that already holds a transaction. Queries through
// it succeed but a nested Begin fails. Roll it back before touching f.db
// again; the in-memory database has a single connection.
func (f *fixture) openTx(t *testing.T) *gorm.DB {
	t.Helper()

	tx := f.db.Begin()
	require.NoError(t, tx.Error)
	return tx
}
