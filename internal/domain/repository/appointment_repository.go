package repository

import (
	"context"
	"time"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

// StatusUpdate describes a guarded status write. When RequireStatus is set
// the row is only touched if it is currently in that state.
type StatusUpdate struct {
	AppointmentID  int64
	DoctorID       int64
	Status         entity.AppointmentStatus
	RequireStatus  *entity.AppointmentStatus
	TransitionedAt time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, update StatusUpdate) (int64, error)
	FindByDoctorAndStatus(ctx context.Context, db *gorm.DB, doctorID int64, status entity.AppointmentStatus, ascending bool) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	FindByPatientAndStatus(ctx context.Context, db *gorm.DB, patientID int64, status entity.AppointmentStatus, ascending bool) ([]entity.Appointment, error)
	CountByDoctorAndStatus(ctx context.Context, db *gorm.DB, doctorID int64, status entity.AppointmentStatus) (int64, error)
	CountDecidedForPatientSince(ctx context.Context, db *gorm.DB, patientID int64, since time.Time) (int64, error)
	// FindRecentDecidedForPatient returns up to limit Accepted or Rejected
	// appointments, latest scheduled first.
	FindRecentDecidedForPatient(ctx context.Context, db *gorm.DB, patientID int64, limit int) ([]entity.Appointment, error)
}
