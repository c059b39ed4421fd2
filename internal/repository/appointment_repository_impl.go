package repository

import (
	"context"
	"errors"
	"time"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateStatus writes a decision only on the doctor's own appointment and,
// when RequireStatus is set, only if the row is still in that state.
// Returns affected rows: 0 means the guard did not match.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, update domainRepo.StatusUpdate) (int64, error) {
	query := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND doctor_id = ?", update.AppointmentID, update.DoctorID)
	if update.RequireStatus != nil {
		query = query.Where("status = ?", *update.RequireStatus)
	}
	result := query.Updates(map[string]interface{}{
		"status":          update.Status,
		"transitioned_at": update.TransitionedAt,
		"transitioned_by": update.DoctorID,
	})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindByDoctorAndStatus(ctx context.Context, db *gorm.DB, doctorID int64, status entity.AppointmentStatus, ascending bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient.User").
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Order(scheduledOrder(ascending)).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order(scheduledOrder(false)).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientAndStatus(ctx context.Context, db *gorm.DB, patientID int64, status entity.AppointmentStatus, ascending bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ? AND status = ?", patientID, status).
		Order(scheduledOrder(ascending)).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByDoctorAndStatus(ctx context.Context, db *gorm.DB, doctorID int64, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountDecidedForPatientSince(ctx context.Context, db *gorm.DB, patientID int64, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("patient_id = ? AND status IN ? AND transitioned_at >= ?", patientID,
			[]entity.AppointmentStatus{entity.AppointmentStatusAccepted, entity.AppointmentStatusRejected}, since).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) FindRecentDecidedForPatient(ctx context.Context, db *gorm.DB, patientID int64, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ? AND status IN ?", patientID,
			[]entity.AppointmentStatus{entity.AppointmentStatusAccepted, entity.AppointmentStatusRejected}).
		Order(scheduledOrder(false)).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func scheduledOrder(ascending bool) string {
	if ascending {
		return "scheduled_at ASC, id ASC"
	}
	return "scheduled_at DESC, id DESC"
}
