package repository

import (
	"context"
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorAvailabilityRepository struct{}

func NewDoctorAvailabilityRepository() domainRepo.DoctorAvailabilityRepository {
	return &doctorAvailabilityRepository{}
}

func (r *doctorAvailabilityRepository) Upsert(ctx context.Context, db *gorm.DB, slot *entity.DoctorAvailabilitySlot) error {
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
		}).
		Create(slot).Error
}

func (r *doctorAvailabilityRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID int64) ([]entity.DoctorAvailabilitySlot, error) {
	var slots []entity.DoctorAvailabilitySlot
	err := db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *doctorAvailabilityRepository) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID int64, day entity.Weekday) (*entity.DoctorAvailabilitySlot, error) {
	var slot entity.DoctorAvailabilitySlot
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// DeleteByIDAndDoctor removes a slot only when it belongs to doctorID.
// Returns affected rows: 0 means missing or owned by someone else.
func (r *doctorAvailabilityRepository) DeleteByIDAndDoctor(ctx context.Context, db *gorm.DB, id, doctorID int64) (int64, error) {
	result := db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Delete(&entity.DoctorAvailabilitySlot{})
	return result.RowsAffected, result.Error
}
