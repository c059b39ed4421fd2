package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorAvailabilityRepository interface {
	// Upsert creates or replaces the slot for (slot.DoctorID, slot.DayOfWeek)
	// in one statement and fills slot.ID with the stored row id.
	Upsert(ctx context.Context, db *gorm.DB, slot *entity.DoctorAvailabilitySlot) error
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID int64) ([]entity.DoctorAvailabilitySlot, error)
	FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID int64, day entity.Weekday) (*entity.DoctorAvailabilitySlot, error)
	DeleteByIDAndDoctor(ctx context.Context, db *gorm.DB, id, doctorID int64) (int64, error)
}
