package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.DoctorProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	// FindSpecializations lists the distinct specializations of active
	// doctors in alphabetical order.
	FindSpecializations(ctx context.Context, db *gorm.DB) ([]string, error)
	FindBySpecialization(ctx context.Context, db *gorm.DB, specialization string) ([]entity.DoctorProfile, error)
}
