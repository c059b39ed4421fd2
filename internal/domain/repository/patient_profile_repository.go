package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.PatientProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error)
}
