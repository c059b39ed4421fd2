package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type EncounterRepository interface {
	Create(ctx context.Context, db *gorm.DB, encounter *entity.Encounter) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Encounter, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Encounter, error)
}
