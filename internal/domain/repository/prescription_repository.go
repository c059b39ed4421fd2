package repository

import (
	"context"

	"hospital-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
	CreateLines(ctx context.Context, db *gorm.DB, lines []entity.PrescriptionLine) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Prescription, error)
	FindByEncounterID(ctx context.Context, db *gorm.DB, encounterID int64) (*entity.Prescription, error)
}
