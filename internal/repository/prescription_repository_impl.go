package repository

import (
	"context"
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(prescription).Error
}

// CreateLines inserts one row per line.
func (r *prescriptionRepository) CreateLines(ctx context.Context, db *gorm.DB, lines []entity.PrescriptionLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&lines).Error
}

func (r *prescriptionRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Prescription, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *prescriptionRepository) FindByEncounterID(ctx context.Context, db *gorm.DB, encounterID int64) (*entity.Prescription, error) {
	return r.findOne(ctx, db, "encounter_id = ?", encounterID)
}

func (r *prescriptionRepository) findOne(ctx context.Context, db *gorm.DB, cond string, arg int64) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where(cond, arg).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}
