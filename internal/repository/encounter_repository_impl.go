package repository

import (
	"context"
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type encounterRepository struct{}

func NewEncounterRepository() domainRepo.EncounterRepository {
	return &encounterRepository{}
}

func (r *encounterRepository) Create(ctx context.Context, db *gorm.DB, encounter *entity.Encounter) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(encounter).Error
}

func (r *encounterRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Encounter, error) {
	var encounter entity.Encounter
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Prescription.Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		First(&encounter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &encounter, nil
}

// FindByPatientID lists a patient's encounters newest first. Only the
// prescription header is loaded, enough to flag which visits have one.
func (r *encounterRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Encounter, error) {
	var encounters []entity.Encounter
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Prescription").
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Find(&encounters).Error
	if err != nil {
		return nil, err
	}
	return encounters, nil
}
