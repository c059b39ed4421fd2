package repository

import (
	"context"
	"errors"

	"hospital-scheduling/internal/domain/entity"
	domainRepo "hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindSpecializations(ctx context.Context, db *gorm.DB) ([]string, error) {
	var specializations []string
	err := db.WithContext(ctx).
		Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true).
		Distinct("doctor_profiles.specialization").
		Order("doctor_profiles.specialization ASC").
		Pluck("doctor_profiles.specialization", &specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

// FindBySpecialization returns active doctors of one specialization ordered
// by name.
func (r *doctorProfileRepository) FindBySpecialization(ctx context.Context, db *gorm.DB, specialization string) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ? AND doctor_profiles.specialization = ?", true, specialization).
		Order("users.full_name ASC, doctor_profiles.id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
