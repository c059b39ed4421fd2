package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSpecializationRequired = errors.New("specialization is required")

// DirectoryUsecase serves the read-only lookups that feed booking and
// encounter forms.
type DirectoryUsecase interface {
	ListSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error)
	ListDoctorsBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type directoryUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorProfileRepository
	patientRepo repository.PatientProfileRepository
}

func NewDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
) DirectoryUsecase {
	return &directoryUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

func (u *directoryUsecase) ListSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error) {
	specializations, err := u.doctorRepo.FindSpecializations(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find specializations: %+v", err)
		return nil, err
	}
	if specializations == nil {
		specializations = []string{}
	}

	return &dto.SpecializationListResponse{
		Specializations: specializations,
		Total:           len(specializations),
	}, nil
}

// ListDoctorsBySpecialization matches the specialization exactly after
// trimming surrounding spaces.
func (u *directoryUsecase) ListDoctorsBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	specialization = strings.TrimSpace(specialization)
	if specialization == "" {
		return nil, ErrSpecializationRequired
	}

	doctors, err := u.doctorRepo.FindBySpecialization(ctx, u.db, specialization)
	if err != nil {
		u.log.Warnf("Failed to find doctors for %q: %+v", specialization, err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToSummaries(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *directoryUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToSummaries(patients),
		Total:    len(patients),
	}, nil
}
