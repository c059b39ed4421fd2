package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found for user")

// ProfileResolver maps an authenticated user to the numeric doctor or
// patient id. Profiles never change owner, so results are cached in memory.
type ProfileResolver interface {
	DoctorIDForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	PatientIDForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type profileResolver struct {
	db          *gorm.DB
	log         *logrus.Logger
	cache       *cache.Cache
	doctorRepo  repository.DoctorProfileRepository
	patientRepo repository.PatientProfileRepository
}

func NewProfileResolver(
	db *gorm.DB,
	log *logrus.Logger,
	ttl time.Duration,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
) ProfileResolver {
	return &profileResolver{
		db:          db,
		log:         log,
		cache:       cache.New(ttl, 2*ttl),
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
	}
}

func (r *profileResolver) DoctorIDForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := "doctor:" + userID.String()
	if id, found := r.cache.Get(key); found {
		return id.(int64), nil
	}

	profile, err := r.doctorRepo.FindByUserID(ctx, r.db, userID)
	if err != nil {
		r.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, err)
		return 0, fmt.Errorf("resolve doctor profile: %w", err)
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}

	r.cache.SetDefault(key, profile.ID)
	return profile.ID, nil
}

func (r *profileResolver) PatientIDForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := "patient:" + userID.String()
	if id, found := r.cache.Get(key); found {
		return id.(int64), nil
	}

	profile, err := r.patientRepo.FindByUserID(ctx, r.db, userID)
	if err != nil {
		r.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
		return 0, fmt.Errorf("resolve patient profile: %w", err)
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}

	r.cache.SetDefault(key, profile.ID)
	return profile.ID, nil
}
