// Package testutil builds the in-memory database, Redis and fixtures shared
// by repository, usecase and handler tests.
package testutil

import (
	"context"
	"io"
	"testing"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.DoctorAvailabilitySlot{},
		&entity.Appointment{},
		&entity.Encounter{},
		&entity.Prescription{},
		&entity.PrescriptionLine{},
		&entity.AuditLog{},
	))

	require.NoError(t, db.Create(&[]entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}).Error)

	return db
}

// NewRedis starts a miniredis server bound to the test lifetime.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewMetrics registers metrics on a throwaway registry.
func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry(), "test")
}

// SeedDoctor inserts a doctor account and profile. id 0 lets the database
// choose the profile id.
func SeedDoctor(t *testing.T, db *gorm.DB, id int64, fullName, specialization string) *entity.DoctorProfile {
	t.Helper()

	user := seedUser(t, db, entity.RoleIDDoctor, fullName)
	profile := &entity.DoctorProfile{ID: id, UserID: user.ID, Specialization: specialization}
	require.NoError(t, db.Omit("User").Create(profile).Error)
	profile.User = *user
	return profile
}

// SeedPatient inserts a patient account and profile.
func SeedPatient(t *testing.T, db *gorm.DB, id int64, fullName string) *entity.PatientProfile {
	t.Helper()

	user := seedUser(t, db, entity.RoleIDPatient, fullName)
	profile := &entity.PatientProfile{ID: id, UserID: user.ID}
	require.NoError(t, db.Omit("User").Create(profile).Error)
	profile.User = *user
	return profile
}

// SeedAdmin inserts an admin account.
func SeedAdmin(t *testing.T, db *gorm.DB, fullName string) *entity.User {
	t.Helper()
	return seedUser(t, db, entity.RoleIDAdmin, fullName)
}

func seedUser(t *testing.T, db *gorm.DB, roleID int, fullName string) *entity.User {
	t.Helper()

	id := uuid.New()
	user := &entity.User{
		ID:       id,
		RoleID:   roleID,
		Email:    id.String() + "@hospital.test",
		FullName: fullName,
	}
	require.NoError(t, db.WithContext(context.Background()).Omit("Role").Create(user).Error)
	return user
}

// Count returns the number of rows in model's table.
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
