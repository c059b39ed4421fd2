package usecase

import (
	"context"
	"testing"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryUsecase_Specializations(t *testing.T) {
	f := newFixture(t)
	u := f.directory()
	ctx := context.Background()

	empty, err := u.ListSpecializations(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Specializations)
	assert.Zero(t, empty.Total)

	testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Pediatrics")
	testutil.SeedDoctor(t, f.db, 0, "Dr. Ruiz", "Cardiology")
	testutil.SeedDoctor(t, f.db, 0, "Dr. Soto", "Pediatrics")

	list, err := u.ListSpecializations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Pediatrics"}, list.Specializations)
	assert.Equal(t, 2, list.Total)
}

func TestDirectoryUsecase_DoctorsBySpecialization(t *testing.T) {
	f := newFixture(t)
	vega := testutil.SeedDoctor(t, f.db, 0, "Dr. Vega", "Pediatrics")
	alba := testutil.SeedDoctor(t, f.db, 0, "Dr. Alba", "Pediatrics")
	testutil.SeedDoctor(t, f.db, 0, "Dr. Ruiz", "Cardiology")
	u := f.directory()
	ctx := context.Background()

	list, err := u.ListDoctorsBySpecialization(ctx, "  Pediatrics ")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, alba.ID, list.Doctors[0].ID)
	assert.Equal(t, "Dr. Alba", list.Doctors[0].FullName)
	assert.Equal(t, vega.ID, list.Doctors[1].ID)
	assert.Equal(t, "Pediatrics", list.Doctors[1].Specialization)

	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", alba.UserID).Update("is_active", false).Error)
	list, err = u.ListDoctorsBySpecialization(ctx, "Pediatrics")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, vega.ID, list.Doctors[0].ID)

	_, err = u.ListDoctorsBySpecialization(ctx, "   ")
	assert.ErrorIs(t, err, ErrSpecializationRequired)
}

func TestDirectoryUsecase_ListPatients(t *testing.T) {
	f := newFixture(t)
	luis := testutil.SeedPatient(t, f.db, 0, "Luis Perez")
	ana := testutil.SeedPatient(t, f.db, 0, "Ana Lopez")

	list, err := f.directory().ListPatients(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, ana.ID, list.Patients[0].ID)
	assert.Equal(t, "Ana Lopez", list.Patients[0].FullName)
	assert.Equal(t, luis.ID, list.Patients[1].ID)
}
