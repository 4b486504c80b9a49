package usecase

import (
	"context"
	"testing"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// specialtyCatalog is a SpecialtyRepository that rejects duplicate names the
// way the unique index does.
type specialtyCatalog struct {
	mockSpecialtyRepo
	byName map[string]uuid.UUID
}

func (c *specialtyCatalog) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	if _, taken := c.byName[specialty.Name]; taken {
		return &pgconn.PgError{Code: "23505", ConstraintName: "specialties_name_key"}
	}
	specialty.ID = uuid.New()
	c.byName[specialty.Name] = specialty.ID
	return nil
}

func (c *specialtyCatalog) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	for name, existing := range c.byName {
		if existing == id {
			delete(c.byName, name)
			return 1, nil
		}
	}
	return 0, nil
}

func TestHospitalUsecase_Specialties(t *testing.T) {
	catalog := &specialtyCatalog{byName: map[string]uuid.UUID{}}
	u := NewHospitalUsecase(nil, quietLogger(), nil, catalog)
	ctx := context.Background()

	created, err := u.CreateSpecialty(ctx, &dto.SpecialtyRequest{Name: "Cardiology"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = u.CreateSpecialty(ctx, &dto.SpecialtyRequest{Name: "Cardiology"})
	assert.ErrorIs(t, err, ErrSpecialtyAlreadyExists)

	require.NoError(t, u.DeleteSpecialty(ctx, created.ID))
	assert.ErrorIs(t, u.DeleteSpecialty(ctx, created.ID), ErrSpecialtyNotFound)

	_, err = u.GetSpecialty(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSpecialtyNotFound)
}
