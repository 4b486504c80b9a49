package usecase

import (
	"context"
	"testing"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func activeProfessionalProfile(id uuid.UUID) *entity.ProfessionalProfile {
	return &entity.ProfessionalProfile{
		UserID:          id,
		LicenseNumber:   "LIC-001",
		ConsultationFee: decimal.NewFromInt(150),
		User: entity.User{
			ID:       id,
			RoleID:   entity.RoleIDProfessional,
			FullName: "Dr. Ana Costa",
			IsActive: true,
		},
	}
}

func TestProfessionalUpdateStatus_DeactivationRevokesTokens(t *testing.T) {
	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	tokens := service.NewTokenStore(client, quietLogger(), time.Minute, time.Hour)

	professionalID := uuid.New()
	require.NoError(t, tokens.Save(context.Background(), professionalID, "access-1", "refresh-1"))

	var saved *entity.User
	users := &mockUserRepo{
		UpdateFn: func(ctx context.Context, db *gorm.DB, user *entity.User) error {
			saved = user
			return nil
		},
	}
	profiles := &mockProfessionalProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
			return activeProfessionalProfile(userID), nil
		},
	}
	audit := &mockAuditService{}
	u := NewProfessionalUsecase(db, quietLogger(), users, profiles, &mockSpecialtyRepo{}, nil, &mockReviewRepo{}, tokens, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	inactive := false
	resp, err := u.UpdateStatus(ctxAs(uuid.New(), entity.RoleIDAdmin), professionalID, &dto.UpdateProfessionalStatusRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	require.NotNil(t, saved)
	assert.Equal(t, professionalID, saved.ID)
	assert.Equal(t, []string{entity.AuditActionProfessionalStatus}, audit.Actions)

	valid, err := tokens.IsAccessValid(context.Background(), professionalID, "access-1")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessionalUpdateStatus_UnknownProfessional(t *testing.T) {
	db, mock := newMockDB(t)
	u := NewProfessionalUsecase(db, quietLogger(), &mockUserRepo{}, &mockProfessionalProfileRepo{}, &mockSpecialtyRepo{}, nil, &mockReviewRepo{}, nil, &mockAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	active := true
	_, err := u.UpdateStatus(ctxAs(uuid.New(), entity.RoleIDAdmin), uuid.New(), &dto.UpdateProfessionalStatusRequest{IsActive: &active})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessionalUpdateMe(t *testing.T) {
	professionalID := uuid.New()
	specialtyID := uuid.New()

	tests := []struct {
		name string
		req  dto.UpdateProfessionalProfileRequest
		err  error
	}{
		{name: "negative fee", req: dto.UpdateProfessionalProfileRequest{ConsultationFee: decimalPtr(decimal.NewFromInt(-1))}, err: ErrInvalidAmount},
		{name: "unknown specialty", req: dto.UpdateProfessionalProfileRequest{SpecialtyID: strPtr(uuid.New().String())}, err: ErrSpecialtyNotFound},
		{name: "known specialty", req: dto.UpdateProfessionalProfileRequest{SpecialtyID: strPtr(specialtyID.String()), Biography: strPtr("Cardiologist")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			profiles := &mockProfessionalProfileRepo{
				FindByUserIDFn: func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
					return activeProfessionalProfile(userID), nil
				},
			}
			specialties := &mockSpecialtyRepo{
				FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error) {
					if id == specialtyID {
						return &entity.Specialty{ID: id, Name: "Cardiology"}, nil
					}
					return nil, nil
				},
			}
			u := NewProfessionalUsecase(db, quietLogger(), &mockUserRepo{}, profiles, specialties, nil, &mockReviewRepo{}, nil, &mockAuditService{})

			mock.ExpectBegin()
			if tt.err != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			resp, err := u.UpdateMe(ctxAs(professionalID, entity.RoleIDProfessional), &tt.req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp.Specialty)
				assert.Equal(t, "Cardiology", resp.Specialty.Name)
				assert.Equal(t, "Cardiologist", resp.Biography)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func strPtr(s string) *string { return &s }

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
