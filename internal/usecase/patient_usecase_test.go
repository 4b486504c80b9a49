package usecase

import (
	"context"
	"testing"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPatientUpdateMe(t *testing.T) {
	db, mock := newMockDB(t)
	patientID := uuid.New()
	patients := &mockPatientProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
			return &entity.PatientProfile{UserID: userID, Gender: "F", User: entity.User{ID: userID, FullName: "Maria Silva"}}, nil
		},
	}
	audit := &mockAuditService{}
	u := NewPatientUsecase(db, quietLogger(), patients, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := u.UpdateMe(ctxAs(patientID, entity.RoleIDPatient), &dto.UpdatePatientProfileRequest{
		DateOfBirth: strPtr("1990-04-12"),
		BloodType:   strPtr("O+"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "1990-04-12", resp.Profile.DateOfBirth)
	assert.Equal(t, "O+", resp.Profile.BloodType)
	assert.Equal(t, "F", resp.Profile.Gender)
	assert.Equal(t, []string{entity.AuditActionUserUpdate}, audit.Actions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdateMe_BadDate(t *testing.T) {
	db, mock := newMockDB(t)
	patients := &mockPatientProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
			return &entity.PatientProfile{UserID: userID}, nil
		},
	}
	u := NewPatientUsecase(db, quietLogger(), patients, &mockAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := u.UpdateMe(ctxAs(uuid.New(), entity.RoleIDPatient), &dto.UpdatePatientProfileRequest{DateOfBirth: strPtr("12/04/1990")})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientGet_NotFound(t *testing.T) {
	u := NewPatientUsecase(nil, quietLogger(), &mockPatientProfileRepo{}, &mockAuditService{})

	_, err := u.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
