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

func TestReviewCreate(t *testing.T) {
	patientID, professionalID := uuid.New(), uuid.New()
	completed := &entity.Appointment{ID: uuid.New(), PatientID: patientID, ProfessionalID: professionalID, Status: entity.AppointmentStatusCompleted}
	confirmed := &entity.Appointment{ID: uuid.New(), PatientID: patientID, ProfessionalID: professionalID, Status: entity.AppointmentStatusConfirmed}
	someoneElses := &entity.Appointment{ID: uuid.New(), PatientID: uuid.New(), ProfessionalID: professionalID, Status: entity.AppointmentStatusCompleted}
	reviewed := &entity.Appointment{ID: uuid.New(), PatientID: patientID, ProfessionalID: professionalID, Status: entity.AppointmentStatusCompleted}

	byID := map[uuid.UUID]*entity.Appointment{}
	for _, a := range []*entity.Appointment{completed, confirmed, someoneElses, reviewed} {
		byID[a.ID] = a
	}

	tests := []struct {
		name          string
		appointmentID string
		rating        int
		wantErr       error
	}{
		{name: "without appointment", rating: 4},
		{name: "completed appointment", appointmentID: completed.ID.String(), rating: 5},
		{name: "not completed", appointmentID: confirmed.ID.String(), rating: 5, wantErr: ErrAppointmentNotCompleted},
		{name: "other patient", appointmentID: someoneElses.ID.String(), rating: 5, wantErr: ErrForbidden},
		{name: "already reviewed", appointmentID: reviewed.ID.String(), rating: 5, wantErr: ErrAlreadyReviewed},
		{name: "unknown appointment", appointmentID: uuid.New().String(), rating: 5, wantErr: ErrAppointmentNotFound},
		{name: "rating out of range", rating: 6, wantErr: ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newMockDB(t)
			reviews := &mockReviewRepo{
				FindByAppointmentIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
					if id == reviewed.ID {
						return &entity.Review{ID: uuid.New()}, nil
					}
					return nil, nil
				},
			}
			appointments := &mockAppointmentRepo{
				FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
					return byID[id], nil
				},
			}
			professionals := &mockProfessionalProfileRepo{
				FindByUserIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
					return activeProfessional(id), nil
				},
			}
			stats := &mockStatsCache{}
			uc := NewReviewUsecase(db, quietLogger(), reviews, appointments, professionals, stats)

			resp, err := uc.Create(ctxAs(patientID, entity.RoleIDPatient), &dto.CreateReviewRequest{
				ProfessionalID: professionalID.String(),
				AppointmentID:  tt.appointmentID,
				Rating:         tt.rating,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, reviews.Created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rating, resp.Rating)
			assert.Equal(t, []uuid.UUID{professionalID}, stats.Invalidated)
		})
	}
}

func TestReviewListForProfessional(t *testing.T) {
	db, _ := newMockDB(t)
	professionalID := uuid.New()
	reviews := &mockReviewRepo{
		RatingSummariesFn: func(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error) {
			return map[uuid.UUID]entity.RatingSummary{
				professionalID: {ProfessionalID: professionalID, Average: 4.5, Count: 2},
			}, nil
		},
	}
	professionals := &mockProfessionalProfileRepo{
		FindByUserIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
			if id == professionalID {
				return activeProfessional(id), nil
			}
			return nil, nil
		},
	}
	uc := NewReviewUsecase(db, quietLogger(), reviews, &mockAppointmentRepo{}, professionals, &mockStatsCache{})

	resp, err := uc.ListForProfessional(context.Background(), professionalID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, resp.AverageRating)
	assert.Equal(t, int64(2), resp.ReviewCount)

	_, err = uc.ListForProfessional(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}
