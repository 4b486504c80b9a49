package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, db *gorm.DB, review *entity.Review) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error)
	FindByProfessionalID(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) ([]entity.Review, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Review, error)
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	// RatingSummaries returns one summary per requested professional that has reviews.
	RatingSummaries(ctx context.Context, db *gorm.DB, professionalIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error)
}
