package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.ProfessionalFilter) ([]entity.ProfessionalProfile, int64, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error
}

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.PatientProfile, int64, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
}
