package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(ctx context.Context, db *gorm.DB, hospital *entity.Hospital) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Hospital, error)
	FindAll(ctx context.Context, db *gorm.DB, city string) ([]entity.Hospital, error)
	Update(ctx context.Context, db *gorm.DB, hospital *entity.Hospital) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error)
	Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
