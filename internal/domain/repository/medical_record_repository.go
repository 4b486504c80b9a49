package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.MedicalRecordFilter) ([]entity.MedicalRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	CountByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error)
}
