package repository

import (
	"context"
	"time"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	// UpdateStatus changes the status only if it still equals from.
	// Returns affected rows: 0 means another request changed it first.
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, cancelReason string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.StatusCount, error)
	CountDistinctPatients(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (int64, error)
	CountBetween(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, from, to time.Time) (int64, error)
}
