package repository

import (
	"context"
	"time"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Reminder, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Reminder, error)
	FindDue(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]entity.Reminder, error)
	// FindUnsentByAppointmentID returns the reminders of an appointment that have not fired yet.
	FindUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error)
	Update(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error
	// MarkSent flags the reminder as sent only if it was not sent already.
	MarkSent(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (int64, error)
}
