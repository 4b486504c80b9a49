package repository

import (
	"context"
	"errors"
	"time"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification Repository

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error {
	return db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	err := db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	var notifications []entity.Notification
	query := db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	return total, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}

// Reminder Repository

type reminderRepository struct{}

func NewReminderRepository() domainRepo.ReminderRepository {
	return &reminderRepository{}
}

func (r *reminderRepository) Create(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error {
	return db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Reminder, error) {
	var reminder entity.Reminder
	err := db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("remind_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) FindDue(ctx context.Context, db *gorm.DB, now time.Time, limit int) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	query := db.WithContext(ctx).
		Where("is_sent = ? AND remind_at <= ?", false, now).
		Order("remind_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) FindUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := db.WithContext(ctx).
		Where("appointment_id = ? AND is_sent = ?", appointmentID, false).
		Order("remind_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, db *gorm.DB, reminder *entity.Reminder) error {
	return db.WithContext(ctx).Save(reminder).Error
}

func (r *reminderRepository) MarkSent(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Reminder{}).
		Where("id = ? AND is_sent = ?", id, false).
		Update("is_sent", true)
	return result.RowsAffected, result.Error
}

func (r *reminderRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Reminder{})
	return result.RowsAffected, result.Error
}

func (r *reminderRepository) DeleteUnsentByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("appointment_id = ? AND is_sent = ?", appointmentID, false).
		Delete(&entity.Reminder{})
	return result.RowsAffected, result.Error
}
