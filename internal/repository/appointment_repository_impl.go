package repository

import (
	"context"
	"errors"
	"time"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := withAppointmentRelations(db.WithContext(ctx)).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	if err := db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(appointmentFilter(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := withAppointmentRelations(db.WithContext(ctx)).
		Scopes(appointmentFilter(filter)).
		Order("scheduled_at ASC")
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func withAppointmentRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Professional").Preload("Hospital").Preload("Specialty")
}

func appointmentFilter(filter *entity.AppointmentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == nil {
			return db
		}
		if filter.PatientID != nil {
			db = db.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.ProfessionalID != nil {
			db = db.Where("professional_id = ?", *filter.ProfessionalID)
		}
		if len(filter.Statuses) > 0 {
			db = db.Where("status IN ?", filter.Statuses)
		}
		if filter.From != nil {
			db = db.Where("scheduled_at >= ?", *filter.From)
		}
		if filter.To != nil {
			db = db.Where("scheduled_at <= ?", *filter.To)
		}
		return db
	}
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error
}

// UpdateStatus is a compare-and-set on status so two concurrent transitions
// cannot both succeed.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, cancelReason string) (int64, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if to == entity.AppointmentStatusCancelled {
		updates["cancel_reason"] = cancelReason
	}

	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.StatusCount, error) {
	var counts []entity.StatusCount
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Scopes(appointmentFilter(filter)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *appointmentRepository) CountDistinctPatients(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("professional_id = ? AND status <> ?", professionalID, entity.AppointmentStatusCancelled).
		Distinct("patient_id").
		Count(&total).Error
	return total, err
}

// CountBetween counts appointments matching filter with scheduled_at in [from, to).
func (r *appointmentRepository) CountBetween(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter, from, to time.Time) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Scopes(appointmentFilter(filter)).
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
		Count(&total).Error
	return total, err
}
