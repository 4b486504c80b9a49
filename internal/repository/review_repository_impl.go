package repository

import (
	"context"
	"errors"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(ctx context.Context, db *gorm.DB, review *entity.Review) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByProfessionalID(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.WithContext(ctx).Preload("Patient").
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Review{})
	return result.RowsAffected, result.Error
}

func (r *reviewRepository) RatingSummaries(ctx context.Context, db *gorm.DB, professionalIDs []uuid.UUID) (map[uuid.UUID]entity.RatingSummary, error) {
	summaries := make(map[uuid.UUID]entity.RatingSummary, len(professionalIDs))
	if len(professionalIDs) == 0 {
		return summaries, nil
	}

	var rows []entity.RatingSummary
	err := db.WithContext(ctx).Model(&entity.Review{}).
		Select("professional_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("professional_id IN ?", professionalIDs).
		Group("professional_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries[row.ProfessionalID] = row
	}
	return summaries, nil
}
