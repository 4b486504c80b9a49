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

type professionalProfileRepository struct{}

func NewProfessionalProfileRepository() domainRepo.ProfessionalProfileRepository {
	return &professionalProfileRepository{}
}

func (r *professionalProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *professionalProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.WithContext(ctx).
		Preload("User").Preload("Specialty").Preload("Hospital").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll joins users so the name and active filters apply to the account.
func (r *professionalProfileRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.ProfessionalFilter) ([]entity.ProfessionalProfile, int64, error) {
	var profiles []entity.ProfessionalProfile
	var total int64

	if err := db.WithContext(ctx).Model(&entity.ProfessionalProfile{}).Scopes(professionalFilter(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).
		Scopes(professionalFilter(filter)).
		Preload("User").Preload("Specialty").Preload("Hospital").
		Order("users.full_name ASC")
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func professionalFilter(filter *entity.ProfessionalFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN users ON users.id = professional_profiles.user_id")
		if filter == nil {
			return db
		}
		if filter.OnlyActive {
			db = db.Where("users.is_active = ?", true)
		}
		if filter.SpecialtyID != nil {
			db = db.Where("professional_profiles.specialty_id = ?", *filter.SpecialtyID)
		}
		if filter.HospitalID != nil {
			db = db.Where("professional_profiles.hospital_id = ?", *filter.HospitalID)
		}
		if filter.Name != "" {
			db = db.Where("users.full_name ILIKE ?", "%"+filter.Name+"%")
		}
		return db
	}
}

func (r *professionalProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}
