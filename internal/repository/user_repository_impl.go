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

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *userRepository) FindByProviderUID(ctx context.Context, db *gorm.DB, providerUID string) (*entity.User, error) {
	return r.findOne(ctx, db, "provider_uid = ?", providerUID)
}

func (r *userRepository) findOne(ctx context.Context, db *gorm.DB, query string, arg interface{}) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Preload("Role").Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64

	if err := db.WithContext(ctx).Model(&entity.User{}).Scopes(userFilter(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Scopes(userFilter(filter)).Preload("Role").Order("created_at DESC")
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func userFilter(filter *entity.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == nil {
			return db
		}
		if filter.RoleID != 0 {
			db = db.Where("role_id = ?", filter.RoleID)
		}
		if filter.Name != "" {
			db = db.Where("full_name ILIKE ?", "%"+filter.Name+"%")
		}
		return db
	}
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) CountByRole(ctx context.Context, db *gorm.DB) (map[int]int64, error) {
	var rows []struct {
		RoleID int
		Count  int64
	}
	err := db.WithContext(ctx).Model(&entity.User{}).
		Select("role_id, COUNT(*) AS count").
		Group("role_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.RoleID] = row.Count
	}
	return counts, nil
}
