package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error)
}
