package repository

import (
	"context"

	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportTicketRepository interface {
	Create(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.SupportTicket, error)
	// FindAll lists tickets; a nil userID means every user.
	FindAll(ctx context.Context, db *gorm.DB, userID *uuid.UUID, status entity.TicketStatus) ([]entity.SupportTicket, error)
	Update(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error
	CountByStatus(ctx context.Context, db *gorm.DB, statuses ...entity.TicketStatus) (int64, error)
}
