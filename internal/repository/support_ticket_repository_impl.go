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

type supportTicketRepository struct{}

func NewSupportTicketRepository() domainRepo.SupportTicketRepository {
	return &supportTicketRepository{}
}

func (r *supportTicketRepository) Create(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

func (r *supportTicketRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.SupportTicket, error) {
	var ticket entity.SupportTicket
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *supportTicketRepository) FindAll(ctx context.Context, db *gorm.DB, userID *uuid.UUID, status entity.TicketStatus) ([]entity.SupportTicket, error) {
	var tickets []entity.SupportTicket
	query := db.WithContext(ctx).Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *supportTicketRepository) Update(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(ticket).Error
}

func (r *supportTicketRepository) CountByStatus(ctx context.Context, db *gorm.DB, statuses ...entity.TicketStatus) (int64, error) {
	var total int64
	query := db.WithContext(ctx).Model(&entity.SupportTicket{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&total).Error
	return total, err
}
