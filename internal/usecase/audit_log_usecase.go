package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

// AuditLogUsecase is the read side of the audit trail. Rows are written by
// service.AuditService inside the mutating transaction.
type AuditLogUsecase interface {
	List(ctx context.Context, query *dto.AuditLogListQuery) ([]dto.AuditLogResponse, int64, error)
	Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, query *dto.AuditLogListQuery) ([]dto.AuditLogResponse, int64, error) {
	page, limit := NormalizePage(query.Page, query.Limit)

	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return nil, 0, ErrInvalidDateRange
	}

	filter := &entity.AuditLogFilter{
		Action: query.Action,
		Entity: query.Entity,
		From:   query.From,
		To:     query.To,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if query.UserID != nil {
		userID, err := uuid.Parse(*query.UserID)
		if err != nil {
			return nil, 0, ErrInvalidID
		}
		filter.UserID = &userID
	}

	logs, total, err := u.auditLogRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, 0, err
	}
	return converter.AuditLogsToResponses(logs), total, nil
}

func (u *auditLogUsecase) Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
