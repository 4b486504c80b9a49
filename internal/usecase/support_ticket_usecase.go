package usecase

import (
	"context"
	"errors"
	"fmt"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound     = errors.New("support ticket not found")
	ErrTicketClosed       = errors.New("support ticket is already closed")
	ErrInvalidTicketState = errors.New("invalid support ticket status")
)

type SupportTicketUsecase interface {
	Create(ctx context.Context, req *dto.CreateSupportTicketRequest) (*dto.SupportTicketResponse, error)
	List(ctx context.Context, status string) ([]dto.SupportTicketResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSupportTicketRequest) (*dto.SupportTicketResponse, error)
	Close(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error)
}

type supportTicketUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	ticketRepo       repository.SupportTicketRepository
	notificationRepo repository.NotificationRepository
	auditService     service.AuditService
	statsCache       service.StatsCache
}

func NewSupportTicketUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	ticketRepo repository.SupportTicketRepository,
	notificationRepo repository.NotificationRepository,
	auditService service.AuditService,
	statsCache service.StatsCache,
) SupportTicketUsecase {
	return &supportTicketUsecase{
		db:               db,
		log:              log,
		ticketRepo:       ticketRepo,
		notificationRepo: notificationRepo,
		auditService:     auditService,
		statsCache:       statsCache,
	}
}

func (u *supportTicketUsecase) Create(ctx context.Context, req *dto.CreateSupportTicketRequest) (*dto.SupportTicketResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	priority := entity.TicketPriority(req.Priority)
	if priority == "" {
		priority = entity.TicketPriorityMedium
	}

	ticket := &entity.SupportTicket{
		UserID:      a.ID,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      entity.TicketStatusOpen,
	}
	if err := u.ticketRepo.Create(ctx, u.db, ticket); err != nil {
		u.log.Warnf("Failed to create support ticket: %+v", err)
		return nil, err
	}

	u.log.Infof("Support ticket opened: id=%s, user=%s, category=%s", ticket.ID, a.ID, ticket.Category)
	return u.reload(ctx, ticket), nil
}

// List returns the caller's tickets, or every ticket for admins.
func (u *supportTicketUsecase) List(ctx context.Context, status string) ([]dto.SupportTicketResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" && !validTicketStatus(entity.TicketStatus(status)) {
		return nil, ErrInvalidTicketState
	}

	var owner *uuid.UUID
	if !a.IsAdmin() {
		owner = &a.ID
	}

	tickets, err := u.ticketRepo.FindAll(ctx, u.db, owner, entity.TicketStatus(status))
	if err != nil {
		u.log.Warnf("Failed to list support tickets: %+v", err)
		return nil, err
	}
	return converter.SupportTicketsToResponses(tickets), nil
}

func (u *supportTicketUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := u.find(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin() && ticket.UserID != a.ID {
		return nil, ErrForbidden
	}
	return converter.SupportTicketToResponse(ticket), nil
}

// Update is the admin triage step. The ticket owner gets a notification.
func (u *supportTicketUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSupportTicketRequest) (*dto.SupportTicketResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	ticket, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	old := ticketAuditValue(ticket)

	if req.Status != nil {
		status := entity.TicketStatus(*req.Status)
		if !validTicketStatus(status) {
			return nil, ErrInvalidTicketState
		}
		ticket.Status = status
	}
	if req.Priority != nil {
		ticket.Priority = entity.TicketPriority(*req.Priority)
	}
	if req.Response != nil {
		ticket.Response = *req.Response
	}

	if err := u.ticketRepo.Update(ctx, tx, ticket); err != nil {
		u.log.Warnf("Failed to update support ticket %s: %+v", id, err)
		return nil, err
	}

	notification := newNotification(ticket.UserID, entity.NotificationTypeSupport,
		"Support ticket updated",
		fmt.Sprintf("Your ticket %q is now %s.", ticket.Subject, ticket.Status),
		fmt.Sprintf("/support/tickets/%s", ticket.ID))
	if err := u.notificationRepo.Create(ctx, tx, notification); err != nil {
		u.log.Warnf("Failed to create ticket notification: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionTicketUpdate, "support_ticket", id.String(), old, ticketAuditValue(ticket)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// the owner's unread count just changed
	if err := u.statsCache.Invalidate(ctx, ticket.UserID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
	return converter.SupportTicketToResponse(ticket), nil
}

// Close lets the owner close their own ticket.
func (u *supportTicketUsecase) Close(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	ticket, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != a.ID {
		return nil, ErrForbidden
	}
	if ticket.IsClosed() {
		return nil, ErrTicketClosed
	}
	old := ticketAuditValue(ticket)

	ticket.Status = entity.TicketStatusClosed
	if err := u.ticketRepo.Update(ctx, tx, ticket); err != nil {
		u.log.Warnf("Failed to close support ticket %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &a.ID, entity.AuditActionTicketUpdate, "support_ticket", id.String(), old, ticketAuditValue(ticket)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.SupportTicketToResponse(ticket), nil
}

func (u *supportTicketUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.SupportTicket, error) {
	ticket, err := u.ticketRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find support ticket %s: %+v", id, err)
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (u *supportTicketUsecase) reload(ctx context.Context, ticket *entity.SupportTicket) *dto.SupportTicketResponse {
	full, err := u.ticketRepo.FindByID(ctx, u.db, ticket.ID)
	if err != nil || full == nil {
		return converter.SupportTicketToResponse(ticket)
	}
	return converter.SupportTicketToResponse(full)
}

func validTicketStatus(s entity.TicketStatus) bool {
	switch s {
	case entity.TicketStatusOpen, entity.TicketStatusInProgress, entity.TicketStatusResolved, entity.TicketStatusClosed:
		return true
	}
	return false
}

func ticketAuditValue(t *entity.SupportTicket) map[string]interface{} {
	return map[string]interface{}{
		"status":   t.Status,
		"priority": t.Priority,
		"response": t.Response,
	}
}
