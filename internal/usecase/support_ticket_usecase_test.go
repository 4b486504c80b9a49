package usecase

import (
	"context"
	"errors"
	"testing"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var _ repository.SupportTicketRepository = (*mockTicketRepo)(nil)

type mockTicketRepo struct {
	tickets map[uuid.UUID]*entity.SupportTicket
	owner   *uuid.UUID
}

func newMockTicketRepo(tickets ...*entity.SupportTicket) *mockTicketRepo {
	m := &mockTicketRepo{tickets: map[uuid.UUID]*entity.SupportTicket{}}
	for _, t := range tickets {
		m.tickets[t.ID] = t
	}
	return m
}

func (m *mockTicketRepo) Create(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error {
	ticket.ID = uuid.New()
	m.tickets[ticket.ID] = ticket
	return nil
}

func (m *mockTicketRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.SupportTicket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTicketRepo) FindAll(ctx context.Context, db *gorm.DB, userID *uuid.UUID, status entity.TicketStatus) ([]entity.SupportTicket, error) {
	m.owner = userID
	return nil, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, db *gorm.DB, ticket *entity.SupportTicket) error {
	m.tickets[ticket.ID] = ticket
	return nil
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context, db *gorm.DB, statuses ...entity.TicketStatus) (int64, error) {
	return 0, nil
}

func TestSupportTicketCreate_Defaults(t *testing.T) {
	db, _ := newMockDB(t)
	repo := newMockTicketRepo()
	uc := NewSupportTicketUsecase(db, quietLogger(), repo, &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{})

	resp, err := uc.Create(ctxAs(uuid.New(), entity.RoleIDPatient), &dto.CreateSupportTicketRequest{
		Subject:     "Cannot reschedule",
		Description: "The button does nothing",
		Category:    "appointment",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TicketPriorityMedium), resp.Priority)
	assert.Equal(t, string(entity.TicketStatusOpen), resp.Status)
}

func TestSupportTicketUpdate_NotifiesOwner(t *testing.T) {
	db, mock := newMockDB(t)
	ownerID := uuid.New()
	ticket := &entity.SupportTicket{ID: uuid.New(), UserID: ownerID, Subject: "Billing", Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityLow}
	repo := newMockTicketRepo(ticket)
	notifications, audit, stats := &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{}
	uc := NewSupportTicketUsecase(db, quietLogger(), repo, notifications, audit, stats)

	mock.ExpectBegin()
	mock.ExpectCommit()

	status, response := "resolved", "Refund issued"
	resp, err := uc.Update(ctxAs(uuid.New(), entity.RoleIDAdmin), ticket.ID, &dto.UpdateSupportTicketRequest{Status: &status, Response: &response})
	require.NoError(t, err)
	assert.Equal(t, "resolved", resp.Status)
	assert.Equal(t, "Refund issued", resp.Response)

	require.Len(t, notifications.Created, 1)
	assert.Equal(t, ownerID, notifications.Created[0].UserID)
	assert.Equal(t, entity.NotificationTypeSupport, notifications.Created[0].Type)
	assert.Equal(t, []string{entity.AuditActionTicketUpdate}, audit.Actions)
	assert.Equal(t, []uuid.UUID{ownerID}, stats.Invalidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupportTicketUpdate_FailedCommitKeepsStats(t *testing.T) {
	db, mock := newMockDB(t)
	ticket := &entity.SupportTicket{ID: uuid.New(), UserID: uuid.New(), Subject: "Login", Status: entity.TicketStatusOpen}
	stats := &mockStatsCache{}
	uc := NewSupportTicketUsecase(db, quietLogger(), newMockTicketRepo(ticket), &mockNotificationRepo{}, &mockAuditService{}, stats)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	status := "in_progress"
	_, err := uc.Update(ctxAs(uuid.New(), entity.RoleIDAdmin), ticket.ID, &dto.UpdateSupportTicketRequest{Status: &status})
	require.Error(t, err)
	assert.Empty(t, stats.Invalidated)
}

func TestSupportTicketClose(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owner closes", func(t *testing.T) {
		db, mock := newMockDB(t)
		ticket := &entity.SupportTicket{ID: uuid.New(), UserID: ownerID, Status: entity.TicketStatusResolved}
		uc := NewSupportTicketUsecase(db, quietLogger(), newMockTicketRepo(ticket), &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{})

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := uc.Close(ctxAs(ownerID, entity.RoleIDPatient), ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
	})

	t.Run("already closed", func(t *testing.T) {
		db, mock := newMockDB(t)
		ticket := &entity.SupportTicket{ID: uuid.New(), UserID: ownerID, Status: entity.TicketStatusClosed}
		uc := NewSupportTicketUsecase(db, quietLogger(), newMockTicketRepo(ticket), &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.Close(ctxAs(ownerID, entity.RoleIDPatient), ticket.ID)
		assert.ErrorIs(t, err, ErrTicketClosed)
	})

	t.Run("not the owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		ticket := &entity.SupportTicket{ID: uuid.New(), UserID: ownerID, Status: entity.TicketStatusOpen}
		uc := NewSupportTicketUsecase(db, quietLogger(), newMockTicketRepo(ticket), &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := uc.Close(ctxAs(uuid.New(), entity.RoleIDAdmin), ticket.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestSupportTicketList_Scoping(t *testing.T) {
	db, _ := newMockDB(t)
	repo := newMockTicketRepo()
	uc := NewSupportTicketUsecase(db, quietLogger(), repo, &mockNotificationRepo{}, &mockAuditService{}, &mockStatsCache{})

	userID := uuid.New()
	_, err := uc.List(ctxAs(userID, entity.RoleIDPatient), "")
	require.NoError(t, err)
	require.NotNil(t, repo.owner)
	assert.Equal(t, userID, *repo.owner)

	_, err = uc.List(ctxAs(uuid.New(), entity.RoleIDAdmin), "open")
	require.NoError(t, err)
	assert.Nil(t, repo.owner)

	_, err = uc.List(ctxAs(userID, entity.RoleIDPatient), "archived")
	assert.ErrorIs(t, err, ErrInvalidTicketState)
}
