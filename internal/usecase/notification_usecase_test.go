package usecase

import (
	"context"
	"testing"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationOwnership(t *testing.T) {
	db, _ := newMockDB(t)
	ownerID := uuid.New()
	notification := &entity.Notification{ID: uuid.New(), UserID: ownerID, Title: "Appointment confirmed"}

	deleted := 0
	notifications := &mockNotificationRepo{
		FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Notification, error) {
			if id == notification.ID {
				return notification, nil
			}
			return nil, nil
		},
		DeleteFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
			deleted++
			return 1, nil
		},
	}
	stats := &mockStatsCache{}
	uc := NewNotificationUsecase(db, quietLogger(), notifications, &mockUserRepo{}, stats)

	stranger := ctxAs(uuid.New(), entity.RoleIDPatient)
	assert.ErrorIs(t, uc.MarkRead(stranger, notification.ID), ErrNotificationNotFound)
	assert.ErrorIs(t, uc.Delete(stranger, notification.ID), ErrNotificationNotFound)
	assert.Zero(t, deleted)

	owner := ctxAs(ownerID, entity.RoleIDPatient)
	require.NoError(t, uc.MarkRead(owner, notification.ID))
	require.NoError(t, uc.Delete(owner, notification.ID))
	assert.Equal(t, 1, deleted)
	assert.Equal(t, []uuid.UUID{ownerID, ownerID}, stats.Invalidated)

	assert.ErrorIs(t, uc.Delete(owner, uuid.New()), ErrNotificationNotFound)
}

func TestNotificationUnreadCount(t *testing.T) {
	db, _ := newMockDB(t)
	userID := uuid.New()
	notifications := &mockNotificationRepo{
		CountUnreadFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
			assert.Equal(t, userID, id)
			return 3, nil
		},
	}
	uc := NewNotificationUsecase(db, quietLogger(), notifications, &mockUserRepo{}, &mockStatsCache{})

	resp, err := uc.UnreadCount(ctxAs(userID, entity.RoleIDProfessional))
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)
}

func TestNotificationCreateSystem(t *testing.T) {
	db, _ := newMockDB(t)
	target := uuid.New()
	users := &mockUserRepo{
		FindByIDFn: func(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
			if id == target {
				return &entity.User{ID: id}, nil
			}
			return nil, nil
		},
	}
	notifications := &mockNotificationRepo{}
	uc := NewNotificationUsecase(db, quietLogger(), notifications, users, &mockStatsCache{})
	admin := ctxAs(uuid.New(), entity.RoleIDAdmin)

	_, err := uc.CreateSystem(admin, &dto.CreateNotificationRequest{UserID: uuid.New().String(), Title: "Maintenance", Message: "Tonight"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.CreateSystem(admin, &dto.CreateNotificationRequest{UserID: target.String(), Title: "Maintenance", Message: "Tonight"})
	require.NoError(t, err)
	require.Len(t, notifications.Created, 1)
	assert.Equal(t, entity.NotificationTypeSystem, notifications.Created[0].Type)
	assert.Equal(t, target, notifications.Created[0].UserID)
}
