package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	List(ctx context.Context, unreadOnly bool) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateSystem(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	statsCache       service.StatsCache
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	statsCache service.StatsCache,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		statsCache:       statsCache,
	}
}

func (u *notificationUsecase) List(ctx context.Context, unreadOnly bool) ([]dto.NotificationResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := u.notificationRepo.FindByUserID(ctx, u.db, a.ID, unreadOnly)
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}
	return converter.NotificationsToResponses(notifications), nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context) (*dto.UnreadCountResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	count, err := u.notificationRepo.CountUnread(ctx, u.db, a.ID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := u.findOwned(ctx, a, id); err != nil {
		return err
	}

	if err := u.notificationRepo.MarkRead(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to mark notification %s read: %+v", id, err)
		return err
	}
	u.invalidateStats(ctx, a.ID)
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) (int64, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return 0, err
	}

	updated, err := u.notificationRepo.MarkAllRead(ctx, u.db, a.ID)
	if err != nil {
		u.log.Warnf("Failed to mark notifications read: %+v", err)
		return 0, err
	}
	u.invalidateStats(ctx, a.ID)
	return updated, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := u.findOwned(ctx, a, id); err != nil {
		return err
	}

	if _, err := u.notificationRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete notification %s: %+v", id, err)
		return err
	}
	u.invalidateStats(ctx, a.ID)
	return nil
}

// CreateSystem lets an admin post a system notification to one user.
func (u *notificationUsecase) CreateSystem(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	notification := newNotification(userID, entity.NotificationTypeSystem, req.Title, req.Message, req.Link)
	if err := u.notificationRepo.Create(ctx, u.db, notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}
	u.invalidateStats(ctx, userID)
	return converter.NotificationToResponse(notification), nil
}

// findOwned hides other users' notifications behind not found.
func (u *notificationUsecase) findOwned(ctx context.Context, a actor, id uuid.UUID) (*entity.Notification, error) {
	notification, err := u.notificationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find notification %s: %+v", id, err)
		return nil, err
	}
	if notification == nil || notification.UserID != a.ID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

func (u *notificationUsecase) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if err := u.statsCache.Invalidate(ctx, userID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
}
