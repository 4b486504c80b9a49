package cache

import (
	"context"
	"fmt"

	"medconnect/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}

// Key layout shared by every Redis consumer.

func AccessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

func RefreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID, tokenID)
}

// UserTokenPatterns matches every access and refresh token of a user.
func UserTokenPatterns(userID uuid.UUID) []string {
	return []string{
		fmt.Sprintf("access_token:%s:*", userID),
		fmt.Sprintf("refresh_token:%s:*", userID),
	}
}

func BookingDraftKey(userID uuid.UUID) string {
	return fmt.Sprintf("booking:draft:%s", userID)
}

func DashboardStatsKey(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard:stats:%s", userID)
}
