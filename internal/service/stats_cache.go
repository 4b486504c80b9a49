package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medconnect/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatsCache holds one rendered dashboard per user for a short TTL.
type StatsCache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, userID uuid.UUID, dest interface{}) (bool, error)
	Set(ctx context.Context, userID uuid.UUID, value interface{}) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &redisStatsCache{client: client, ttl: ttl}
}

func (c *redisStatsCache) Get(ctx context.Context, userID uuid.UUID, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, cache.DashboardStatsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisStatsCache) Set(ctx context.Context, userID uuid.UUID, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cache.DashboardStatsKey(userID), raw, c.ttl).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, cache.DashboardStatsKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}
