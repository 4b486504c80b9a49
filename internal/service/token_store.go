package service

import (
	"context"
	"time"

	"medconnect/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	tokenValue = "valid"

	// Number of keys requested per SCAN round when revoking every token of a user
	revokeScanCount = 100
)

// rotateRefreshScript consumes the old refresh token and stores the new pair
// in one round trip. Returns 0 when the old token was already used or revoked,
// so two concurrent refreshes with the same token cannot both succeed.
//
// KEYS: old refresh, new access, new refresh
// ARGV: access ttl ms, refresh ttl ms
var rotateRefreshScript = redis.NewScript(`
	if redis.call('DEL', KEYS[1]) == 0 then
		return 0
	end
	redis.call('SET', KEYS[2], 'valid', 'PX', ARGV[1])
	redis.call('SET', KEYS[3], 'valid', 'PX', ARGV[2])
	return 1
`)

// TokenStore is the allow-list of issued tokens. A token whose id is not
// present is treated as revoked.
type TokenStore interface {
	Save(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error
	IsAccessValid(ctx context.Context, userID uuid.UUID, accessID string) (bool, error)
	// Rotate swaps the refresh token oldRefreshID for a new pair. It reports
	// false when oldRefreshID is no longer valid.
	Rotate(ctx context.Context, userID uuid.UUID, oldRefreshID, accessID, refreshID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	client        *redis.Client
	log           *logrus.Logger
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenStore(client *redis.Client, log *logrus.Logger, accessExpiry, refreshExpiry time.Duration) TokenStore {
	return &redisTokenStore{
		client:        client,
		log:           log,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *redisTokenStore) Save(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, cache.AccessTokenKey(userID, accessID), tokenValue, s.accessExpiry)
	pipe.Set(ctx, cache.RefreshTokenKey(userID, refreshID), tokenValue, s.refreshExpiry)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *redisTokenStore) IsAccessValid(ctx context.Context, userID uuid.UUID, accessID string) (bool, error) {
	exists, err := s.client.Exists(ctx, cache.AccessTokenKey(userID, accessID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Rotate(ctx context.Context, userID uuid.UUID, oldRefreshID, accessID, refreshID string) (bool, error) {
	keys := []string{
		cache.RefreshTokenKey(userID, oldRefreshID),
		cache.AccessTokenKey(userID, accessID),
		cache.RefreshTokenKey(userID, refreshID),
	}
	result, err := rotateRefreshScript.Run(ctx, s.client, keys,
		s.accessExpiry.Milliseconds(), s.refreshExpiry.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed to rotate refresh token: %+v", err)
		return false, err
	}
	return result == 1, nil
}

// Revoke deletes the given tokens. An empty refreshID only revokes the access token.
func (s *redisTokenStore) Revoke(ctx context.Context, userID uuid.UUID, accessID, refreshID string) error {
	keys := []string{cache.AccessTokenKey(userID, accessID)}
	if refreshID != "" {
		keys = append(keys, cache.RefreshTokenKey(userID, refreshID))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to revoke tokens: %+v", err)
		return err
	}
	return nil
}

// RevokeAll walks the user's keys with SCAN so large keyspaces are not blocked.
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, pattern := range cache.UserTokenPatterns(userID) {
		var batch []string
		iter := s.client.Scan(ctx, 0, pattern, revokeScanCount).Iterator()
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) >= revokeScanCount {
				if err := s.client.Del(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan token keys: %+v", err)
			return err
		}
		if len(batch) > 0 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				s.log.Warnf("Failed to delete token keys: %+v", err)
				return err
			}
		}
	}
	return nil
}
