package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medconnect/internal/domain/entity"
	"medconnect/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BookingDraftStore keeps one in-progress booking wizard per user.
type BookingDraftStore interface {
	// Get returns nil when the user has no draft or it expired.
	Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error)
	Save(ctx context.Context, draft *entity.BookingDraft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type redisBookingDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookingDraftStore(client *redis.Client, ttl time.Duration) BookingDraftStore {
	return &redisBookingDraftStore{client: client, ttl: ttl}
}

func (s *redisBookingDraftStore) Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error) {
	raw, err := s.client.Get(ctx, cache.BookingDraftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var draft entity.BookingDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Save refreshes the TTL on every write, so an active wizard never expires mid-way.
func (s *redisBookingDraftStore) Save(ctx context.Context, draft *entity.BookingDraft) error {
	draft.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cache.BookingDraftKey(draft.PatientID), raw, s.ttl).Err()
}

func (s *redisBookingDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, cache.BookingDraftKey(userID)).Err()
}
