package service

import (
	"context"
	"testing"
	"time"

	"medconnect/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SaveAndValidate(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewTokenStore(client, quietLogger(), 15*time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "acc-1", "ref-1"))

	ok, err := store.IsAccessValid(ctx, userID, "acc-1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 15*time.Minute, mr.TTL(cache.AccessTokenKey(userID, "acc-1")))
	assert.Equal(t, time.Hour, mr.TTL(cache.RefreshTokenKey(userID, "ref-1")))

	mr.FastForward(16 * time.Minute)
	ok, err = store.IsAccessValid(ctx, userID, "acc-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_RotateIsSingleUse(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewTokenStore(client, quietLogger(), time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "acc-1", "ref-1"))

	rotated, err := store.Rotate(ctx, userID, "ref-1", "acc-2", "ref-2")
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.False(t, mr.Exists(cache.RefreshTokenKey(userID, "ref-1")))
	assert.True(t, mr.Exists(cache.AccessTokenKey(userID, "acc-2")))
	assert.True(t, mr.Exists(cache.RefreshTokenKey(userID, "ref-2")))

	rotated, err = store.Rotate(ctx, userID, "ref-1", "acc-3", "ref-3")
	require.NoError(t, err)
	assert.False(t, rotated)
	assert.False(t, mr.Exists(cache.AccessTokenKey(userID, "acc-3")))
}

func TestTokenStore_Revoke(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewTokenStore(client, quietLogger(), time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "acc-1", "ref-1"))
	require.NoError(t, store.Revoke(ctx, userID, "acc-1", ""))

	assert.False(t, mr.Exists(cache.AccessTokenKey(userID, "acc-1")))
	assert.True(t, mr.Exists(cache.RefreshTokenKey(userID, "ref-1")))
}

func TestTokenStore_RevokeAllOnlyTouchesUser(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewTokenStore(client, quietLogger(), time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, "acc-1", "ref-1"))
	require.NoError(t, store.Save(ctx, userID, "acc-2", "ref-2"))
	require.NoError(t, store.Save(ctx, otherID, "acc-x", "ref-x"))

	require.NoError(t, store.RevokeAll(ctx, userID))

	assert.False(t, mr.Exists(cache.AccessTokenKey(userID, "acc-1")))
	assert.False(t, mr.Exists(cache.RefreshTokenKey(userID, "ref-2")))
	assert.True(t, mr.Exists(cache.AccessTokenKey(otherID, "acc-x")))
	assert.True(t, mr.Exists(cache.RefreshTokenKey(otherID, "ref-x")))
}
