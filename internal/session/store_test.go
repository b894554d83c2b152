package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.UserID)

	require.NoError(t, store.Delete(ctx, sess.ID))

	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "deleted session must resolve to anonymous, not error")
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, -time.Second)
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 42, time.Hour)
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(42), got.UserID)

	require.NoError(t, store.Delete(ctx, sess.ID))

	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 42, time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreUnknownID(t *testing.T) {
	store, _ := setupRedisStore(t)

	got, err := store.Get(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}
