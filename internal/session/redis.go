package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a TTL per key, so expiry is
// enforced by the store itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, value, ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		// Corrupt entry; treat as absent and drop it.
		s.client.Del(ctx, redisKeyPrefix+id)
		return nil, nil
	}

	ttl, err := s.client.TTL(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		ttl = 0
	}

	return &Session{
		ID:        id,
		UserID:    uint(userID),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
