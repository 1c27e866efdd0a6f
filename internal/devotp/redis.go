package devotp

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/samber/oops"
)

const redisKeyPrefix = "devotp:"

// RedisStore is a Store shared by all server replicas. Entries expire through Redis TTLs.
type RedisStore struct {
	client redis.Cmdable
	nowF   func() time.Time
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, nowF: func() time.Time { return time.Now().UTC() }}
}

// Put stores otp for email; it is a no-op when expiresAt has already passed.
func (s *RedisStore) Put(ctx context.Context, email, otp string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.nowF())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, redisKey(email), otp, ttl).Err(); err != nil {
		return oops.Code("DEVOTP_PUT_FAILED").With("operation", "redis set").Wrap(err)
	}
	return nil
}

// Get returns the otp for email if Redis still holds it.
func (s *RedisStore) Get(ctx context.Context, email string) (string, bool, error) {
	otp, err := s.client.Get(ctx, redisKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.Code("DEVOTP_GET_FAILED").With("operation", "redis get").Wrap(err)
	}
	return otp, true, nil
}

func redisKey(email string) string {
	return redisKeyPrefix + email
}
