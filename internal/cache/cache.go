// Package cache implements a Redis cache for JSON values.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	GetJSON(ctx context.Context, key string, value any) error
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type RedisCache struct {
	conn   *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. Keys are stored as prefix+key
// and expire after ttl (0 keeps them forever).
func NewRedisCache(conn *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{conn: conn, prefix: prefix, ttl: ttl}
}

// GetJSON unmarshals the cached JSON for key into value.
func (rc *RedisCache) GetJSON(ctx context.Context, key string, value any) error {
	s, err := rc.conn.Get(ctx, rc.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("getting cache key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(s), value); err != nil {
		return fmt.Errorf("unmarshaling cached JSON for %q: %w", key, err)
	}
	return nil
}

// SetJSON stores value as a JSON string.
func (rc *RedisCache) SetJSON(ctx context.Context, key string, value any) error {
	t, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling JSON for cache key %q: %w", key, err)
	}
	if err := rc.conn.Set(ctx, rc.prefix+key, string(t), rc.ttl).Err(); err != nil {
		return fmt.Errorf("setting cache key %q: %w", key, err)
	}
	return nil
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.conn.Del(ctx, rc.prefix+key).Err()
}
