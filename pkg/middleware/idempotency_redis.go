package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "idempotency:"

// RedisIdempotencyStore shares stored responses between replicas.
// Entries expire through Redis TTLs.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &cached, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) error {
	response.CreatedAt = time.Now()
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	// SetNX keeps the first response when two retries race.
	if err := s.rdb.SetNX(ctx, redisKeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Stop is a no-op; the Redis client is closed with the service's connections.
func (s *RedisIdempotencyStore) Stop() {}
