package ratelimit

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// redisStore backs the limiter with Redis so the budget holds across
// replicas. INCR and EXPIRE run in one pipeline; the expiry is only set when
// the increment created the key, keeping the window anchored to its first hit.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed counter store
func NewRedisStore(settings config.RedisSettings) (CounterStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis settings: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     settings.Addr,
		Password: settings.Password,
		DB:       settings.DB,
	})

	return &redisStore{client: client}, nil
}

func (s *redisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis pipeline failed: %w", err)
	}

	return incr.Val(), nil
}
