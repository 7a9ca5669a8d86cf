package ratelimit

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"
)

// CounterStore increments a named counter and returns its new value. The TTL
// applies when the increment creates the counter.
type CounterStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Limiter bounds notification deliveries per (user, channel) with an hourly
// and a daily counter. Counting happens before delivery, so a failed send
// still consumes a slot; that keeps a flapping channel from hammering a user.
type Limiter struct {
	store     CounterStore
	hourlyMax int
	dailyMax  int
	logger    logger.Logger
}

// NewLimiter creates a rate limiter over the given counter store
func NewLimiter(store CounterStore, settings config.RateLimitSettings, logger logger.Logger) (*Limiter, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit settings: %w", err)
	}

	return &Limiter{
		store:     store,
		hourlyMax: settings.HourlyMax,
		dailyMax:  settings.DailyMax,
		logger:    logger,
	}, nil
}

var _ notifications.RateLimiter = (*Limiter)(nil)

// Allow consumes one delivery slot for (user, channel). Both windows are
// checked against already-incremented counters, so two concurrent dispatches
// cannot slip past the budget together.
func (l *Limiter) Allow(ctx context.Context, userID, channel string) (bool, error) {
	now := time.Now().UTC()

	hourlyKey := fmt.Sprintf("rl:%s:%s:h:%s", userID, channel, now.Format("2006010215"))
	hourly, err := l.store.Incr(ctx, hourlyKey, time.Hour)
	if err != nil {
		return false, fmt.Errorf("failed to increment hourly counter: %w", err)
	}

	dailyKey := fmt.Sprintf("rl:%s:%s:d:%s", userID, channel, now.Format("20060102"))
	daily, err := l.store.Incr(ctx, dailyKey, 24*time.Hour)
	if err != nil {
		return false, fmt.Errorf("failed to increment daily counter: %w", err)
	}

	if hourly > int64(l.hourlyMax) || daily > int64(l.dailyMax) {
		l.logger.Warn("Rate limit reached for user ", userID, " on channel ", channel)
		return false, nil
	}

	return true, nil
}
