// Package ratelimit enforces a per-handle daily chat quota backed by redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-search-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var ErrLimitExceeded = errors.New("daily chat limit exceeded")

const keyPrefix = "chat_quota"

// Counter is the subset of redis the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounter struct {
	rdb *redis.Client
}

func (c redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

func (c redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// NewRedisCounter adapts a redis client. A nil client yields a nil Counter.
func NewRedisCounter(rdb *redis.Client) Counter {
	if rdb == nil {
		return nil
	}
	return redisCounter{rdb: rdb}
}

type Limiter struct {
	counter Counter
	limit   int
	logger  logger.ILogger
	now     func() time.Time
}

// New returns a limiter allowing limit chats per handle per UTC day.
// A limit of zero or less, or a nil counter, disables limiting.
func New(counter Counter, limit int, log logger.ILogger) *Limiter {
	return &Limiter{
		counter: counter,
		limit:   limit,
		logger:  log,
		now:     time.Now,
	}
}

func (l *Limiter) Enabled() bool {
	return l != nil && l.counter != nil && l.limit > 0
}

// Allow consumes one unit of the handle's quota. Redis failures fail open.
func (l *Limiter) Allow(ctx context.Context, handle string) error {
	if !l.Enabled() {
		return nil
	}

	day := l.now().UTC()
	key := fmt.Sprintf("%s:%s:%s", keyPrefix, handle, day.Format("20060102"))

	count, err := l.counter.Incr(ctx, key)
	if err != nil {
		l.logger.Warn("RATELIMIT", "Quota check skipped", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if count == 1 {
		if err := l.counter.Expire(ctx, key, 25*time.Hour); err != nil {
			l.logger.Warn("RATELIMIT", "Failed to set quota expiry", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	if count > int64(l.limit) {
		return ErrLimitExceeded
	}
	return nil
}
