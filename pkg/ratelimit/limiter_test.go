package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-search-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type memoryCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCounter) Incr(_ context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryCounter) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.expires[key] = ttl
	return nil
}

func TestLimiterAllow(t *testing.T) {
	counter := newMemoryCounter()
	l := New(counter, 2, logger.NewNopLogger())
	l.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	assert.NoError(t, l.Allow(ctx, "h1"))
	assert.NoError(t, l.Allow(ctx, "h1"))
	assert.ErrorIs(t, l.Allow(ctx, "h1"), ErrLimitExceeded)

	// other handles have their own quota
	assert.NoError(t, l.Allow(ctx, "h2"))

	assert.Equal(t, 25*time.Hour, counter.expires["chat_quota:h1:20240309"])
}

func TestLimiterResetsEachDay(t *testing.T) {
	counter := newMemoryCounter()
	l := New(counter, 1, logger.NewNopLogger())
	ctx := context.Background()

	l.now = func() time.Time { return time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC) }
	assert.NoError(t, l.Allow(ctx, "h1"))
	assert.ErrorIs(t, l.Allow(ctx, "h1"), ErrLimitExceeded)

	l.now = func() time.Time { return time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC) }
	assert.NoError(t, l.Allow(ctx, "h1"))
}

func TestLimiterDisabled(t *testing.T) {
	tests := []struct {
		name    string
		counter Counter
		limit   int
	}{
		{"zero limit", newMemoryCounter(), 0},
		{"negative limit", newMemoryCounter(), -1},
		{"no counter", nil, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.counter, tt.limit, logger.NewNopLogger())
			assert.False(t, l.Enabled())
			for i := 0; i < 10; i++ {
				assert.NoError(t, l.Allow(context.Background(), "h1"))
			}
		})
	}
}

func TestLimiterFailsOpen(t *testing.T) {
	counter := newMemoryCounter()
	counter.err = errors.New("connection refused")
	l := New(counter, 1, logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		assert.NoError(t, l.Allow(context.Background(), "h1"))
	}
}

func TestNewRedisCounterNil(t *testing.T) {
	assert.Nil(t, NewRedisCounter(nil))
}
