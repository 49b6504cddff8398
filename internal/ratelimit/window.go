package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// WindowLimiter implements a fixed-window request counter per client using Redis
type WindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int           // Requests allowed per window
	window time.Duration // Window length
	now    func() time.Time
}

// NewWindowLimiter creates a limiter allowing limit requests per window for each client
func NewWindowLimiter(client *redis.Client, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		prefix: "playerlens:ratelimit",
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for clientKey and reports whether it fits the budget
func (l *WindowLimiter) Allow(ctx context.Context, clientKey string) (Decision, error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	key := fmt.Sprintf("%s:%s:%d", l.prefix, clientKey, slot)
	resetIn := time.Duration((slot+1)*int64(l.window) - now.UnixNano())

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("failed to increment counter: %w", err)
	}

	// First hit in this window owns the expiry
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return Decision{Allowed: true}, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   int(count) <= l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

// Limit returns the configured budget per window
func (l *WindowLimiter) Limit() int {
	return l.limit
}
