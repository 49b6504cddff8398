package retry

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy handles retry logic with exponential backoff
type RetryPolicy struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

// NewRetryPolicy creates a new retry policy
func NewRetryPolicy(maxAttempts int, initialDelay time.Duration) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		maxDelay:     30 * time.Second, // Cap at 30 seconds
		multiplier:   1.5,
	}
}

// WithMaxDelay caps the delay between attempts
func (r *RetryPolicy) WithMaxDelay(d time.Duration) *RetryPolicy {
	r.maxDelay = d
	return r
}

// Execute runs fn until it succeeds, attempts run out, or ctx is done.
// The attempt number (starting at 1) is passed to fn.
func (r *RetryPolicy) Execute(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error
	delay := r.initialDelay
	if delay > r.maxDelay {
		delay = r.maxDelay
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't sleep after last attempt
		if attempt < r.maxAttempts {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted after %d attempts: %w", attempt, ctx.Err())
			case <-timer.C:
			}

			delay = time.Duration(float64(delay) * r.multiplier)
			if delay > r.maxDelay {
				delay = r.maxDelay
			}
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", r.maxAttempts, lastErr)
}
