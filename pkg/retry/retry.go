package retry

import (
	"context"
	"time"
)

// Config controls retry behavior for one class of calls.
type Config struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; each further wait
	// doubles it.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Retryable decides whether an error is transient. A nil classifier
	// retries nothing.
	Retryable func(error) bool
}

// DefaultConfig suits provider API calls: three attempts with waits of
// roughly 1s and 2s between them.
func DefaultConfig(retryable func(error) bool) Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Retryable:   retryable,
	}
}

// Do runs fn up to cfg.MaxAttempts times with exponential backoff between
// attempts. Non-retryable errors and context cancellation return
// immediately; exhaustion returns the last error as an ordinary value.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	wait := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.Retryable == nil || !cfg.Retryable(err) {
			return zero, err
		}

		if attempt < cfg.MaxAttempts {
			d := wait
			if cfg.MaxDelay > 0 && d > cfg.MaxDelay {
				d = cfg.MaxDelay
			}
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			wait *= 2
		}
	}

	return zero, lastErr
}
