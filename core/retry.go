package core

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy determines retry behavior for failed requests.
type RetryPolicy interface {
	// NextDelay returns the delay before the next attempt and whether to
	// retry at all. If ok is false, no more attempts should be made.
	// attempt is the number of attempts already made, starting at 1.
	NextDelay(attempt int, err error) (delay time.Duration, ok bool)
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Total attempts including the first (default: 3)
	BaseDelay   time.Duration // Delay before the first retry (default: 1s)
	MaxDelay    time.Duration // Maximum delay cap (default: 30s)
	Jitter      float64       // Jitter factor 0.0-1.0 (default: 0, deterministic backoff)
}

// DefaultRetryPolicy returns a retry policy with the pipeline defaults:
// 3 attempts total, geometric backoff starting at 1s, no jitter.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
	})
}

// NewRetryPolicy creates a retry policy with the given configuration.
func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		cfg.Jitter = 0
	}
	return &exponentialBackoff{cfg: cfg}
}

type exponentialBackoff struct {
	cfg RetryConfig
}

func (e *exponentialBackoff) NextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= e.cfg.MaxAttempts {
		return 0, false
	}

	if !isRetryable(err) {
		return 0, false
	}

	// Geometric backoff: baseDelay * 2^(attempt-1)
	delay := float64(e.cfg.BaseDelay) * math.Pow(2, float64(attempt-1))

	// Optional jitter: delay * (1 + random(-jitter, +jitter))
	if e.cfg.Jitter > 0 {
		jitterRange := delay * e.cfg.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	if delay > float64(e.cfg.MaxDelay) {
		delay = float64(e.cfg.MaxDelay)
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay), true
}

// isRetryable determines if an error should trigger a retry.
// Classification is authoritative: authentication and validation
// failures are never retried, whatever the caller configured.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// A canceled caller is not coming back.
	if errors.Is(err, context.Canceled) {
		return false
	}

	switch Classify(err).Kind {
	case KindAuthentication, KindValidation:
		return false
	case KindRateLimit, KindServerError, KindNetworkError, KindTimeout, KindUnknown:
		return true
	default:
		return false
	}
}

// Retry executes op until it succeeds, the policy gives up, or ctx is
// done. The last observed error is returned once attempts are
// exhausted.
func Retry(ctx context.Context, policy RetryPolicy, op func(ctx context.Context) error) error {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		delay, shouldRetry := policy.NextDelay(attempt, err)
		if !shouldRetry {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
