package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// Polling defaults. Polling uses a fixed interval, not backoff: it
// tracks expected progress rather than reacting to failures.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 60
)

// Terminal polling outcomes.
var (
	ErrGenerationFailed    = errors.New("generation failed")
	ErrGenerationCancelled = errors.New("generation cancelled")
)

// PollConfig tunes WaitForGeneration. The zero value uses the
// defaults: one poll every 2s, 60 polls maximum.
type PollConfig struct {
	// Interval between polls.
	Interval time.Duration

	// MaxAttempts bounds the total wait. Exceeding it returns a
	// timeout-classified error.
	MaxAttempts int

	// OnProgress, if set, is invoked with the latest snapshot on every
	// poll tick, including the terminal one.
	OnProgress func(*Generation)
}

// WaitForGeneration polls a generation until it reaches a terminal
// state or the attempt budget runs out. Cancel by cancelling ctx; the
// loop checks it every iteration.
//
// A completed generation resolves with its final payload. A failed or
// cancelled generation returns an error carrying the backend's
// message. Exhausting MaxAttempts returns a timeout-classified error.
func (c *Client) WaitForGeneration(ctx context.Context, id string, cfg PollConfig) (*Generation, error) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollAttempts
	}

	for attempt := 1; ; attempt++ {
		gen, err := c.Generation(ctx, id)
		if err != nil {
			return nil, err
		}

		if cfg.OnProgress != nil {
			cfg.OnProgress(gen)
		}

		switch gen.Status {
		case StatusCompleted:
			return gen, nil
		case StatusFailed:
			return nil, core.NewClassifiedError(failureError(ErrGenerationFailed, gen.ErrorMessage))
		case StatusCancelled:
			return nil, core.NewClassifiedError(failureError(ErrGenerationCancelled, gen.ErrorMessage))
		}

		if attempt >= maxAttempts {
			return nil, core.NewClassifiedError(fmt.Errorf(
				"%w: generation %s still %s after %d polls", core.ErrTimeout, id, gen.Status, maxAttempts))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// failureError attaches the backend-provided message to a terminal
// polling sentinel.
func failureError(sentinel error, message string) error {
	if message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}
