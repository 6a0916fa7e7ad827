package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	if policy == nil {
		t.Fatal("DefaultRetryPolicy() returned nil")
	}
}

func TestRetryPolicyRetryableErrors(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"APIError 429", &APIError{Status: 429, Err: ErrRateLimited}, true},
		{"APIError 500", &APIError{Status: 500, Err: ErrServer}, true},
		{"APIError 502", &APIError{Status: 502, Err: ErrServer}, true},
		{"APIError 503", &APIError{Status: 503, Err: ErrServer}, true},
		{"network sentinel", ErrNetwork, true},
		{"timeout sentinel", ErrTimeout, true},
		{"net timeout", timeoutError{}, true},
		{"unknown error", errors.New("mystery"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := policy.NextDelay(1, tt.err)
			if ok != tt.wantRetry {
				t.Errorf("NextDelay(1, %v) retry = %v, want %v", tt.err, ok, tt.wantRetry)
			}
		})
	}
}

func TestRetryPolicyNonRetryableErrors(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"APIError 401", &APIError{Status: 401, Err: ErrAuthentication}},
		{"APIError 404", &APIError{Status: 404, Err: ErrNotFound}},
		{"APIError 422", &APIError{Status: 422, Err: ErrValidation}},
		{"authentication sentinel", ErrAuthentication},
		{"validation sentinel", ErrValidation},
		{"context.Canceled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := policy.NextDelay(1, tt.err); ok {
				t.Errorf("NextDelay(1, %v) retried a non-retryable error", tt.err)
			}
		})
	}
}

func TestRetryPolicyGeometricDelays(t *testing.T) {
	policy := DefaultRetryPolicy()
	err := &APIError{Status: 503, Err: ErrServer}

	delay, ok := policy.NextDelay(1, err)
	if !ok || delay != time.Second {
		t.Errorf("NextDelay(1) = %v, %v; want 1s, true", delay, ok)
	}

	delay, ok = policy.NextDelay(2, err)
	if !ok || delay != 2*time.Second {
		t.Errorf("NextDelay(2) = %v, %v; want 2s, true", delay, ok)
	}

	// Third attempt already happened; the policy gives up.
	if _, ok = policy.NextDelay(3, err); ok {
		t.Error("NextDelay(3) should exhaust the 3-attempt budget")
	}
}

func TestRetryPolicyDelayCap(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxAttempts: 10,
		BaseDelay:   time.Second,
		MaxDelay:    4 * time.Second,
	})
	err := &APIError{Status: 500, Err: ErrServer}

	delay, ok := policy.NextDelay(6, err)
	if !ok {
		t.Fatal("NextDelay(6) should still retry")
	}
	if delay != 4*time.Second {
		t.Errorf("NextDelay(6) = %v, want cap of 4s", delay)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})

	attempts := 0
	err := Retry(context.Background(), policy, func(ctx context.Context) error {
		attempts++
		return &APIError{Status: 503, Detail: "unavailable", Err: ErrServer}
	})

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, ErrServer) {
		t.Errorf("Retry returned %v, want last server error", err)
	}
}

func TestRetryStopsOnTerminalKind(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
	})

	attempts := 0
	err := Retry(context.Background(), policy, func(ctx context.Context) error {
		attempts++
		return &APIError{Status: 422, Detail: "bad prompt", Err: ErrValidation}
	})

	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 for a validation failure", attempts)
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Retry returned %v, want validation error", err)
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
	})

	attempts := 0
	err := Retry(context.Background(), policy, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &APIError{Status: 500, Err: ErrServer}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Retry returned %v, want nil", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Hour, // would stall forever without cancellation
	})

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, policy, func(ctx context.Context) error {
			attempts++
			return &APIError{Status: 503, Err: ErrServer}
		})
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Retry returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Retry did not observe cancellation")
	}

	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetryNilPolicyUsesDefault(t *testing.T) {
	err := Retry(context.Background(), nil, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("Retry returned %v, want nil", err)
	}
}
