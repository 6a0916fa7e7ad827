package core

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the backend with
// full context. The backend error envelope is
// {"detail": "...", "status_code": 422, "error_code": "..."}.
type APIError struct {
	Status    int    // HTTP status code
	Code      string // backend error_code, may be empty
	RequestID string // X-Request-ID echoed by the backend, may be empty
	Detail    string // human-readable detail message
	Err       error  // taxonomy sentinel
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api: %s (status=%d, code=%s, request_id=%s)",
			e.Detail, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("api: %s (status=%d, code=%s)", e.Detail, e.Status, e.Code)
}

// Unwrap returns the underlying sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrAuthentication  = errors.New("authentication failed")
	ErrAuthorization   = errors.New("authorization failed")
	ErrPaymentRequired = errors.New("payment required")
	ErrRateLimited     = errors.New("rate limited")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrServer          = errors.New("server error")
	ErrNetwork         = errors.New("network error")
	ErrTimeout         = errors.New("request timed out")
	ErrDecode          = errors.New("decode error")
	ErrUnknown         = errors.New("unknown error")
)

// Validation errors with actionable guidance.
var (
	ErrPromptRequired  = errors.New("prompt required: every generation request needs a non-empty prompt")
	ErrUnauthenticated = errors.New("not authenticated: no credential stored, log in first")
)

// SentinelForStatus maps an HTTP status code to a taxonomy sentinel.
func SentinelForStatus(status int) error {
	switch {
	case status == 401:
		return ErrAuthentication
	case status == 402:
		return ErrPaymentRequired
	case status == 403:
		return ErrAuthorization
	case status == 404:
		return ErrNotFound
	case status == 422:
		return ErrValidation
	case status == 429:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return ErrUnknown
	}
}
