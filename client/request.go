package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// RequestSpec describes one logical API request. Every field the
// pipeline needs is enumerated here; there is no dynamic config bag.
type RequestSpec struct {
	// Method is the HTTP method.
	Method string

	// Path is the endpoint path relative to the API version prefix,
	// e.g. "/generate/text-to-image".
	Path string

	// Query holds optional URL query parameters.
	Query url.Values

	// Body is JSON-encoded as the request body when non-nil.
	Body any

	// RawBody, when set, is sent as-is instead of Body. Used for
	// multipart uploads. Held as bytes so a replay after refresh can
	// resend it. RawContentType must be set alongside it.
	RawBody        []byte
	RawContentType string

	// Headers holds optional extra headers.
	Headers http.Header

	// Idempotent marks the request as safe to replay. Non-idempotent
	// requests are still replayed after a token refresh (the original
	// attempt was never authorized) but are not retried on transient
	// failures.
	Idempotent bool

	// Timeout optionally overrides the client timeout for this request.
	Timeout time.Duration
}

// newRequestID builds the opaque traceability ID attached to every
// outbound request: "<unix-millis>-<random>".
func newRequestID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
}

// errorEnvelope is the backend's error response shape.
type errorEnvelope struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// parseAPIError converts an HTTP error response into a *core.APIError
// carrying the appropriate taxonomy sentinel.
func parseAPIError(status int, body []byte, requestID string) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)

	detail := envelope.Detail
	if detail == "" {
		detail = http.StatusText(status)
	}

	return &core.APIError{
		Status:    status,
		Code:      envelope.ErrorCode,
		RequestID: requestID,
		Detail:    detail,
		Err:       core.SentinelForStatus(status),
	}
}

// newNetworkError wraps a transport failure.
func newNetworkError(err error) error {
	return fmt.Errorf("%w: %v", core.ErrNetwork, err)
}

// newTimeoutError wraps a transport timeout.
func newTimeoutError(err error) error {
	return fmt.Errorf("%w: %v", core.ErrTimeout, err)
}

// newDecodeError wraps a response parsing failure.
func newDecodeError(err error) error {
	return fmt.Errorf("%w: %v", core.ErrDecode, err)
}
