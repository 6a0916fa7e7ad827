package core

import (
	"context"
	"errors"
	"net"
)

// ErrorKind identifies the failure taxonomy bucket an error belongs to.
type ErrorKind string

const (
	KindAuthentication  ErrorKind = "authentication"
	KindAuthorization   ErrorKind = "authorization"
	KindPaymentRequired ErrorKind = "payment_required"
	KindRateLimit       ErrorKind = "rate_limit"
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindServerError     ErrorKind = "server_error"
	KindNetworkError    ErrorKind = "network_error"
	KindTimeout         ErrorKind = "timeout"
	KindUnknown         ErrorKind = "unknown"
)

// Severity grades how disruptive a classified error is to the user.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RecoveryAction is the declarative recovery step a UI layer should
// offer for a classified error. It replaces an imperative callback so
// classification stays pure and comparable.
type RecoveryAction string

const (
	RecoveryNone    RecoveryAction = ""
	RecoveryLogin   RecoveryAction = "login"
	RecoveryUpgrade RecoveryAction = "upgrade"
)

// ErrorInfo is the normalized, taxonomy-tagged representation of a
// failure, decoupled from its transport-specific shape. It is derived
// deterministically from a raw error and immutable once constructed.
type ErrorInfo struct {
	Kind        ErrorKind
	Severity    Severity
	Title       string
	Message     string
	Retryable   bool
	Dismissible bool
	Recovery    RecoveryAction
}

// kindProfile holds the static portion of the classification table.
type kindProfile struct {
	severity    Severity
	title       string
	message     string
	retryable   bool
	dismissible bool
	recovery    RecoveryAction
}

var kindProfiles = map[ErrorKind]kindProfile{
	KindAuthentication: {
		severity: SeverityHigh,
		title:    "Session Expired",
		message:  "Your session has expired. Please log in again.",
		recovery: RecoveryLogin,
	},
	KindAuthorization: {
		severity:    SeverityHigh,
		title:       "Access Denied",
		message:     "Your plan does not include this feature.",
		dismissible: true,
		recovery:    RecoveryUpgrade,
	},
	KindPaymentRequired: {
		severity:    SeverityMedium,
		title:       "Upgrade Required",
		message:     "You have run out of credits. Upgrade to continue.",
		dismissible: true,
		recovery:    RecoveryUpgrade,
	},
	KindRateLimit: {
		severity:    SeverityMedium,
		title:       "Slow Down",
		message:     "Too many requests. Please wait a moment and try again.",
		retryable:   true,
		dismissible: true,
	},
	KindValidation: {
		severity:    SeverityLow,
		title:       "Invalid Request",
		message:     "The request was invalid. Check your input and try again.",
		dismissible: true,
	},
	KindNotFound: {
		severity:    SeverityLow,
		title:       "Not Found",
		message:     "The requested resource could not be found.",
		dismissible: true,
	},
	KindServerError: {
		severity:    SeverityHigh,
		title:       "Server Error",
		message:     "Something went wrong on our side. Please try again.",
		retryable:   true,
		dismissible: true,
	},
	KindNetworkError: {
		severity:    SeverityHigh,
		title:       "Connection Problem",
		message:     "Could not reach the server. Check your connection.",
		retryable:   true,
		dismissible: true,
	},
	KindTimeout: {
		severity:    SeverityMedium,
		title:       "Request Timed Out",
		message:     "The server took too long to respond. Please try again.",
		retryable:   true,
		dismissible: true,
	},
	KindUnknown: {
		severity:    SeverityMedium,
		title:       "Unexpected Error",
		message:     "An unexpected error occurred. Please try again.",
		retryable:   true,
		dismissible: true,
	},
}

// Classify maps a raw failure to its ErrorInfo. It is a pure function:
// given the same error it always produces the same record.
//
// Structured backend errors (*APIError) are classified by HTTP status.
// Transport failures are split into timeout and network_error.
// Anything unrecognized lands in unknown, which is retryable.
func Classify(err error) ErrorInfo {
	kind := kindOf(err)
	profile := kindProfiles[kind]

	info := ErrorInfo{
		Kind:        kind,
		Severity:    profile.severity,
		Title:       profile.title,
		Message:     profile.message,
		Retryable:   profile.retryable,
		Dismissible: profile.dismissible,
		Recovery:    profile.recovery,
	}

	// Prefer the backend's own message when it supplied one.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		info.Message = apiErr.Detail
	}

	return info
}

// kindOf resolves the taxonomy bucket for a raw error.
func kindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return kindForStatus(apiErr.Status)
	}

	// Timeouts: deadline expiry or a transport error that reports itself
	// as a timeout.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	switch {
	case errors.Is(err, ErrAuthentication), errors.Is(err, ErrUnauthenticated):
		return KindAuthentication
	case errors.Is(err, ErrAuthorization):
		return KindAuthorization
	case errors.Is(err, ErrPaymentRequired):
		return KindPaymentRequired
	case errors.Is(err, ErrRateLimited):
		return KindRateLimit
	case errors.Is(err, ErrValidation), errors.Is(err, ErrPromptRequired):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrServer):
		return KindServerError
	case errors.Is(err, ErrNetwork):
		return KindNetworkError
	}

	// Any remaining net error is a connectivity problem.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindNetworkError
	}

	return KindUnknown
}

// kindForStatus maps an HTTP status code to a taxonomy bucket.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindAuthentication
	case status == 402:
		return KindPaymentRequired
	case status == 403:
		return KindAuthorization
	case status == 404:
		return KindNotFound
	case status == 422:
		return KindValidation
	case status == 429:
		return KindRateLimit
	case status >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

// ClassifiedError is the error shape that crosses the pipeline
// boundary: the normalized ErrorInfo plus the raw cause for
// errors.Is/As chains.
type ClassifiedError struct {
	Info ErrorInfo
	Err  error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return string(e.Info.Kind) + ": " + e.Info.Message
}

// Unwrap returns the raw cause.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// NewClassifiedError classifies err and wraps it for surfacing.
func NewClassifiedError(err error) *ClassifiedError {
	return &ClassifiedError{Info: Classify(err), Err: err}
}

// InfoFromError recovers the ErrorInfo from an error surfaced by the
// pipeline. Errors that never crossed the pipeline boundary are
// classified on the spot.
func InfoFromError(err error) ErrorInfo {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Info
	}
	return Classify(err)
}
