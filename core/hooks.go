package core

// ErrorSink receives every classified error that surfaces from the
// request pipeline. Implementations drive toasts, error boundaries, or
// logging. The sink is called synchronously on the requesting
// goroutine; implementations that do slow work should hand off.
//
// The ErrorInfo passed to the sink never contains tokens or request
// bodies, only the normalized classification record.
type ErrorSink interface {
	// OnError is called once per surfaced failure, after classification
	// and after any retries have been exhausted.
	OnError(info ErrorInfo)
}

// SessionHooks is notified about session lifecycle transitions that the
// pipeline detects. The external auth collaborator observes this to
// drive a login redirect.
type SessionHooks interface {
	// OnSessionExpired is called when a token refresh fails
	// irrecoverably and the stored credential has been cleared. This is
	// the only session-ending condition the pipeline raises.
	OnSessionExpired()
}

// NoopErrorSink is an ErrorSink that discards all notifications.
// Use this as a default when no sink is configured.
type NoopErrorSink struct{}

// OnError does nothing.
func (NoopErrorSink) OnError(ErrorInfo) {}

// NoopSessionHooks is a SessionHooks that ignores all transitions.
type NoopSessionHooks struct{}

// OnSessionExpired does nothing.
func (NoopSessionHooks) OnSessionExpired() {}

var (
	_ ErrorSink    = NoopErrorSink{}
	_ SessionHooks = NoopSessionHooks{}
)
