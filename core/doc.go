// Package core provides the transport-independent primitives of the
// image-generation API client: the error taxonomy and classifier, the
// retry policy, the credential model and store contract, and the
// observer hooks consumed by UI layers.
//
// # Error Classification
//
// Every failure that escapes the request pipeline is normalized to an
// [ErrorInfo], a stable {kind, severity, retryable, recovery} record
// that downstream consumers (toasts, error boundaries, CLI output) can
// render without knowing transport details:
//
//	info := core.Classify(err)
//	if info.Kind == core.KindPaymentRequired {
//	    // offer an upgrade
//	}
//
// [Classify] is a pure function: calling it twice on the same error
// yields an identical ErrorInfo. Raw errors carry a sentinel that can
// be checked with errors.Is:
//
//	if errors.Is(err, core.ErrRateLimited) {
//	    // backend asked us to slow down
//	}
//
// # Retry Policy
//
// [RetryPolicy] decides whether and when a failed attempt is repeated.
// The default policy makes 3 attempts total with geometric backoff
// (1s, 2s) and no jitter. Classification gates retry: authentication
// and validation failures are never retried, whatever the caller
// configured.
//
//	err := core.Retry(ctx, core.DefaultRetryPolicy(), func(ctx context.Context) error {
//	    return doRequest(ctx)
//	})
//
// # Credentials
//
// [Credential] is the access/refresh token pair issued by the external
// identity provider. [CredentialStore] is pure key/value storage with
// no network knowledge; [MemoryStore] is the in-process implementation
// and package credstore provides a durable encrypted one. Tokens are
// wrapped in [Secret] so they never leak through logging or
// serialization.
//
// # Hooks
//
// [ErrorSink] receives every classified error that surfaces from the
// pipeline; [SessionHooks] is notified when a token refresh fails
// irrecoverably and the session ends. Both are explicit injected
// observers; the core has no global event bus.
package core
