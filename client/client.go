package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// apiPrefix is the fixed API version prefix appended to the base URL.
const apiPrefix = "/api/v1"

// BaseURLEnvVar is the environment variable naming the API origin.
const BaseURLEnvVar = "IMAGEGEN_API_URL"

// ErrBaseURLNotSet is returned by NewFromEnv when no origin is configured.
var ErrBaseURLNotSet = errors.New("client: IMAGEGEN_API_URL environment variable not set")

// TokenRefresher exchanges a refresh token for a new credential pair.
// It is the external auth collaborator; how the identity provider
// issues tokens is outside the pipeline's knowledge.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (core.Credential, error)
}

// Client is the resilient request pipeline for the image-generation
// API. It attaches credentials, single-flights token refresh across
// concurrent requests, retries transient failures with bounded
// backoff, and normalizes every surfaced failure through the
// classifier. Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      core.CredentialStore
	retry      core.RetryPolicy
	errors     core.ErrorSink
	session    core.SessionHooks
	userAgent  string
	refresh    *refreshCoordinator
}

// Option configures a Client.
type Option func(*Client)

// New creates a Client for the given API origin. refresher may be nil,
// in which case 401 responses surface immediately without a refresh
// attempt.
func New(baseURL string, refresher TokenRefresher, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		store:      core.NewMemoryStore(),
		retry:      core.DefaultRetryPolicy(),
		errors:     core.NoopErrorSink{},
		session:    core.NoopSessionHooks{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refresh = newRefreshCoordinator(c.store, refresher, c.session)
	return c
}

// NewFromEnv creates a Client using the IMAGEGEN_API_URL environment
// variable as the API origin.
func NewFromEnv(refresher TokenRefresher, opts ...Option) (*Client, error) {
	baseURL := os.Getenv(BaseURLEnvVar)
	if baseURL == "" {
		return nil, ErrBaseURLNotSet
	}
	return New(baseURL, refresher, opts...), nil
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCredentialStore sets the credential store. The default is an
// in-memory store that does not survive process restarts.
func WithCredentialStore(s core.CredentialStore) Option {
	return func(c *Client) {
		if s != nil {
			c.store = s
		}
	}
}

// WithRetryPolicy sets the retry policy for transient failures.
func WithRetryPolicy(p core.RetryPolicy) Option {
	return func(c *Client) {
		if p != nil {
			c.retry = p
		}
	}
}

// WithErrorSink sets the observer notified of every surfaced
// classified error.
func WithErrorSink(s core.ErrorSink) Option {
	return func(c *Client) {
		if s != nil {
			c.errors = s
		}
	}
}

// WithSessionHooks sets the observer notified when the session ends.
func WithSessionHooks(h core.SessionHooks) Option {
	return func(c *Client) {
		if h != nil {
			c.session = h
		}
	}
}

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// CredentialStore returns the client's credential store.
func (c *Client) CredentialStore() core.CredentialStore {
	return c.store
}

// Do executes one logical request and decodes the response body into
// out (a pointer, or *[]byte for raw payloads; nil to discard).
//
// Every failure that escapes Do is a *core.ClassifiedError: the error
// sink has been notified and callers can recover the ErrorInfo with
// core.InfoFromError. Transport-shaped errors never cross this
// boundary.
func (c *Client) Do(ctx context.Context, spec RequestSpec, out any) error {
	err := c.dispatch(ctx, spec, out)
	if err == nil {
		return nil
	}

	classified := core.NewClassifiedError(err)
	c.errors.OnError(classified.Info)
	return classified
}

// dispatch runs the retry/refresh state machine for one logical
// request. The attempt counter is tracked here, per logical request,
// so a refresh replay never resets the retry budget.
func (c *Client) dispatch(ctx context.Context, spec RequestSpec, out any) error {
	refreshed := false

	for attempt := 1; ; attempt++ {
		err := c.dispatchOnce(ctx, spec, out)
		if err == nil {
			return nil
		}

		// Authentication expiry: refresh and replay exactly once per
		// logical request. Concurrent expiries share one refresh.
		if isAuthExpired(err) && !refreshed && c.refresh.enabled() {
			refreshed = true
			if _, rerr := c.refresh.token(ctx); rerr != nil {
				return rerr
			}
			err = c.dispatchOnce(ctx, spec, out)
			if err == nil {
				return nil
			}
		}

		if !c.shouldRetry(spec, err) {
			return err
		}
		delay, ok := c.retry.NextDelay(attempt, err)
		if !ok {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// shouldRetry gates transient retry on request idempotency. A
// rate-limited request was rejected before execution, so it is always
// safe to replay; any other transient failure is replayed only when
// the caller marked the request idempotent.
func (c *Client) shouldRetry(spec RequestSpec, err error) bool {
	if spec.Idempotent {
		return true
	}
	return core.Classify(err).Kind == core.KindRateLimit
}

// isAuthExpired reports whether err is a 401 from the backend.
func isAuthExpired(err error) bool {
	var apiErr *core.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// dispatchOnce performs a single HTTP exchange.
func (c *Client) dispatchOnce(ctx context.Context, spec RequestSpec, out any) error {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	httpReq, err := c.buildRequest(ctx, spec)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return newTimeoutError(err)
		}
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody, resp.Header.Get("X-Request-ID"))
	}

	return decodeBody(respBody, out)
}

// buildRequest assembles the HTTP request for one attempt. Each
// attempt carries a fresh request ID and re-reads the credential
// store, so a replay after refresh picks up the new token.
func (c *Client) buildRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	u := c.baseURL + apiPrefix + spec.Path
	if len(spec.Query) > 0 {
		u += "?" + spec.Query.Encode()
	}
	if _, err := url.Parse(u); err != nil {
		return nil, newNetworkError(err)
	}

	var body io.Reader
	contentType := ""
	switch {
	case spec.RawBody != nil:
		body = bytes.NewReader(spec.RawBody)
		contentType = spec.RawContentType
	case spec.Body != nil:
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, newDecodeError(err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, u, body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", newRequestID())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if cred, ok := c.store.Get(); ok && !cred.AccessToken.IsEmpty() {
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken.Expose())
	}
	for key, values := range spec.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return req, nil
}

// decodeBody unmarshals a successful response into out.
func decodeBody(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = body
		return nil
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newDecodeError(err)
	}
	return nil
}
