package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Subscription fetches the caller's current subscription. Callers
// without a paid plan receive the free-tier defaults.
func (c *Client) Subscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions",
		Idempotent: true,
	}, &sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription cancels the caller's subscription. With
// atPeriodEnd true (the usual case) access continues until the paid
// period runs out.
func (c *Client) CancelSubscription(ctx context.Context, atPeriodEnd bool) error {
	query := url.Values{}
	query.Set("at_period_end", strconv.FormatBool(atPeriodEnd))

	return c.Do(ctx, RequestSpec{
		Method:     http.MethodDelete,
		Path:       "/subscriptions",
		Query:      query,
		Idempotent: true,
	}, nil)
}

// ReactivateSubscription undoes a pending at-period-end cancellation.
func (c *Client) ReactivateSubscription(ctx context.Context) error {
	return c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/subscriptions/reactivate",
	}, nil)
}

// SubscriptionTiers lists the available pricing tiers.
func (c *Client) SubscriptionTiers(ctx context.Context) ([]Tier, error) {
	var resp struct {
		Tiers []Tier `json:"tiers"`
	}
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions/tiers",
		Idempotent: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Tiers, nil
}

// Checkout starts a checkout session for the given tier and returns
// the URL the user must be redirected to.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	var session CheckoutSession
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/subscriptions/checkout",
		Body:   req,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyCheckout confirms that a checkout session completed after the
// user returns from the payment flow.
func (c *Client) VerifyCheckout(ctx context.Context, sessionID string) (*CheckoutVerification, error) {
	var verification CheckoutVerification
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/subscriptions/verify-checkout",
		Body:   map[string]string{"session_id": sessionID},
	}, &verification)
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// BillingPortal opens a billing-portal session for self-service plan
// management.
func (c *Client) BillingPortal(ctx context.Context, returnURL string) (*PortalSession, error) {
	body := map[string]string{}
	if returnURL != "" {
		body["return_url"] = returnURL
	}

	var session PortalSession
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/subscriptions/portal",
		Body:   body,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
