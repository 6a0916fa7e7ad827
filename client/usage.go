package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Usage fetches the caller's credit consumption for the current
// period.
func (c *Client) Usage(ctx context.Context) (*UsageStats, error) {
	var stats UsageStats
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions/usage",
		Idempotent: true,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// UsageHistory fetches a daily usage time series covering the last
// days days. Zero means the backend default window.
func (c *Client) UsageHistory(ctx context.Context, days int) (*UsageHistory, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	var history UsageHistory
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions/usage/history",
		Query:      query,
		Idempotent: true,
	}, &history)
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// UsageByModel fetches the per-model usage breakdown.
func (c *Client) UsageByModel(ctx context.Context) (*UsageByModel, error) {
	var breakdown UsageByModel
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions/usage/models",
		Idempotent: true,
	}, &breakdown)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// ExportUsage downloads the usage log as CSV.
func (c *Client) ExportUsage(ctx context.Context) ([]byte, error) {
	var csv []byte
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/subscriptions/usage/export",
		Idempotent: true,
	}, &csv)
	if err != nil {
		return nil, err
	}
	return csv, nil
}
