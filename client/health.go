package client

import (
	"context"
	"net/http"
)

// Health probes the backend health endpoint. It requires no
// credential.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/health",
		Idempotent: true,
	}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
