package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// RefreshFunc adapts a function to the TokenRefresher interface.
type RefreshFunc func(ctx context.Context, refreshToken string) (core.Credential, error)

// Refresh calls f.
func (f RefreshFunc) Refresh(ctx context.Context, refreshToken string) (core.Credential, error) {
	return f(ctx, refreshToken)
}

// EndpointRefresher exchanges refresh tokens against an identity
// provider's token endpoint. The endpoint receives a JSON body with the
// refresh token and must answer with a new access/refresh pair.
type EndpointRefresher struct {
	url        string
	httpClient *http.Client
}

// NewEndpointRefresher creates a refresher for the given token endpoint.
// A nil httpClient falls back to http.DefaultClient.
func NewEndpointRefresher(url string, httpClient *http.Client) *EndpointRefresher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EndpointRefresher{url: url, httpClient: httpClient}
}

// Refresh posts the refresh token and decodes the new credential pair.
func (e *EndpointRefresher) Refresh(ctx context.Context, refreshToken string) (core.Credential, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return core.Credential{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return core.Credential{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return core.Credential{}, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Credential{}, newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		return core.Credential{}, fmt.Errorf("%w: token endpoint returned status %d", core.ErrAuthentication, resp.StatusCode)
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return core.Credential{}, newDecodeError(err)
	}

	cred := core.Credential{
		AccessToken:  core.NewSecret(out.AccessToken),
		RefreshToken: core.NewSecret(out.RefreshToken),
	}
	// Some providers rotate only the access token.
	if out.RefreshToken == "" {
		cred.RefreshToken = core.NewSecret(refreshToken)
	}
	return cred, nil
}

var _ TokenRefresher = (*EndpointRefresher)(nil)
var _ TokenRefresher = RefreshFunc(nil)
