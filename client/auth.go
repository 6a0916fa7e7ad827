package client

import (
	"context"
	"net/http"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// newCredential wraps a raw token pair in the core credential model.
func newCredential(accessToken, refreshToken string) core.Credential {
	return core.Credential{
		AccessToken:  core.NewSecret(accessToken),
		RefreshToken: core.NewSecret(refreshToken),
	}
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/auth/me",
		Idempotent: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login stores a credential pair obtained out of band from the
// identity provider. It performs no network call; token issuance is
// the auth collaborator's business.
func (c *Client) Login(accessToken, refreshToken string) error {
	return c.store.Set(newCredential(accessToken, refreshToken))
}

// Logout clears the stored credential pair.
func (c *Client) Logout() error {
	return c.store.Clear()
}
