package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// refreshResult is the shared outcome of one refresh cycle.
type refreshResult struct {
	token core.Secret
	err   error
}

// refreshCoordinator single-flights token refresh. At most one refresh
// cycle is in flight at any time; requests that hit an authentication
// failure while a refresh is outstanding wait for its outcome and
// replay with the same refreshed credential, never triggering a second
// concurrent refresh.
//
// The coordinator is owned by one Client. It is not package-level
// state, so independent clients (and tests) cannot interfere with each
// other.
type refreshCoordinator struct {
	store     core.CredentialStore
	refresher TokenRefresher
	session   core.SessionHooks

	mu       sync.Mutex
	inflight bool
	waiters  []chan refreshResult
}

func newRefreshCoordinator(store core.CredentialStore, refresher TokenRefresher, session core.SessionHooks) *refreshCoordinator {
	return &refreshCoordinator{
		store:     store,
		refresher: refresher,
		session:   session,
	}
}

// enabled reports whether a refresh collaborator is configured.
func (r *refreshCoordinator) enabled() bool {
	return r.refresher != nil
}

// token returns a fresh access token, either by performing the refresh
// or by waiting for the cycle already in flight. Waiters are resolved
// in enqueue order with the single shared outcome.
func (r *refreshCoordinator) token(ctx context.Context) (core.Secret, error) {
	r.mu.Lock()
	if r.inflight {
		ch := make(chan refreshResult, 1)
		r.waiters = append(r.waiters, ch)
		r.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return core.Secret{}, ctx.Err()
		}
	}
	r.inflight = true
	r.mu.Unlock()

	res := r.doRefresh(ctx)

	r.mu.Lock()
	r.inflight = false
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	// Buffered channels keep delivery in enqueue order without
	// blocking on waiters that gave up.
	for _, ch := range waiters {
		ch <- res
	}

	return res.token, res.err
}

// doRefresh performs one refresh cycle: exchange the stored refresh
// token for a new credential pair and persist it. A failed exchange
// ends the session: the credential is cleared and the session observer
// notified. This is the only session-ending condition.
func (r *refreshCoordinator) doRefresh(ctx context.Context) refreshResult {
	cred, ok := r.store.Get()
	if !ok || cred.RefreshToken.IsEmpty() {
		return r.fail(fmt.Errorf("%w: no refresh token stored", core.ErrAuthentication))
	}

	// The refresh outcome is shared by every queued request, so it must
	// not die with the one caller that happened to initiate it.
	refreshCtx := context.WithoutCancel(ctx)

	newCred, err := r.refresher.Refresh(refreshCtx, cred.RefreshToken.Expose())
	if err != nil {
		return r.fail(fmt.Errorf("%w: token refresh failed: %v", core.ErrAuthentication, err))
	}
	if newCred.AccessToken.IsEmpty() {
		return r.fail(fmt.Errorf("%w: refresh returned an empty access token", core.ErrAuthentication))
	}

	// Persistence failure is not fatal here: the tokens still authorize
	// the queued replays, and the store contract treats a broken store
	// as absence on the next read.
	_ = r.store.Set(newCred)

	return refreshResult{token: newCred.AccessToken}
}

// fail clears the credential, signals session end, and packages the
// shared failure for all waiters.
func (r *refreshCoordinator) fail(err error) refreshResult {
	_ = r.store.Clear()
	if r.session != nil {
		r.session.OnSessionExpired()
	}
	return refreshResult{err: err}
}
