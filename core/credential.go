package core

import "sync"

// Storage keys for the persisted credential pair. Durable stores keep
// exactly these two values and nothing else.
const (
	StorageKeyAccessToken  = "auth_token"
	StorageKeyRefreshToken = "refresh_token"
)

// Credential is the access/refresh token pair issued by the external
// identity provider. It is mutated only by a successful refresh or an
// explicit login, and destroyed on logout or irrecoverable refresh
// failure.
type Credential struct {
	AccessToken  Secret
	RefreshToken Secret
}

// IsZero reports whether the credential holds no tokens.
func (c Credential) IsZero() bool {
	return c.AccessToken.IsEmpty() && c.RefreshToken.IsEmpty()
}

// CredentialStore persists and retrieves the current credential pair.
// It is pure key/value storage with no network or validation behavior.
//
// Implementations must treat storage failure as absence: Get reports
// no credential and the caller proceeds unauthenticated.
type CredentialStore interface {
	// Get returns the stored credential, if any.
	Get() (Credential, bool)
	// Set replaces the stored credential.
	Set(Credential) error
	// Clear removes the stored credential.
	Clear() error
}

// MemoryStore is an in-process CredentialStore. It is safe for
// concurrent use. The zero value is ready to use.
type MemoryStore struct {
	mu   sync.RWMutex
	cred Credential
	set  bool
}

// NewMemoryStore returns an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored credential, if any.
func (s *MemoryStore) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.set
}

// Set replaces the stored credential.
func (s *MemoryStore) Set(c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = c
	s.set = true
	return nil
}

// Clear removes the stored credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.set = false
	return nil
}

// Compile-time check that MemoryStore implements CredentialStore.
var _ CredentialStore = (*MemoryStore)(nil)
