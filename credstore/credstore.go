// Package credstore provides a durable, encrypted CredentialStore that
// survives process restarts.
//
// The credential pair is kept in a single file encrypted with
// AES-256-GCM under an Argon2id-derived key. The store implements
// core.CredentialStore, so a broken or tampered file is reported as
// "no credential stored" and the caller proceeds unauthenticated.
package credstore

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPath returns the default credential file path.
// - macOS/Linux: ~/.imagegen/credentials.enc
// - Windows: %USERPROFILE%\.imagegen\credentials.enc
func DefaultPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "credentials.enc"
	}

	return filepath.Join(homeDir, ".imagegen", "credentials.enc")
}

// Open creates a file-backed credential store at the default path.
func Open() (*FileStore, error) {
	return OpenFile(DefaultPath())
}
