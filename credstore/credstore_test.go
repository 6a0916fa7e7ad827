package credstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

func newCredential(access, refresh string) core.Credential {
	return core.Credential{
		AccessToken:  core.NewSecret(access),
		RefreshToken: core.NewSecret(refresh),
	}
}

func TestFileStoreSetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if err := store.Set(newCredential("access-token-123", "refresh-token-456")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	cred, ok := store.Get()
	if !ok {
		t.Fatal("Get() reported no credential after Set()")
	}

	if got := cred.AccessToken.Expose(); got != "access-token-123" {
		t.Errorf("AccessToken = %q, want access-token-123", got)
	}
	if got := cred.RefreshToken.Expose(); got != "refresh-token-456" {
		t.Errorf("RefreshToken = %q, want refresh-token-456", got)
	}
}

func TestFileStoreGetEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if _, ok := store.Get(); ok {
		t.Error("Get() reported a credential before any Set()")
	}
}

func TestFileStoreClear(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if err := store.Set(newCredential("access", "refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, ok := store.Get(); ok {
		t.Error("Get() reported a credential after Clear()")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Clear() left the file behind: stat error = %v", err)
	}
}

func TestFileStoreClearWithoutFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if err := store.Set(newCredential("old-access", "old-refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(newCredential("new-access", "new-refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	cred, ok := store.Get()
	if !ok {
		t.Fatal("Get() reported no credential")
	}
	if got := cred.AccessToken.Expose(); got != "new-access" {
		t.Errorf("AccessToken = %q, want new-access", got)
	}
}

func TestFileStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store1, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err := store1.Set(newCredential("persistent-access", "persistent-refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// New instance pointing at the same file
	store2, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	cred, ok := store2.Get()
	if !ok {
		t.Fatal("Get() reported no credential from second instance")
	}
	if got := cred.AccessToken.Expose(); got != "persistent-access" {
		t.Errorf("AccessToken = %q, want persistent-access", got)
	}
}

func TestFileStoreCorruptFileReportsAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	if err := os.WriteFile(path, []byte("not an encrypted credential file"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if _, ok := store.Get(); ok {
		t.Error("Get() reported a credential from a corrupt file")
	}
}

func TestFileStoreTamperedFileReportsAbsent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err := store.Set(newCredential("access", "refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Flip a byte in the ciphertext
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	contents[len(contents)-1] ^= 0xFF
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, ok := store.Get(); ok {
		t.Error("Get() reported a credential from a tampered file")
	}
}

func TestFileStoreEncrypted(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	secret := "token-that-should-be-encrypted"
	if err := store.Set(newCredential(secret, "refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(contents) == secret {
		t.Error("File contains plaintext token - encryption failed")
	}
	// Encrypted payload, never raw JSON
	if len(contents) > 0 && contents[0] == '{' {
		t.Error("File appears to be unencrypted JSON")
	}
	if string(contents[:len(magicHeader)]) != magicHeader {
		t.Errorf("File missing format magic, got %q", contents[:len(magicHeader)])
	}
}

func TestFileStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permissions not supported on Windows")
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err := store.Set(newCredential("access", "refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("File permissions = %o, want 0600", mode)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subdir", "deep", "credentials.enc")

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err := store.Set(newCredential("access", "refresh")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("File not created: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()

	if path == "" {
		t.Error("DefaultPath() returned empty string")
	}
	if filepath.Base(path) != "credentials.enc" {
		t.Errorf("DefaultPath() = %q, should end with credentials.enc", path)
	}
	dir := filepath.Dir(path)
	if filepath.Base(dir) != ".imagegen" {
		t.Errorf("DefaultPath() = %q, should be in .imagegen directory", path)
	}
}
