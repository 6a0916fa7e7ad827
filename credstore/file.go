package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// File format constants.
const (
	// magicHeader identifies credential files written by this package.
	magicHeader = "IGCS"
	// formatVersion is the current file format version.
	formatVersion = byte(0x01)
	// saltLength is the length of the Argon2id salt.
	saltLength = 16
	// nonceLength is the AES-GCM nonce length.
	nonceLength = 12
)

// Argon2id parameters (OWASP recommended).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

var errMalformed = errors.New("credstore: malformed credential file")

// FileStore is a file-backed core.CredentialStore. The credential pair
// is stored under the fixed storage keys in an encrypted JSON map.
// FileStore is safe for concurrent use.
type FileStore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// OpenFile creates a file-backed credential store at the given path.
// The encryption key is derived from machine-specific data, so the
// file is unreadable when copied to another machine or account.
func OpenFile(path string) (*FileStore, error) {
	key, err := deriveMachineKey()
	if err != nil {
		return nil, err
	}

	return &FileStore{
		path:      path,
		masterKey: key,
	}, nil
}

// Get returns the stored credential, if any. Per the CredentialStore
// contract, a missing, unreadable, or tampered file reports absence.
func (f *FileStore) Get() (core.Credential, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return core.Credential{}, false
	}

	access, okAccess := data[core.StorageKeyAccessToken]
	refresh, okRefresh := data[core.StorageKeyRefreshToken]
	if !okAccess && !okRefresh {
		return core.Credential{}, false
	}

	return core.Credential{
		AccessToken:  core.NewSecret(access),
		RefreshToken: core.NewSecret(refresh),
	}, true
}

// Set replaces the stored credential.
func (f *FileStore) Set(cred core.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.saveData(map[string]string{
		core.StorageKeyAccessToken:  cred.AccessToken.Expose(),
		core.StorageKeyRefreshToken: cred.RefreshToken.Expose(),
	})
}

// Clear removes the stored credential file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the credential file location.
func (f *FileStore) Path() string {
	return f.path
}

// loadData reads and decrypts the credential file.
func (f *FileStore) loadData() (map[string]string, error) {
	ciphertext, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 {
		return nil, errMalformed
	}

	plaintext, err := f.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}

	data := make(map[string]string)
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, errMalformed
	}

	return data, nil
}

// saveData encrypts and writes the credential file.
func (f *FileStore) saveData(data map[string]string) error {
	// Ensure directory exists
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}

	// Write with restrictive permissions (user only)
	return os.WriteFile(f.path, ciphertext, 0600)
}

// deriveKey derives an encryption key from the master key using Argon2id.
func deriveKey(masterKey, salt []byte) []byte {
	return argon2.IDKey(masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// encrypt seals data using AES-256-GCM with Argon2id key derivation.
// Format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext]
func (f *FileStore) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	key := deriveKey(f.masterKey, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Build output: magic + version + salt + nonce + ciphertext
	header := make([]byte, 0, len(magicHeader)+1+saltLength+nonceLength)
	header = append(header, []byte(magicHeader)...)
	header = append(header, formatVersion)
	header = append(header, salt...)
	header = append(header, nonce...)

	ciphertext := gcm.Seal(nil, nonce, plaintext, header)
	return append(header, ciphertext...), nil
}

// decrypt opens a sealed credential file.
func (f *FileStore) decrypt(ciphertext []byte) ([]byte, error) {
	headerLen := len(magicHeader) + 1 + saltLength + nonceLength
	if len(ciphertext) < headerLen {
		return nil, errMalformed
	}
	if string(ciphertext[:len(magicHeader)]) != magicHeader || ciphertext[len(magicHeader)] != formatVersion {
		return nil, errMalformed
	}

	offset := len(magicHeader) + 1
	salt := ciphertext[offset : offset+saltLength]
	offset += saltLength
	nonce := ciphertext[offset : offset+nonceLength]
	offset += nonceLength
	encrypted := ciphertext[offset:]
	header := ciphertext[:offset]

	key := deriveKey(f.masterKey, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Open(nil, nonce, encrypted, header)
}

// deriveMachineKey creates a machine-specific master key from hostname
// and user, hashed to 32 bytes.
func deriveMachineKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	material := hostname + ":" + username + ":imagegen-credstore-v1"

	hash := sha256.Sum256([]byte(material))
	return hash[:], nil
}

// Compile-time check that FileStore implements CredentialStore.
var _ core.CredentialStore = (*FileStore)(nil)
