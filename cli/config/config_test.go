package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Error("DefaultConfigPath() returned empty string")
	}

	// Should end with config.yaml
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}

	// Should contain .imagegen directory
	dir := filepath.Dir(path)
	if filepath.Base(dir) != ".imagegen" {
		t.Errorf("DefaultConfigPath() = %q, should be in .imagegen directory", path)
	}
}

func TestDefaultConfigPathPlatform(t *testing.T) {
	path := DefaultConfigPath()

	if runtime.GOOS == "windows" {
		// Should use USERPROFILE on Windows
		userProfile := os.Getenv("USERPROFILE")
		if userProfile != "" && !strings.HasPrefix(path, userProfile) {
			t.Logf("Note: path %q doesn't start with USERPROFILE %q", path, userProfile)
		}
	} else {
		// Should use HOME on Unix
		home := os.Getenv("HOME")
		if home != "" && !strings.HasPrefix(path, home) {
			t.Logf("Note: path %q doesn't start with HOME %q", path, home)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	if err != nil {
		t.Errorf("LoadConfig() error = %v, want nil for missing file", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Should return empty config
	if cfg.APIURL != "" {
		t.Errorf("APIURL = %q, want empty", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("TimeoutSeconds = %d, want 0", cfg.TimeoutSeconds)
	}
}

func TestLoadConfigValid(t *testing.T) {
	content := `
api_url: https://api.example.com
auth_refresh_url: https://auth.example.com/oauth/token
timeout_seconds: 45
poll_interval_seconds: 5
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("APIURL = %q, want https://api.example.com", cfg.APIURL)
	}
	if cfg.AuthRefreshURL != "https://auth.example.com/oauth/token" {
		t.Errorf("AuthRefreshURL = %q, want https://auth.example.com/oauth/token", cfg.AuthRefreshURL)
	}
	if cfg.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.TimeoutSeconds)
	}
	if cfg.PollIntervalSeconds != 5 {
		t.Errorf("PollIntervalSeconds = %d, want 5", cfg.PollIntervalSeconds)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	// YAML that will cause unmarshal error (wrong type)
	content := `
api_url: [invalid, array, instead, of, string]
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("LoadConfig() should return error for invalid YAML")
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config for empty file")
	}
}

func TestLoadConfigMinimal(t *testing.T) {
	content := `api_url: http://localhost:8000`

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q, want http://localhost:8000", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("TimeoutSeconds = %d, want 0", cfg.TimeoutSeconds)
	}
}
