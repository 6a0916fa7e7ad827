// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// APIURL is the base URL of the image-generation API.
	APIURL string `yaml:"api_url"`
	// AuthRefreshURL is the token-refresh endpoint of the identity
	// provider. Empty disables automatic refresh.
	AuthRefreshURL string `yaml:"auth_refresh_url"`
	// TimeoutSeconds bounds each API request. Zero uses the client default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// PollIntervalSeconds overrides the generation polling cadence.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.imagegen/config.yaml
// - Windows: %USERPROFILE%\.imagegen\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".imagegen", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
