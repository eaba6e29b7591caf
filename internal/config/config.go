// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// API
	APIBaseURL string `json:"api_base_url,omitempty"` // Base URL of the onboarding/profile API
	Token      string `json:"token,omitempty"`        // Static bearer token
	JWTSecret  string `json:"jwt_secret,omitempty"`   // HS256 secret for minting dev tokens

	// Identity
	UserID string `json:"user_id,omitempty"` // User UUID the session belongs to

	// Local cache
	CachePath string `json:"cache_path,omitempty"` // SQLite file for the device-local session cache

	// Behavior
	AutosaveMS     int  `json:"autosave_ms,omitempty"`     // Debounce window for autosaves, in milliseconds
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"` // HTTP request timeout
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// the corresponding field at its zero value.
func FromEnv() *Config {
	cfg := &Config{
		APIBaseURL: os.Getenv("ONBOARDING_API_URL"),
		Token:      os.Getenv("ONBOARDING_TOKEN"),
		JWTSecret:  os.Getenv("ONBOARDING_JWT_SECRET"),
		UserID:     os.Getenv("ONBOARDING_USER_ID"),
		CachePath:  os.Getenv("ONBOARDING_CACHE_PATH"),
	}
	if v := os.Getenv("ONBOARDING_AUTOSAVE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.AutosaveMS = ms
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.AutosaveMS < 0 {
		return fmt.Errorf("config error: 'autosave_ms' must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("config error: 'user_id' is not a valid UUID: %w", err)
		}
	}
	if c.Token == "" && c.JWTSecret == "" {
		return fmt.Errorf("config error: either 'token' or 'jwt_secret' is required")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.AutosaveMS == 0 {
		result.AutosaveMS = defaults.AutosaveMS
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
