// Package config holds finnadmin configuration: the backend endpoints,
// request timeouts, and UI preferences. Configuration is read from
// ~/.finnadmin/config.json and overridden by environment variables, so a
// deployment can pin endpoints without touching user files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables recognised at load time. Env wins over file.
const (
	EnvRestAPIURL = "FINNBOURSE_REST_API_URL"
	EnvMenuAPIURL = "FINNBOURSE_MENU_API_URL"
	EnvToken      = "FINNADMIN_TOKEN"
	EnvTimeout    = "FINNADMIN_TIMEOUT_SECONDS"
)

// UserConfig is the persisted configuration shape.
type UserConfig struct {
	// RestAPIURL is the base URL of the FinnBourse REST backend.
	RestAPIURL string `json:"rest_api_url,omitempty"`

	// MenuAPIURL is the base URL of the menu service collaborator.
	MenuAPIURL string `json:"menu_api_url,omitempty"`

	// TimeoutSeconds bounds each entity/user CRUD request. Zero means
	// the default. The menu fetch keeps its own fixed 5s budget.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`
}

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultRestAPIURL     = "http://localhost:8080/api/v1"
	DefaultTimeoutSeconds = 30
)

// DefaultUserConfigPath returns ~/.finnadmin/config.json.
func DefaultUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".finnadmin", "config.json")
	}
	return filepath.Join(home, ".finnadmin", "config.json")
}

// Load reads the config file at path (missing file is not an error) and
// applies environment overrides.
func Load(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, jsonErr)
		}
	case os.IsNotExist(err):
		// First run: defaults plus environment.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *UserConfig) applyEnv() {
	if v := os.Getenv(EnvRestAPIURL); v != "" {
		c.RestAPIURL = v
	}
	if v := os.Getenv(EnvMenuAPIURL); v != "" {
		c.MenuAPIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
}

func (c *UserConfig) applyDefaults() {
	if c.RestAPIURL == "" {
		c.RestAPIURL = DefaultRestAPIURL
	}
	if c.MenuAPIURL == "" {
		c.MenuAPIURL = c.RestAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Theme == "" {
		c.Theme = "dark"
	}
}

// RequestTimeout returns the per-request budget as a duration.
func (c *UserConfig) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the config as indented JSON, creating parent directories.
func (c *UserConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
