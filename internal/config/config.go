// Package config loads the layered configuration: defaults, then the
// optional ~/.tuntas/config.toml, then TUNTAS_* environment variables.
// The result is injected everywhere; no other package reads the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const (
	configDirName  = ".tuntas"
	configFileName = "config.toml"

	envPrefix = "tuntas"

	DefaultLogLevel              = "info"
	DefaultRequestTimeoutSeconds = 10
)

// Config holds everything the client needs to talk to the service.
type Config struct {
	// APIURL is the base URL of the activity-groups / todo-items
	// service, without a trailing slash. Required.
	APIURL string `toml:"api_url" envconfig:"API_URL"`

	// Email scopes activities to one account. Required; the service
	// has no authentication beyond this identifier.
	Email string `toml:"email" envconfig:"EMAIL"`

	// LogLevel controls console logging (debug|info|warn|error).
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`

	// RequestTimeoutSeconds bounds one-shot CLI requests. The TUI
	// deliberately leaves requests unbounded, matching the
	// submit-and-wait contract.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds" envconfig:"REQUEST_TIMEOUT_SECONDS"`
}

// Timeout returns the CLI request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load merges defaults, the config file (if present) and environment
// variables, in that order. It does not check required fields; call
// Validate after applying any flag overrides.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:              DefaultLogLevel,
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
	}

	p, err := configPath()
	if err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(p, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Validate reports missing required settings with a hint on how to set
// them.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url not configured (set TUNTAS_API_URL, --api-url, or api_url in ~/%s/%s)", configDirName, configFileName)
	}
	if c.Email == "" {
		return fmt.Errorf("account email not configured (set TUNTAS_EMAIL, --email, or email in ~/%s/%s)", configDirName, configFileName)
	}
	return nil
}
