// Package config defines client configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns a Config holding the defaults.
// - Load(ctx, ...) layers defaults, an optional YAML file and the environment.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON.
	LogJSON bool `koanf:"log_json"`

	// BaseURL is the grade service root, e.g. "https://grade-apis.panchen.ca".
	BaseURL string `koanf:"base_url"`

	// Token is the API token. When empty the token is read from the
	// environment variable named by TokenEnv on every request.
	Token string `koanf:"token"`

	// TokenEnv names the environment variable holding the token.
	TokenEnv string `koanf:"token_env"`

	// Timeout bounds each request to the grade service.
	Timeout time.Duration `koanf:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `koanf:"user_agent"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:  "warn",
		BaseURL:   "https://grade-apis.panchen.ca",
		TokenEnv:  "token",
		Timeout:   10 * time.Second,
		UserAgent: "gradebook",
	}
}
