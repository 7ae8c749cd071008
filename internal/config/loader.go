package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix  = "GRADEBOOK_"
	EnvFile    = EnvPrefix + "CONFIG"
	EnvDotFile = EnvPrefix + "ENV_FILE"

	defaultDotFile = ".env"
)

// LoadOption adjusts where Load looks for configuration.
type LoadOption func(*loadOptions)

type loadOptions struct {
	file        string
	dotFile     string
	dotExplicit bool
	baseURL     string
}

// WithFile reads YAML configuration from path, overriding GRADEBOOK_CONFIG.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.file = path
		}
	}
}

// WithEnvFile loads path into the process environment before reading it.
// Unlike the default .env, an explicit file must exist.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) {
		if path != "" {
			o.dotFile = path
			o.dotExplicit = true
		}
	}
}

// WithBaseURL overrides base_url from every other source. The result is
// still validated.
func WithBaseURL(u string) LoadOption {
	return func(o *loadOptions) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New(ctx))
//  2. YAML file from WithFile or GRADEBOOK_CONFIG
//  3. environment (prefix GRADEBOOK_), after loading a .env file if present
//  4. WithBaseURL
//
// Variables already set in the environment win over the .env file.
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	o := loadOptions{file: os.Getenv(EnvFile), dotFile: defaultDotFile}
	if p := os.Getenv(EnvDotFile); p != "" {
		o.dotFile = p
		o.dotExplicit = true
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := godotenv.Load(o.dotFile); err != nil {
		if o.dotExplicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, o.dotFile, err)
		}
	}

	base := New(ctx)
	k := koanf.New(".")

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, o.file, err)
		}
	}

	// GRADEBOOK_BASE_URL -> base_url. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Token == "" && c.TokenEnv == "" {
		return fmt.Errorf("%w: either token or token_env must be set", ErrInvalidConfig)
	}
	return nil
}
