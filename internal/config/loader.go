package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names recognised by Load.
const (
	EnvPrefix = "COSMIC_"
	EnvFile   = "COSMIC_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COSMIC_CONFIG is set
//  3. env (prefix COSMIC_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// COSMIC_GEOCODER_BASE_URL -> geocoder_base_url (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.ReferenceTimezone); err != nil {
		return fmt.Errorf("%w: reference_timezone %q: %v", ErrInvalidConfig, c.ReferenceTimezone, err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	if !c.GeocoderEnabled {
		return nil
	}
	switch {
	case c.GeocoderBaseURL == "":
		return fmt.Errorf("%w: geocoder_base_url must not be empty", ErrInvalidConfig)
	case c.GeocoderUserAgent == "":
		return fmt.Errorf("%w: geocoder_user_agent must not be empty", ErrInvalidConfig)
	case c.GeocoderTimeoutMS <= 0:
		return fmt.Errorf("%w: geocoder_timeout_ms must be positive", ErrInvalidConfig)
	case c.GeocoderMaxAttempts < 1:
		return fmt.Errorf("%w: geocoder_max_attempts must be at least 1", ErrInvalidConfig)
	case c.GeocoderBackoffMS < 0:
		return fmt.Errorf("%w: geocoder_backoff_ms must not be negative", ErrInvalidConfig)
	case c.GeocoderRatePerSec <= 0:
		return fmt.Errorf("%w: geocoder_rate_per_sec must be positive", ErrInvalidConfig)
	case c.GeocoderCacheSize < 0:
		return fmt.Errorf("%w: geocoder_cache_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
