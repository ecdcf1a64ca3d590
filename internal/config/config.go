// Package config defines the cosmicpos process configuration and its loader.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ReferenceTimezone is the zone "now" is expressed in when no current
	// instant is supplied.
	ReferenceTimezone string `koanf:"reference_timezone"`

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// GeocoderEnabled toggles the outbound location lookup.
	GeocoderEnabled bool `koanf:"geocoder_enabled"`

	// GeocoderBaseURL points at a Nominatim-compatible search endpoint.
	GeocoderBaseURL string `koanf:"geocoder_base_url"`

	// GeocoderUserAgent is sent on every lookup; Nominatim rejects anonymous clients.
	GeocoderUserAgent string `koanf:"geocoder_user_agent"`

	GeocoderTimeoutMS   int     `koanf:"geocoder_timeout_ms"`
	GeocoderMaxAttempts int     `koanf:"geocoder_max_attempts"`
	GeocoderBackoffMS   int     `koanf:"geocoder_backoff_ms"`
	GeocoderRatePerSec  float64 `koanf:"geocoder_rate_per_sec"`
	GeocoderCacheSize   int     `koanf:"geocoder_cache_size"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		ReferenceTimezone:   "UTC",
		MaxBodyBytes:        1 << 20,
		GeocoderEnabled:     true,
		GeocoderBaseURL:     "https://nominatim.openstreetmap.org",
		GeocoderUserAgent:   "cosmic-position-calculator",
		GeocoderTimeoutMS:   10_000,
		GeocoderMaxAttempts: 5,
		GeocoderBackoffMS:   2_000,
		GeocoderRatePerSec:  1,
		GeocoderCacheSize:   1_000,
	}
}

// GeocoderTimeout returns the per-request lookup timeout.
func (c *Config) GeocoderTimeout() time.Duration {
	return time.Duration(c.GeocoderTimeoutMS) * time.Millisecond
}

// GeocoderBackoff returns the base delay of the linear retry schedule.
func (c *Config) GeocoderBackoff() time.Duration {
	return time.Duration(c.GeocoderBackoffMS) * time.Millisecond
}
