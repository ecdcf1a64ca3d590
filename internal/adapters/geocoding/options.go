package geocoding

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/cosmicpos/pkg/logger"
)

// Default client configuration.
const (
	DefaultBaseURL     = "https://nominatim.openstreetmap.org"
	DefaultUserAgent   = "cosmic-position-calculator"
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 5
	defaultBackoff     = 2 * time.Second
	defaultRatePerSec  = 1.0
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL points the client at a Nominatim-compatible server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxAttempts bounds the number of tries per lookup, first try included.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = uint(n)
		}
	}
}

// WithBackoff sets the base of the linear retry schedule: base, 2*base, 3*base...
func WithBackoff(base time.Duration) Option {
	return func(c *Client) {
		if base >= 0 {
			c.backoffBase = base
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables the cap.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
