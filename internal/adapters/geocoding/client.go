// Package geocoding resolves free-form place names to coordinates through a
// Nominatim-compatible search API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/logger"
	"github.com/okian/cosmicpos/pkg/metrics"
)

const maxErrorBody = 512

// Lookup resolves a single query string.
type Lookup interface {
	Lookup(ctx context.Context, query string) (spacetime.Location, error)
}

// Client implements Lookup against Nominatim. Transport errors, 429 and 5xx
// responses are retried on a linear schedule; everything else is final.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts uint
	backoffBase time.Duration
	logger      logger.Logger
}

// NewClient creates a Nominatim client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(defaultRatePerSec), 1),
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoff,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Lookup returns the best match for query.
func (c *Client) Lookup(ctx context.Context, query string) (spacetime.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return spacetime.Location{}, ErrEmptyQuery
	}

	start := time.Now()
	loc, err := backoff.Retry(ctx, func() (spacetime.Location, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return spacetime.Location{}, backoff.Permanent(err)
		}
		return c.search(ctx, query)
	},
		backoff.WithBackOff(newLinearBackOff(c.backoffBase)),
		backoff.WithMaxTries(c.maxAttempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.RecordGeocodeRetry()
			c.logger.Warn(ctx, "geocode attempt failed, retrying",
				logger.String("query", query),
				logger.Duration("wait", wait),
				logger.Error(err))
		}),
	)
	latency := float64(time.Since(start).Microseconds()) / 1000

	switch {
	case err == nil:
		metrics.RecordGeocodeRequest(metrics.OutcomeSuccess, latency)
		c.logger.Debug(ctx, "geocoded", logger.String("query", query), logger.String("address", loc.Label))
		return loc, nil
	case errors.Is(err, ErrNotFound):
		metrics.RecordGeocodeRequest(metrics.OutcomeNotFound, latency)
		return spacetime.Location{}, err
	default:
		metrics.RecordGeocodeRequest(metrics.OutcomeError, latency)
		metrics.RecordErrorByComponent("geocoding", errorType(err))
		c.logger.Error(ctx, "geocode failed", logger.String("query", query), logger.Error(err))
		return spacetime.Location{}, err
	}
}

func (c *Client) search(ctx context.Context, query string) (spacetime.Location, error) {
	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return spacetime.Location{}, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return spacetime.Location{}, backoff.Permanent(ctx.Err())
		}
		return spacetime.Location{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return spacetime.Location{}, err
		}
		return spacetime.Location{}, backoff.Permanent(err)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return spacetime.Location{}, backoff.Permanent(fmt.Errorf("%w: decode response: %v", ErrUpstream, err))
	}
	if len(places) == 0 {
		return spacetime.Location{}, backoff.Permanent(fmt.Errorf("%w: %q", ErrNotFound, query))
	}
	loc, err := places[0].location()
	if err != nil {
		return spacetime.Location{}, backoff.Permanent(err)
	}
	return loc, nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, spacetime.ErrInvalidLocation):
		return "invalid_location"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "unknown"
	}
}

// Nominatim jsonv2 search result. Coordinates arrive as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p place) location() (spacetime.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return spacetime.Location{}, fmt.Errorf("%w: latitude %q", ErrUpstream, p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return spacetime.Location{}, fmt.Errorf("%w: longitude %q", ErrUpstream, p.Lon)
	}
	loc := spacetime.Location{Latitude: lat, Longitude: lon, Label: p.DisplayName}
	if err := loc.Validate(); err != nil {
		return spacetime.Location{}, err
	}
	return loc, nil
}
