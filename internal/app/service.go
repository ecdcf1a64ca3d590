// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/internal/domain/forces"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/internal/report"
	"github.com/okian/cosmicpos/pkg/logger"
	"github.com/okian/cosmicpos/pkg/metrics"
)

// Geocoder resolves a free-form place name.
type Geocoder interface {
	Resolve(ctx context.Context, input string) (spacetime.Location, error)
}

// Calculation is a displacement result together with the figures derived
// from it for presentation.
type Calculation struct {
	Result      spacetime.Result
	Speed       spacetime.Speed
	Perspective spacetime.Perspective
	// Spacecraft is sorted fastest first.
	Spacecraft []spacetime.Comparison
}

// Service implements the API dependencies for the cosmic position calculator.
type Service struct {
	engine   *spacetime.Engine
	geocoder Geocoder

	// Configuration
	clock clockwork.Clock
	zone  *time.Location

	// Counters
	calculations atomic.Int64
	failures     atomic.Int64
	geocodes     atomic.Int64
	reports      atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for "now".
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithReferenceZone sets the zone "now" is expressed in.
func WithReferenceZone(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.zone = loc
		}
	}
}

// WithGeocoder enables place name resolution.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) {
		s.geocoder = g
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock: clockwork.NewRealClock(),
		zone:  time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.engine = spacetime.NewEngine(
		spacetime.WithClock(s.clock),
		spacetime.WithReferenceZone(s.zone),
	)
	return s
}

// Calculate parses in and computes the displacement between its events.
func (s *Service) Calculate(ctx context.Context, in CalculateInput) (Calculation, error) {
	start := time.Now()
	res, err := s.displace(ctx, in)
	metrics.RecordCalculationLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		return Calculation{}, err
	}

	comparisons := spacetime.CompareSpacecraft(res.MagnitudeKm)
	spacetime.SortBySpeed(comparisons)
	return Calculation{
		Result:      res,
		Speed:       spacetime.SpeedOf(res.Birth.Velocities.TotalMagnitude()),
		Perspective: spacetime.PerspectiveOf(res.MagnitudeKm),
		Spacecraft:  comparisons,
	}, nil
}

// Report renders the text report for in.
func (s *Service) Report(ctx context.Context, in CalculateInput) ([]byte, error) {
	res, err := s.displace(ctx, in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, res); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	s.reports.Add(1)
	metrics.RecordReportRendered()
	return buf.Bytes(), nil
}

// Geocode resolves a place name to coordinates.
func (s *Service) Geocode(ctx context.Context, query string) (spacetime.Location, error) {
	if s.geocoder == nil {
		return spacetime.Location{}, ErrGeocoderDisabled
	}
	loc, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		s.logger.Debug(ctx, "geocode failed", logger.String("query", query), logger.Error(err))
		return spacetime.Location{}, err
	}
	s.geocodes.Add(1)
	return loc, nil
}

// Forces returns the catalog of forces and motions.
func (s *Service) Forces(_ context.Context) (forces.Catalog, error) {
	return forces.Load()
}

// GeocoderEnabled reports whether Geocode can succeed.
func (s *Service) GeocoderEnabled() bool {
	return s.geocoder != nil
}

func (s *Service) displace(ctx context.Context, in CalculateInput) (spacetime.Result, error) {
	birth, err := in.birthEvent()
	if err != nil {
		return s.fail(ctx, err)
	}
	obs, err := in.observation()
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.engine.Displace(birth, obs)
	if err != nil {
		s.logger.Warn(ctx, "displacement failed",
			logger.String("birth", birth.Instant.String()),
			logger.String("current", instantOrZero(obs.Instant).String()),
			logger.Error(err))
		return s.fail(ctx, err)
	}

	s.calculations.Add(1)
	metrics.RecordCalculation(metrics.OutcomeSuccess)
	metrics.RecordDisplacement(res.MagnitudeKm)
	s.logger.Debug(ctx, "displacement computed",
		logger.Float64("elapsed_years", res.ElapsedYears),
		logger.Float64("magnitude_km", res.MagnitudeKm))
	return res, nil
}

func (s *Service) fail(ctx context.Context, err error) (spacetime.Result, error) {
	s.failures.Add(1)
	outcome := Outcome(err)
	metrics.RecordCalculation(outcome)
	if outcome == metrics.OutcomeError {
		s.logger.Error(ctx, "calculation failed", logger.Error(err))
	}
	return spacetime.Result{}, err
}

// Outcome classifies err for metrics: caller mistakes are "invalid",
// everything else is "error".
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrMissingField),
		errors.Is(err, spacetime.ErrInvalidLocation),
		errors.Is(err, spacetime.ErrInvalidTimestamp),
		errors.Is(err, datetime.ErrUnknownTimezone):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"calculations":    s.calculations.Load(),
		"failures":        s.failures.Load(),
		"geocodes":        s.geocodes.Load(),
		"reports":         s.reports.Load(),
		"geocoderEnabled": s.geocoder != nil,
		"referenceZone":   s.zone.String(),
	}
}
