// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/domain/forces"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/logger"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Calculate(ctx context.Context, in service.CalculateInput) (service.Calculation, error)
	Report(ctx context.Context, in service.CalculateInput) ([]byte, error)
	Geocode(ctx context.Context, query string) (spacetime.Location, error)
	Forces(ctx context.Context) (forces.Catalog, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	calculateHandler *CalculateHandler
	geocodeHandler   *GeocodeHandler
	forcesHandler    *ForcesHandler
}

// Option applies a configuration option to the Server.
type Option func(*options)

type options struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{maxBodyBytes: defaultMaxBodyBytes, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	v := newValidator()
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		calculateHandler: &CalculateHandler{deps: deps, validate: v, maxBodyBytes: o.maxBodyBytes, logger: o.logger},
		geocodeHandler:   &GeocodeHandler{deps: deps, validate: v, maxBodyBytes: o.maxBodyBytes, logger: o.logger},
		forcesHandler:    &ForcesHandler{deps: deps},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", route(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/metrics", route(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/api/health", route(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/stats", route(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/geocode", route(s.geocodeHandler.HandleGeocode, "geocode"))
	mux.HandleFunc("/api/calculate", route(s.calculateHandler.HandleCalculate, "calculate"))
	mux.HandleFunc("/api/report", route(s.calculateHandler.HandleReport, "report"))
	mux.HandleFunc("/api/forces", route(s.forcesHandler.HandleForces, "forces"))
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status its kind maps to and returns it.
func writeError(w http.ResponseWriter, r *http.Request, err error) int {
	status, code := statusFor(err)
	writeJSON(w, status, errorResponse{
		Success:   false,
		Code:      code,
		Error:     err.Error(),
		RequestID: RequestID(r.Context()),
	})
	return status
}

// decodeJSON reads a size-capped JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(dst)
}
