package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/okian/cosmicpos/internal/adapters/geocoding"
	"github.com/okian/cosmicpos/internal/adapters/http/api"
	"github.com/okian/cosmicpos/internal/adapters/http/site"
	"github.com/okian/cosmicpos/internal/adapters/http/swagger"
	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/config"
	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/pkg/logger"
	"github.com/okian/cosmicpos/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceStatsInterval      = time.Minute
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Only the custom registry is served on /metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		_, _ = os.Stderr.WriteString("invalid log_format: " + err.Error() + "\n")
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mux, svc, err := buildMux(ctx, cfg, log)
	if err != nil {
		log.Fatal(ctx, "failed to build application", logger.Error(err))
	}

	go startSystemMetricsUpdater(ctx)
	go startStatsReporter(ctx, svc, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Bool("geocoder", cfg.GeocoderEnabled),
			logger.String("referenceTimezone", cfg.ReferenceTimezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// buildMux wires the service and every HTTP surface from cfg.
func buildMux(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.ServeMux, *service.Service, error) {
	zone, err := datetime.LoadZone(cfg.ReferenceTimezone)
	if err != nil {
		return nil, nil, err
	}

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithReferenceZone(zone),
	}
	if cfg.GeocoderEnabled {
		opts = append(opts, service.WithGeocoder(newGeocoder(cfg, log)))
	}
	svc := service.New(opts...)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc,
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithLogger(log.Named("api")),
	).Register(ctx, mux)
	site.Register(ctx, mux)

	return mux, svc, nil
}

// newGeocoder builds client -> cache -> resolver.
func newGeocoder(cfg *config.Config, log logger.Logger) *geocoding.Resolver {
	l := log.Named("geocoding")
	client := geocoding.NewClient(
		geocoding.WithBaseURL(cfg.GeocoderBaseURL),
		geocoding.WithUserAgent(cfg.GeocoderUserAgent),
		geocoding.WithTimeout(cfg.GeocoderTimeout()),
		geocoding.WithMaxAttempts(cfg.GeocoderMaxAttempts),
		geocoding.WithBackoff(cfg.GeocoderBackoff()),
		geocoding.WithRateLimit(cfg.GeocoderRatePerSec),
		geocoding.WithLogger(l),
	)
	return geocoding.NewResolver(geocoding.NewCachedLookup(client, cfg.GeocoderCacheSize), l)
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startStatsReporter logs service counters at debug level until ctx is done.
func startStatsReporter(ctx context.Context, svc *service.Service, log logger.Logger) {
	ticker := time.NewTicker(serviceStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reportStats(ctx, svc, log)
		}
	}
}

func reportStats(ctx context.Context, svc *service.Service, log logger.Logger) {
	stats := svc.GetStats()
	fields := make([]logger.Field, 0, len(stats))
	for k, v := range stats {
		fields = append(fields, logger.Any(k, v))
	}
	log.Debug(ctx, "service stats", fields...)
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
