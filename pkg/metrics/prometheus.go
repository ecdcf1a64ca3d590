package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the calculation and geocode counters.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Calculation metrics
	calculations          *prometheus.CounterVec
	calculationLatency    prometheus.Histogram
	displacementMagnitude prometheus.Histogram
	reportsRendered       prometheus.Counter

	// Geocoding metrics
	geocodeRequests  *prometheus.CounterVec
	geocodeLatency   prometheus.Histogram
	geocodeRetries   prometheus.Counter
	geocodeCache     *prometheus.CounterVec
	geocodeCacheSize prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cosmicpos",
		subsystem:        "",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.calculations = auto.NewCounterVec(
		m.counterOpts("calculations_total", "Displacement calculations by outcome"),
		[]string{"outcome"},
	)
	m.calculationLatency = auto.NewHistogram(
		m.histogramOpts("calculation_latency_milliseconds", "Displacement calculation latency in milliseconds", m.histogramBuckets),
	)
	// 1e3 km .. 1e15 km, one bucket per decade.
	m.displacementMagnitude = auto.NewHistogram(
		m.histogramOpts("displacement_magnitude_km", "Magnitude of computed displacements in km", prometheus.ExponentialBuckets(1e3, 10, 13)),
	)
	m.reportsRendered = auto.NewCounter(
		m.counterOpts("reports_rendered_total", "Text reports rendered"),
	)

	m.geocodeRequests = auto.NewCounterVec(
		m.counterOpts("geocode_requests_total", "Geocode lookups by outcome"),
		[]string{"outcome"},
	)
	m.geocodeLatency = auto.NewHistogram(
		m.histogramOpts("geocode_latency_milliseconds", "Upstream geocode latency in milliseconds, retries included", m.histogramBuckets),
	)
	m.geocodeRetries = auto.NewCounter(
		m.counterOpts("geocode_retries_total", "Geocode attempts retried after a transient failure"),
	)
	m.geocodeCache = auto.NewCounterVec(
		m.counterOpts("geocode_cache_total", "Geocode cache lookups by result"),
		[]string{"result"},
	)
	m.geocodeCacheSize = auto.NewGauge(
		m.gaugeOpts("geocode_cache_entries", "Entries currently held in the geocode cache"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordCalculation counts a calculation with the given outcome.
func RecordCalculation(outcome string) {
	globalManager.calculations.WithLabelValues(outcome).Inc()
}

// RecordCalculationLatency records calculation latency in milliseconds.
func RecordCalculationLatency(latencyMs float64) {
	globalManager.calculationLatency.Observe(latencyMs)
}

// RecordDisplacement records a displacement magnitude in km.
func RecordDisplacement(km float64) {
	globalManager.displacementMagnitude.Observe(km)
}

// RecordReportRendered increments the rendered report counter.
func RecordReportRendered() {
	globalManager.reportsRendered.Inc()
}

// RecordGeocodeRequest counts a lookup and its total latency.
func RecordGeocodeRequest(outcome string, latencyMs float64) {
	globalManager.geocodeRequests.WithLabelValues(outcome).Inc()
	globalManager.geocodeLatency.Observe(latencyMs)
}

// RecordGeocodeRetry increments the geocode retry counter.
func RecordGeocodeRetry() {
	globalManager.geocodeRetries.Inc()
}

// RecordGeocodeCache counts a cache hit or miss.
func RecordGeocodeCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.geocodeCache.WithLabelValues(result).Inc()
}

// UpdateGeocodeCacheSize sets the number of cached entries.
func UpdateGeocodeCacheSize(n int) {
	globalManager.geocodeCacheSize.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
