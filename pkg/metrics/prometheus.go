// Package metrics provides Prometheus metrics for the FitCheck service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the FitCheck service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Calculator
	computations       *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	bmiValues          prometheus.Histogram

	// History
	historyAppends        prometheus.Counter
	historyClears         prometheus.Counter
	historyReadRecoveries *prometheus.CounterVec
	historyWriteErrors    prometheus.Counter
	historySize           prometheus.Gauge

	// Storage
	storageLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fitcheck",
		subsystem:        "bmi",
		histogramBuckets: prometheus.DefBuckets,
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
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.computations = auto.NewCounterVec(
		m.counterOpts("computations_total", "Total number of successful BMI computations"),
		[]string{"unit", "category"},
	)
	m.validationFailures = auto.NewCounterVec(
		m.counterOpts("validation_failures_total", "Total number of rejected submissions by reason"),
		[]string{"reason"},
	)
	m.bmiValues = auto.NewHistogram(
		m.histogramOpts("value", "Distribution of computed BMI values", []float64{16, 18.5, 21, 25, 30, 35, 40, 50}),
	)

	m.historyAppends = auto.NewCounter(m.counterOpts("history_appends_total", "Total number of entries appended to history"))
	m.historyClears = auto.NewCounter(m.counterOpts("history_clears_total", "Total number of history clears"))
	m.historyReadRecoveries = auto.NewCounterVec(
		m.counterOpts("history_read_recoveries_total", "Total number of history reads recovered to an empty list"),
		[]string{"cause"},
	)
	m.historyWriteErrors = auto.NewCounter(m.counterOpts("history_write_errors_total", "Total number of failed history writes"))
	m.historySize = auto.NewGauge(m.gaugeOpts("history_size", "Number of entries in the persisted history"))

	m.storageLatency = auto.NewHistogramVec(
		m.histogramOpts("storage_latency_milliseconds", "Storage operation latency in milliseconds", m.histogramBuckets),
		[]string{"driver", "op"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of failed operations in milliseconds", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordComputation counts a successful computation and observes its value.
func RecordComputation(unit, category string, bmi float64) {
	globalManager.computations.WithLabelValues(unit, category).Inc()
	globalManager.bmiValues.Observe(bmi)
}

// RecordValidationFailure counts a rejected submission.
func RecordValidationFailure(reason string) {
	globalManager.validationFailures.WithLabelValues(reason).Inc()
}

// RecordHistoryAppend counts an appended history entry.
func RecordHistoryAppend() {
	globalManager.historyAppends.Inc()
}

// RecordHistoryClear counts a history clear.
func RecordHistoryClear() {
	globalManager.historyClears.Inc()
}

// RecordHistoryReadRecovery counts a history read that fell back to empty.
// cause is "storage" or "decode".
func RecordHistoryReadRecovery(cause string) {
	globalManager.historyReadRecoveries.WithLabelValues(cause).Inc()
}

// RecordHistoryWriteError counts a failed history write.
func RecordHistoryWriteError() {
	globalManager.historyWriteErrors.Inc()
}

// UpdateHistorySize sets the persisted history length.
func UpdateHistorySize(size int) {
	globalManager.historySize.Set(float64(size))
}

// RecordStorageLatency records a storage operation latency in milliseconds.
func RecordStorageLatency(driver, op string, latencyMs float64) {
	globalManager.storageLatency.WithLabelValues(driver, op).Observe(latencyMs)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType increments the error counter by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation in milliseconds.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry that holds the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
