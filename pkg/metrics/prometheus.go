// Package metrics provides Prometheus metrics for the skill genome
// analytics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the analytics service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ingestion metrics
	eventsIngested  prometheus.Counter
	eventsDuplicate prometheus.Counter
	eventsRejected  prometheus.Counter
	corpusEvents    prometheus.Gauge

	// Rebuild / snapshot metrics
	rebuildDuration    prometheus.Histogram
	rebuildTotal       prometheus.Counter
	rebuildFailures    prometheus.Counter
	rebuildBusy        prometheus.Counter
	snapshotLastUnix   prometheus.Gauge
	snapshotSkills     prometheus.Gauge
	snapshotEmployees  prometheus.Gauge
	engineDuration     *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByEndpoint *prometheus.CounterVec
	errorsByType     *prometheus.CounterVec
	errorLatency     *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPause        prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillgenome",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_ingested_total",
		Help:      "Total number of skill events accepted into the corpus",
	})

	m.eventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_duplicate_total",
		Help:      "Total number of duplicate events dropped during reload",
	})

	m.eventsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_rejected_total",
		Help:      "Total number of malformed events that failed batch validation",
	})

	m.corpusEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_events",
		Help:      "Current number of events in the stored corpus",
	})

	m.rebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuild_duration_milliseconds",
		Help:      "Histogram of full snapshot rebuild duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.rebuildTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuild_total",
		Help:      "Total number of completed snapshot rebuilds",
	})

	m.rebuildFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuild_failures_total",
		Help:      "Total number of rebuilds that failed and kept the previous snapshot",
	})

	m.rebuildBusy = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rebuild_busy_total",
		Help:      "Total number of reload requests rejected because a rebuild was in flight",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last published snapshot",
	})

	m.snapshotSkills = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_skills",
		Help:      "Number of canonical skills in the published snapshot",
	})

	m.snapshotEmployees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_employees",
		Help:      "Number of employees in the published snapshot",
	})

	m.engineDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engine_duration_milliseconds",
		Help:      "Per-engine computation duration during a rebuild",
		Buckets:   m.histogramBuckets,
	}, []string{"engine"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method, and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total errors by endpoint, method, and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Total errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_latency_milliseconds",
		Help:      "Latency of requests that ended in an error",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPause = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average garbage collection pause time in milliseconds",
	})
}

// RecordEventsIngested adds accepted events to the ingestion counter.
func RecordEventsIngested(n int) {
	globalManager.eventsIngested.Add(float64(n))
}

// RecordEventsDuplicate adds dropped duplicates to the duplicate counter.
func RecordEventsDuplicate(n int) {
	globalManager.eventsDuplicate.Add(float64(n))
}

// RecordEventsRejected adds malformed events to the rejection counter.
func RecordEventsRejected(n int) {
	globalManager.eventsRejected.Add(float64(n))
}

// UpdateCorpusEvents sets the current corpus size.
func UpdateCorpusEvents(n int) {
	globalManager.corpusEvents.Set(float64(n))
}

// RecordRebuildDuration records a completed rebuild's duration in milliseconds.
func RecordRebuildDuration(ms float64) {
	globalManager.rebuildDuration.Observe(ms)
	globalManager.rebuildTotal.Inc()
}

// RecordRebuildFailure increments the failed rebuild counter.
func RecordRebuildFailure() {
	globalManager.rebuildFailures.Inc()
}

// RecordRebuildBusy increments the busy-rejection counter.
func RecordRebuildBusy() {
	globalManager.rebuildBusy.Inc()
}

// UpdateSnapshot publishes snapshot gauges after an atomic swap.
func UpdateSnapshot(skills, employees int) {
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
	globalManager.snapshotSkills.Set(float64(skills))
	globalManager.snapshotEmployees.Set(float64(employees))
}

// RecordEngineDuration records one engine's computation time during a rebuild.
func RecordEngineDuration(engine string, ms float64) {
	globalManager.engineDuration.WithLabelValues(engine).Observe(ms)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error against its endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error against its type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency records the latency of a failed request.
func RecordErrorLatency(component, errorType string, ms float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(ms)
}

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime sets the average GC pause time.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPause.Set(ms)
}

// GetRegistry returns the custom metrics registry for the /healthz endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
