// Package metrics provides Prometheus metrics for the activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for signup and removal counters.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeFull     = "full"
)

// Manager manages all Prometheus metrics for the activities service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Roster metrics
	signups           *prometheus.CounterVec
	removals          *prometheus.CounterVec
	participants      *prometheus.GaugeVec
	capacity          *prometheus.GaugeVec
	totalActivities   prometheus.Gauge
	totalParticipants prometheus.Gauge
	rosterResets      prometheus.Counter

	// Store metrics
	storeLatency *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // service metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
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

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounterVec(
		m.counterOpts("signups_total", "Signup attempts by activity and outcome"),
		[]string{"activity", "outcome"},
	)
	m.removals = auto.NewCounterVec(
		m.counterOpts("removals_total", "Removal attempts by activity and outcome"),
		[]string{"activity", "outcome"},
	)
	m.participants = auto.NewGaugeVec(
		m.gaugeOpts("participants", "Current number of participants per activity"),
		[]string{"activity"},
	)
	m.capacity = auto.NewGaugeVec(
		m.gaugeOpts("capacity", "Maximum participants per activity"),
		[]string{"activity"},
	)
	m.totalActivities = auto.NewGauge(m.gaugeOpts("total_activities", "Number of activities offered"))
	m.totalParticipants = auto.NewGauge(m.gaugeOpts("total_participants", "Participants across all activities"))
	m.rosterResets = auto.NewCounter(m.counterOpts("roster_resets_total", "Number of times the roster was restored from seed"))

	m.storeLatency = auto.NewHistogramVec(
		m.histogramOpts("store_operation_latency_milliseconds", "Store operation latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
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
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordSignup counts a signup attempt.
func RecordSignup(activity, outcome string) {
	globalManager.signups.WithLabelValues(activity, outcome).Inc()
}

// RecordRemoval counts a removal attempt.
func RecordRemoval(activity, outcome string) {
	globalManager.removals.WithLabelValues(activity, outcome).Inc()
}

// UpdateActivity sets the participant and capacity gauges for one activity.
func UpdateActivity(activity string, participants, capacity int) {
	globalManager.participants.WithLabelValues(activity).Set(float64(participants))
	globalManager.capacity.WithLabelValues(activity).Set(float64(capacity))
}

// ResetActivities drops all per-activity gauges, e.g. before a roster reload.
func ResetActivities() {
	globalManager.participants.Reset()
	globalManager.capacity.Reset()
}

// UpdateTotals sets the catalog-wide gauges.
func UpdateTotals(activities, participants int) {
	globalManager.totalActivities.Set(float64(activities))
	globalManager.totalParticipants.Set(float64(participants))
}

// RecordRosterReset increments the roster reset counter.
func RecordRosterReset() {
	globalManager.rosterResets.Inc()
}

// RecordStoreLatency records a store operation latency in milliseconds.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
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
