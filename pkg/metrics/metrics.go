package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Engine metrics
	EngineBuildsTotal   *prometheus.CounterVec
	EngineBuildDuration prometheus.Histogram
	EngineRecordsLoaded prometheus.Gauge
	EngineKnownKeys     prometheus.Gauge

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Query metrics
	RecommendationsTotal *prometheus.CounterVec
	BudgetQueriesTotal   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		EngineBuildsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_builds_total",
				Help: "Total number of recommendation engine builds",
			},
			[]string{"status"},
		),

		EngineBuildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "engine_build_duration_seconds",
				Help:    "Recommendation engine build duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
		),

		EngineRecordsLoaded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_records_loaded",
				Help: "Number of campaign records in the current engine snapshot",
			},
		),

		EngineKnownKeys: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_known_keys",
				Help: "Number of matching keys in the current statistics table",
			},
		),

		ExternalAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		RecommendationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendations_total",
				Help: "Total number of channel recommendations served",
			},
			[]string{"source", "confidence"},
		),

		BudgetQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_queries_total",
				Help: "Total number of budget recommendations served",
			},
			[]string{"confidence"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Engine build metrics
func (m *Metrics) RecordEngineBuild(status string, duration time.Duration) {
	m.EngineBuildsTotal.WithLabelValues(status).Inc()
	m.EngineBuildDuration.Observe(duration.Seconds())
}

// Engine snapshot gauges
func (m *Metrics) RecordEngineSnapshot(records, keys int) {
	m.EngineRecordsLoaded.Set(float64(records))
	m.EngineKnownKeys.Set(float64(keys))
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Recommendation query metrics
func (m *Metrics) RecordRecommendation(source, confidence string) {
	m.RecommendationsTotal.WithLabelValues(source, confidence).Inc()
}

// Budget query metrics
func (m *Metrics) RecordBudgetQuery(confidence string) {
	m.BudgetQueriesTotal.WithLabelValues(confidence).Inc()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
