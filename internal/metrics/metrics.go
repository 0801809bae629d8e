package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Flightdesk
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	BookingsCreatedTotal      prometheus.Counter
	SchedulingConflictsTotal  prometheus.CounterVec
	CheckinsCompletedTotal    prometheus.Counter
	ReschedulesConfirmedTotal prometheus.Counter
	StatusFallbackTotal       prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightdesk_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightdesk_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightdesk_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		BookingsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightdesk_bookings_created_total",
				Help: "Total bookings created",
			},
		),
		SchedulingConflictsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_scheduling_conflicts_total",
				Help: "Total booking requests rejected because the slot was taken",
			},
			[]string{"resource_kind"},
		),
		CheckinsCompletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightdesk_checkins_completed_total",
				Help: "Total successful flight check-ins",
			},
		),
		ReschedulesConfirmedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightdesk_reschedules_confirmed_total",
				Help: "Total drag reschedules confirmed and persisted",
			},
		),
		StatusFallbackTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightdesk_status_fallback_total",
				Help: "Unrecognized persisted booking statuses folded to pending",
			},
			[]string{"raw_status"},
		),
	}
}
