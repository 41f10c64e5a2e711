package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets optimized for API response times ranging from milliseconds to 30+ seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	ConnectionRequestSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_connection_request_submissions_total",
			Help: "Total number of connection request submissions",
		},
		[]string{"status"},
	)

	MentorRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_mentor_registrations_total",
			Help: "Total mentor registration attempts",
		},
		[]string{"status"},
	)

	MenteeSignups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_mentee_signups_total",
			Help: "Total mentee newsletter signups",
		},
		[]string{"status"},
	)

	ModerationActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_moderation_actions_total",
			Help: "Total moderation actions performed by administrators",
		},
		[]string{"action", "status"},
	)

	NotificationDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_notification_dispatches_total",
			Help: "Total notification dispatch attempts",
		},
		[]string{"status"},
	)

	EmailSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cybermentor_email_sends_total",
			Help: "Total emails handed to the transactional email provider",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
