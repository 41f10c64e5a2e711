package repository

import "github.com/anya-ship-it/cybermentor-platform/pkg/metrics"

func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}
