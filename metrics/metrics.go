// Package metrics provides Prometheus metrics for token-relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mint outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeBackendFailure = "backend_failure"
)

var (
	// CustomTokensTotal counts mint requests by outcome.
	CustomTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "custom_tokens_total",
			Help:      "Total number of custom token requests by outcome",
		},
		[]string{"outcome"},
	)

	// BackendDuration measures identity backend call duration.
	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Name:      "backend_duration_seconds",
			Help:      "Duration of identity backend mint calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// RecordMint records one backend call.
func RecordMint(outcome string, duration float64) {
	CustomTokensTotal.WithLabelValues(outcome).Inc()
	BackendDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordInvalidRequest records a request rejected before the backend call.
func RecordInvalidRequest() {
	CustomTokensTotal.WithLabelValues(OutcomeInvalidRequest).Inc()
}
