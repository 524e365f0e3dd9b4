// Package metrics holds the Prometheus collectors shared by the backend client,
// the suggestion flow and the HTTP router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for backend requests.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeCacheHit  = "cache_hit"
)

var (
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valuelens",
		Name:      "backend_requests_total",
		Help:      "Requests issued to the valuation backend by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	BackendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "valuelens",
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of valuation backend requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	StaleSuggestions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuelens",
		Name:      "suggest_stale_total",
		Help:      "Search responses dropped because a newer keystroke superseded them.",
	})
)

// ObserveBackend records one finished backend request.
func ObserveBackend(endpoint, outcome string, started time.Time) {
	BackendRequests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCacheHit {
		BackendLatency.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	}
}
