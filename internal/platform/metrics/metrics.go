// Package metrics holds the Prometheus collectors for upstream calls and
// sandbox fallbacks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presurvey_upstream_requests_total",
			Help: "Requests sent to third-party APIs by provider and outcome",
		},
		[]string{"provider", "outcome"}, // outcome: success, failure, rejected
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presurvey_upstream_duration_seconds",
			Help:    "Duration of third-party API calls including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "presurvey_circuit_breaker_state",
			Help: "Circuit breaker state per provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)

	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presurvey_fallback_responses_total",
			Help: "Responses served from sandbox or mock data instead of a live provider",
		},
		[]string{"endpoint", "source"},
	)

	GeocodeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presurvey_geocode_cache_lookups_total",
			Help: "Live geocode cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)
