// Package metrics provides Prometheus metrics for the API. Besides the
// usual HTTP request metrics it tracks the aggregation layer: how often the
// store was queried, how often the demo fallback was served and why, and
// the outcome of WHO indicator requests.
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_queries_total",
			Help: "Store queries by operation and outcome (ok, empty, error)",
		},
		[]string{"operation", "outcome"},
	)

	FallbackServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_served_total",
			Help: "Demo fallback responses by operation and reason (not_configured, empty, error)",
		},
		[]string{"operation", "reason"},
	)

	WHOIndicatorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "who_indicator_requests_total",
			Help: "WHO indicator requests by outcome (ok, error)",
		},
		[]string{"outcome"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(StoreQueriesTotal)
	prometheus.MustRegister(FallbackServedTotal)
	prometheus.MustRegister(WHOIndicatorRequestsTotal)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
