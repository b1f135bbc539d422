package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Content repository Prometheus metrics.
var (
	ContentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_requests_total",
			Help:      "Total number of content API queries",
		},
		[]string{"operation", "status"},
	)

	ContentRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "content_request_duration_seconds",
			Help:      "Content API query duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	ContentRateLimitWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "content_rate_limit_wait_seconds",
			Help:      "Time spent waiting on the outbound content API rate limiter",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	ContentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_total",
			Help:      "Content cache hits, misses and collapsed in-flight fetches",
		},
		[]string{"result"}, // "hit" / "miss" / "shared"
	)

	ComparisonDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparison_degraded_total",
			Help:      "Comparison products served without rubric data",
		},
		[]string{"reason"}, // "missing_projection" / "matrix_error"
	)
)

var registerContentOnce sync.Once

// RegisterContentMetrics registers the content repository metrics. Safe to call more than once.
func RegisterContentMetrics() {
	registerContentOnce.Do(func() {
		prometheus.MustRegister(
			ContentRequestsTotal,
			ContentRequestDuration,
			ContentRateLimitWait,
			ContentCacheTotal,
			ComparisonDegradedTotal,
		)
	})
}
