// Package metrics registers the Prometheus collectors for the movie
// catalog service on the default registry, exposed via /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by method, route pattern and
	// status code class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviecatalog_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration tracks request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviecatalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EngineComputeDuration tracks time spent in the filter, sort and
	// paginate pipeline. The pipeline is in-memory, so the buckets run
	// far below the HTTP defaults.
	EngineComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviecatalog_engine_compute_duration_seconds",
			Help:    "Time spent computing a visible window.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
	)

	// BrowseCacheHits and BrowseCacheMisses track the browse response
	// cache keyed by canonical query string.
	BrowseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviecatalog_browse_cache_hits_total",
			Help: "Browse responses served from the query cache.",
		},
	)
	BrowseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviecatalog_browse_cache_misses_total",
			Help: "Browse requests that had to recompute the pipeline.",
		},
	)

	// FavoritesWriteFailures counts persistence writes the favorites
	// store absorbed. The in-memory set stays authoritative, so these
	// surface only here and in the logs.
	FavoritesWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviecatalog_favorites_write_failures_total",
			Help: "Favorites persistence writes that failed.",
		},
	)

	// ActiveSessions gauges the number of live browsing sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviecatalog_sessions_active",
			Help: "Browsing sessions currently held in memory.",
		},
	)
)

// RecordRequest updates the HTTP counters for one completed request.
func RecordRequest(method, route, status string, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveCompute records one pipeline run.
func ObserveCompute(elapsed time.Duration) {
	EngineComputeDuration.Observe(elapsed.Seconds())
}
