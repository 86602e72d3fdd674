package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	SuggestionRuns       prometheus.Counter
	SuggestionCandidates prometheus.Histogram
	ConflictChecks       *prometheus.CounterVec
	ConflictsDetected    *prometheus.CounterVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewops_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crewops_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		SuggestionRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crewops_suggestion_runs_total",
			Help: "Total number of crew suggestion evaluations",
		}),
		SuggestionCandidates: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crewops_suggestion_candidates",
			Help:    "Candidate crews per suggestion run",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		ConflictChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewops_conflict_checks_total",
				Help: "Total number of schedule conflict checks",
			},
			[]string{"blocking"}, // true, false
		),
		ConflictsDetected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewops_conflicts_detected_total",
				Help: "Total number of conflicts detected by severity",
			},
			[]string{"severity"}, // error, warning, info
		),

		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewops_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crewops_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
	}

	return m
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, not the raw URL

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)

			return err
		}
	}
}

// RecordSuggestionRun records one suggestion evaluation over the given
// number of candidates.
func (m *Metrics) RecordSuggestionRun(candidates int) {
	m.SuggestionRuns.Inc()
	m.SuggestionCandidates.Observe(float64(candidates))
}

// RecordConflictCheck records one conflict check and its findings.
func (m *Metrics) RecordConflictCheck(blocking bool, severityCounts map[string]int) {
	m.ConflictChecks.WithLabelValues(strconv.FormatBool(blocking)).Inc()
	for severity, count := range severityCounts {
		m.ConflictsDetected.WithLabelValues(severity).Add(float64(count))
	}
}

// RecordCacheHit increments cache hits counter
func (m *Metrics) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments cache misses counter
func (m *Metrics) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
