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
	HTTPResponseSize    *prometheus.HistogramVec

	// Dashboard metrics
	DashboardsComputed prometheus.Counter
	ExportsCreated     *prometheus.CounterVec
	ComputeDuration    prometheus.Histogram

	// Dataset metrics
	DatasetRecords      *prometheus.GaugeVec
	DatasetLoadDuration prometheus.Histogram

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates a Metrics instance with all metrics registered on the
// default registry. Call once per process.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),

		DashboardsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dashboards_computed_total",
			Help: "Total number of dashboard overviews computed from facts",
		}),
		ExportsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exports_created_total",
				Help: "Total number of exports created",
			},
			[]string{"format"}, // csv, excel
		),
		ComputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_compute_duration_seconds",
			Help:    "Time spent building fact tables and metrics per window",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}),

		DatasetRecords: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dataset_records",
				Help: "Number of records loaded per dataset table",
			},
			[]string{"table"},
		),
		DatasetLoadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent loading the CSV dataset at startup",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_cache_hits_total",
			Help: "Dashboard overviews served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_cache_misses_total",
			Help: "Dashboard overviews computed on a cache miss",
		}),
	}
}

// Middleware creates an Echo middleware recording per-route HTTP metrics
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
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return err
		}
	}
}

// RecordDashboardComputed increments the computed-dashboards counter and
// observes how long the computation took
func (m *Metrics) RecordDashboardComputed(duration time.Duration) {
	m.DashboardsComputed.Inc()
	m.ComputeDuration.Observe(duration.Seconds())
}

// RecordExportCreated increments the exports counter for a format
func (m *Metrics) RecordExportCreated(format string) {
	m.ExportsCreated.WithLabelValues(format).Inc()
}

// RecordDatasetLoaded sets the per-table record gauges after a load
func (m *Metrics) RecordDatasetLoaded(counts map[string]int, duration time.Duration) {
	for table, count := range counts {
		m.DatasetRecords.WithLabelValues(table).Set(float64(count))
	}
	m.DatasetLoadDuration.Observe(duration.Seconds())
}

// RecordCacheHit increments the dashboard cache hit counter
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
}

// RecordCacheMiss increments the dashboard cache miss counter
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
}
