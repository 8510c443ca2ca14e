package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ppm_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Auto-registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ppm_register_total",
			Help: "Total number of auto-registered phone numbers",
		},
	)

	// Submission counter
	SubmissionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ppm_submissions_total",
			Help: "Total number of accepted submissions",
		},
	)

	// Export counter
	ExportCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ppm_exports_total",
			Help: "Total number of CSV exports",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ppm_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ppm_errors_total",
			Help: "Total number of request errors",
		},
		[]string{"type"}, // type can be "validation_rejected", "persist_failed", "invalid_token" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ppm_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Store operation duration
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ppm_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "load", "append", "find_user", "create_user"
	)
)

// InitMetrics registers all metrics with the prometheus registry
func InitMetrics() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(SubmissionCounter)
	prometheus.MustRegister(ExportCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(ErrorCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(StoreOperationDuration)
}

// RecordError increments the error counter for the given type
func RecordError(errorType string) {
	ErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackStoreOperation returns a function that records the duration of a store
// operation when called. Capture the start time before the call and observe
// right after it returns, so the sample covers the store call only:
//
//	start := time.Now()
//	ds, err := s.Load()
//	prometheus.TrackStoreOperation("load")(start)
func TrackStoreOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// MetricsMiddleware creates an Echo middleware that records HTTP request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			endpoint := c.Path()
			statusStr := strconv.Itoa(status)

			HTTPRequestCounter.WithLabelValues(endpoint, method, statusStr).Inc()
			RequestDuration.WithLabelValues(endpoint, method, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
