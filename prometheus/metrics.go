package prometheus

import (
	"time"

	"facturacion-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Entity operation metrics
	EntityOperationsCounter prometheus.CounterVec

	// Invoice document metrics
	PdfRenderDuration prometheus.Histogram

	// Delivery metrics
	EmailsSentCounter   prometheus.Counter
	EmailsFailedCounter prometheus.Counter

	// Export metrics
	ExportsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Entity operation metrics
	EntityOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entity_operations_total",
			Help: "Total number of entity operations",
		},
		[]string{"entity", "operation"},
	)

	// Invoice document metrics
	PdfRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_pdf_render_duration_seconds",
			Help:    "Duration of invoice PDF rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Delivery metrics
	EmailsSentCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_emails_sent_total",
			Help: "Total number of invoice emails dispatched",
		},
	)

	EmailsFailedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_emails_failed_total",
			Help: "Total number of failed invoice email dispatches",
		},
	)

	// Export metrics
	ExportsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_exports_total",
			Help: "Total number of invoice exports",
		},
		[]string{"format"},
	)
}

// RecordEntityOperation increments the counter for entity operations
func RecordEntityOperation(entity, operation string) {
	EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// TrackPdfRender records the duration of one invoice render
func TrackPdfRender() func(startTime time.Time) {
	return func(startTime time.Time) {
		PdfRenderDuration.Observe(time.Since(startTime).Seconds())
	}
}

// RecordExport increments the counter for one export download
func RecordExport(format string) {
	ExportsCounter.WithLabelValues(format).Inc()
}
