package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the platform
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	IdeasCreatedTotal     prometheus.Counter
	MembershipEventsTotal prometheus.CounterVec
	UsersRegisteredTotal  prometheus.Counter
	UploadsTotal          prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "startuphub_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "startuphub_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "startuphub_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		IdeasCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "startuphub_ideas_created_total",
				Help: "Total startup ideas created",
			},
		),
		MembershipEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "startuphub_membership_events_total",
				Help: "Membership workflow transitions by action (apply, approve, decline, leave)",
			},
			[]string{"action"},
		),
		UsersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "startuphub_users_registered_total",
				Help: "Total user registrations",
			},
		),
		UploadsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "startuphub_uploads_total",
				Help: "Image uploads by outcome",
			},
			[]string{"status"},
		),
	}
}
