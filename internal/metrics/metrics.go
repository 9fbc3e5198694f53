// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/vidtube-server/internal/model"
)

// Auth event names.
const (
	EventRegister        = "register"
	EventLoginSuccess    = "login_success"
	EventLoginFailure    = "login_failure"
	EventRefresh         = "refresh"
	EventRefreshRejected = "refresh_rejected"
	EventLogout          = "logout"
)

// Upload results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector is the Prometheus-backed metrics recorder.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	authEvents   *prometheus.CounterVec
	mediaUploads *prometheus.CounterVec
}

var _ model.MetricsRecorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtube_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtube_auth_events_total",
			Help: "Authentication events by type.",
		}, []string{"event"}),
		mediaUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtube_media_uploads_total",
			Help: "Media uploads by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.authEvents,
		c.mediaUploads,
	)

	return c
}

// RecordHTTPRequest records a served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthEvent records an authentication event.
func (c *Collector) RecordAuthEvent(event string) {
	c.authEvents.WithLabelValues(event).Inc()
}

// RecordMediaUpload records an upload attempt.
func (c *Collector) RecordMediaUpload(kind model.MediaKind, result string) {
	c.mediaUploads.WithLabelValues(string(kind), result).Inc()
}

// Nop discards all metrics.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthEvent(string)                               {}
func (Nop) RecordMediaUpload(model.MediaKind, string)            {}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
