package prometheus

import (
	"strconv"
	"time"

	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusAdapter struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec
}

var (
	_ ports.MetricsPort      = (*PrometheusAdapter)(nil)
	_ ports.EventMetricsPort = (*PrometheusAdapter)(nil)
)

// NewPrometheusAdapter registers collectors on the default registry.
func NewPrometheusAdapter() *PrometheusAdapter {
	return NewPrometheusAdapterWithRegistry(prometheus.DefaultRegisterer)
}

func NewPrometheusAdapterWithRegistry(reg prometheus.Registerer) *PrometheusAdapter {
	factory := promauto.With(reg)
	return &PrometheusAdapter{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maintenance_events_total",
			Help: "Maintenance lifecycle events by direction and outcome",
		}, []string{"direction", "event", "outcome"}),
	}
}

func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	method := c.Request.Method
	p.requests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	p.duration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}

func (p *PrometheusAdapter) RecordEvent(direction, event, outcome string) {
	p.events.WithLabelValues(direction, event, outcome).Inc()
}
