package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports metrics through a Prometheus registry.
type PrometheusRecorder struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	instanceListTotal    *prometheus.CounterVec
	instanceListDuration prometheus.Histogram
	instanceCacheTotal   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	p := &PrometheusRecorder{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appserver_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "appserver_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		instanceListTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appserver_instance_list_total",
				Help: "Database instance listings by outcome.",
			},
			[]string{"outcome"},
		),
		instanceListDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "appserver_instance_list_duration_seconds",
				Help:    "Time spent listing database instances from the workspace API.",
				Buckets: prometheus.DefBuckets,
			},
		),
		instanceCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appserver_instance_cache_requests_total",
				Help: "Instance listing cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.instanceListTotal,
		p.instanceListDuration,
		p.instanceCacheTotal,
	)

	return p
}

// ObserveHTTPRequest records request count and duration.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncInstanceList increments the listing counter for outcome.
func (p *PrometheusRecorder) IncInstanceList(outcome string) {
	p.instanceListTotal.WithLabelValues(outcome).Inc()
}

// ObserveInstanceListDuration records listing duration.
func (p *PrometheusRecorder) ObserveInstanceListDuration(duration time.Duration) {
	p.instanceListDuration.Observe(duration.Seconds())
}

// IncInstanceCacheHit increments cache hit counter.
func (p *PrometheusRecorder) IncInstanceCacheHit() {
	p.instanceCacheTotal.WithLabelValues("hit").Inc()
}

// IncInstanceCacheMiss increments cache miss counter.
func (p *PrometheusRecorder) IncInstanceCacheMiss() {
	p.instanceCacheTotal.WithLabelValues("miss").Inc()
}
