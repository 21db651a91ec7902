// Package metrics exposes Prometheus collectors for reconciliation steps and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stayos"

// Recorder implements port.StepRecorder and owns the HTTP latency histogram.
type Recorder struct {
	registry *prometheus.Registry
	steps    *prometheus.CounterVec
	requests *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry, including Go and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_steps_total",
			Help:      "Reconciliation steps by operation, step and result.",
		}, []string{"operation", "step", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		r.steps,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RecordStep counts one reconciliation step. A nil err counts as success.
func (r *Recorder) RecordStep(operation, step string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.steps.WithLabelValues(operation, step, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Middleware observes request latency. The route label is the gin route
// template so ids do not explode cardinality.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
