// Package metrics exposes Prometheus instrumentation for the console:
// backend call outcomes and the console's own HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "installment_console"

// Outcome labels for backend calls.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeNotFound    = "not_found"
	OutcomeServerError = "server_error"
	OutcomeUnavailable = "unavailable"
	OutcomeBadResponse = "bad_response"
	OutcomeCanceled    = "canceled"
)

// Registry owns a private Prometheus registry so tests and multiple
// binaries never collide on the global one.
type Registry struct {
	reg *prometheus.Registry

	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers every collector. withRuntime adds the Go and process collectors.
func New(withRuntime bool) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Backend calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Backend call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Console HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Console HTTP latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(r.backendCalls, r.backendDuration, r.httpRequests, r.httpDuration)
	if withRuntime {
		r.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return r
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveCall satisfies rest.Observer.
func (r *Registry) ObserveCall(op string, status int, took time.Duration, err error) {
	r.backendCalls.WithLabelValues(op, Outcome(status, err)).Inc()
	r.backendDuration.WithLabelValues(op).Observe(took.Seconds())
}

// Outcome classifies a finished backend call.
func Outcome(status int, err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, repository.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, repository.ErrInternalServer):
		return OutcomeServerError
	case errors.Is(err, repository.ErrRejected):
		return OutcomeRejected
	case errors.Is(err, repository.ErrBadResponse):
		return OutcomeBadResponse
	case status == 0 && errors.Is(err, repository.ErrUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeCanceled
	}
}

// Middleware records every request under its route template, so
// /customer/:id stays one series no matter how many customers exist.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
