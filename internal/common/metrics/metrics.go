// Package metrics exposes the gateway's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered by the gateway
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendCalls    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
}

// New creates and registers the gateway collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "publicapi",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "publicapi",
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "publicapi",
			Name:      "backend_requests_total",
			Help:      "Calls made to backend services, by backend and status",
		}, []string{"backend", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "publicapi",
			Name:      "backend_request_duration_seconds",
			Help:      "Time spent waiting on backend services",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "publicapi",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter, by method class",
		}, []string{"method_class"}),
	}

	registry.MustRegister(m.requests, m.requestDuration, m.backendCalls, m.backendDuration, m.rateLimited)
	return m
}

// ObserveRequest records a served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBackend records a backend call. A status of 0 means no response arrived.
func (m *Metrics) ObserveBackend(backend string, status int, duration time.Duration) {
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	m.backendCalls.WithLabelValues(backend, label).Inc()
	m.backendDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// ObserveRateLimited records a rejected request
func (m *Metrics) ObserveRateLimited(methodClass string) {
	m.rateLimited.WithLabelValues(methodClass).Inc()
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
