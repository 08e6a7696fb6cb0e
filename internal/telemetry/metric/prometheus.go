package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "telemetry_hub"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Command metrics
	CommandsReceived *prometheus.CounterVec
	CommandsRelayed  *prometheus.CounterVec

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Rejections
	AuthFailures prometheus.Counter
	RateLimited  prometheus.Counter
}

// NewRegistry creates a new metrics registry with Go runtime and process
// collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		CommandsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_received_total",
			Help:      "Commands received, by command name and result.",
		}, []string{"command", "result"}),
		CommandsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_relayed_total",
			Help:      "Commands published to the probe relay, by result.",
		}, []string{"result"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests, by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Requests rejected for a missing or invalid API key.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.CommandsReceived,
		r.CommandsRelayed,
		r.RequestsTotal,
		r.RequestDuration,
		r.AuthFailures,
		r.RateLimited,
	)

	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// RecordCommand counts a received command. Result is "accepted",
// "rejected" or "relay_failed".
func (r *Registry) RecordCommand(command, result string) {
	r.CommandsReceived.WithLabelValues(command, result).Inc()
}

// RecordRelay counts a relay publish. Result is "ok" or "error".
func (r *Registry) RecordRelay(result string) {
	r.CommandsRelayed.WithLabelValues(result).Inc()
}

// RecordRequest counts an HTTP request.
func (r *Registry) RecordRequest(method, path, status string) {
	r.RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveRequestDuration records an HTTP request latency in seconds.
func (r *Registry) ObserveRequestDuration(method, path string, seconds float64) {
	r.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncAuthFailure counts a rejected credential.
func (r *Registry) IncAuthFailure() {
	r.AuthFailures.Inc()
}

// IncRateLimited counts a rate-limited request.
func (r *Registry) IncRateLimited() {
	r.RateLimited.Inc()
}
