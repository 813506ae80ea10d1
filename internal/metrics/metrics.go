// Package metrics holds the Prometheus collectors for the HTTP service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login results
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Metrics contains the request and domain collectors. Each instance has its
// own registry so tests can build many routers in one process.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Registrations    prometheus.Counter
	Logins           *prometheus.CounterVec
	GamesCreated     prometheus.Counter
	AttemptsRecorded prometheus.Counter
}

// New creates a registry and registers every collector on it
func New() *Metrics {
	registry := prometheus.NewRegistry()

	// Register standard Go metrics
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tilepath_registrations_total",
			Help: "Total number of accounts registered",
		}),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tilepath_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tilepath_games_created_total",
			Help: "Total number of games created",
		}),
		AttemptsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tilepath_attempts_recorded_total",
			Help: "Total number of attempts recorded",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.Registrations,
		m.Logins,
		m.GamesCreated,
		m.AttemptsRecorded,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordLogin counts a login attempt
func (m *Metrics) RecordLogin(ok bool) {
	result := LoginFailure
	if ok {
		result = LoginSuccess
	}
	m.Logins.WithLabelValues(result).Inc()
}
