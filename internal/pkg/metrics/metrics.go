package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth workflow metrics
	AuthAttemptsTotal *prometheus.CounterVec

	// Weather enrichment metrics
	EnrichmentTotal   *prometheus.CounterVec
	WeatherCacheTotal *prometheus.CounterVec
}

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// New creates and registers all metrics on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrisense_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agrisense_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrisense_auth_attempts_total",
				Help: "Signup and login attempts by outcome",
			},
			[]string{"operation", "outcome"},
		),
		EnrichmentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrisense_weather_enrichment_total",
				Help: "Weather enrichment attempts by outcome",
			},
			[]string{"outcome"},
		),
		WeatherCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agrisense_weather_cache_total",
				Help: "Weather cache lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthAttemptsTotal,
		m.EnrichmentTotal,
		m.WeatherCacheTotal,
	)

	return m
}

// RecordAuth counts one signup or login attempt
func (m *Metrics) RecordAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordEnrichment counts one enrichment attempt
func (m *Metrics) RecordEnrichment(outcome string) {
	if m == nil {
		return
	}
	m.EnrichmentTotal.WithLabelValues(outcome).Inc()
}

// RecordCache counts one weather cache lookup
func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.WeatherCacheTotal.WithLabelValues(result).Inc()
}
