package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	toggles  *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quillpost",
			Name:      "http_requests_total",
			Help:      "HTTP requests by status code and method.",
		}, []string{"code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quillpost",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quillpost",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quillpost",
			Name:      "engagement_toggles_total",
			Help:      "Like, bookmark and follow toggles by resulting state.",
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.inFlight,
		m.toggles,
	)

	return m
}

func (m *metrics) instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(m.inFlight,
		promhttp.InstrumentHandlerDuration(m.duration,
			promhttp.InstrumentHandlerCounter(m.requests, next)))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// recordToggle counts a toggle of kind ("like", "bookmark", "follow"). on is the state after the toggle.
func (m *metrics) recordToggle(kind string, on bool) {
	if m == nil {
		return
	}

	result := "removed"
	if on {
		result = "added"
	}
	m.toggles.WithLabelValues(kind, result).Inc()
}
