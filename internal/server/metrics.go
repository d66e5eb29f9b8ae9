package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// metrics holds the server's Prometheus collectors on a private
// registry so multiple server instances (as in tests) never collide.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	candidatesFound prometheus.Histogram
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()

	m := &metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rolefinder_requests_total",
			Help: "Search requests by outcome.",
		}, []string{"status"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rolefinder_search_duration_seconds",
			Help:    "End-to-end search request duration.",
			Buckets: prometheus.DefBuckets,
		}),
		candidatesFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rolefinder_candidates_found",
			Help:    "Merged candidates per successful request.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
	}

	registry.MustRegister(m.requestsTotal, m.searchDuration, m.candidatesFound)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
