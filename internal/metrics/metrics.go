// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "workout"

// Outcomes recorded for every atleta operation.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the collectors and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	AtletaOperations *prometheus.CounterVec
	AtletaDuration   *prometheus.HistogramVec
	ReferenceLookups *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// New builds a private registry with Go and process collectors plus the
// service collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		AtletaOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "atleta_operations_total",
			Help:      "Atleta operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		AtletaDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "atleta_operation_duration_seconds",
			Help:      "Latency of atleta operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		ReferenceLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_lookups_total",
			Help:      "Categoria and centro de treinamento lookups by kind and source.",
		}, []string{"kind", "source"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AtletaOperations,
		m.AtletaDuration,
		m.ReferenceLookups,
		m.HTTPRequests,
	)

	return m
}

// ObserveAtleta records one atleta operation. Nil-safe so tests can skip
// metrics entirely.
func (m *Metrics) ObserveAtleta(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.AtletaOperations.WithLabelValues(operation, outcome).Inc()
	m.AtletaDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveReference records where a reference lookup was answered from.
func (m *Metrics) ObserveReference(kind, source string) {
	if m == nil {
		return
	}
	m.ReferenceLookups.WithLabelValues(kind, source).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
