package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invoicely"

// Operation labels for DocumentWritten
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationStatus = "status"
)

// Seed run result labels
const (
	SeedResultSuccess = "success"
	SeedResultFailure = "failure"
	SeedResultSkipped = "skipped"
)

// Metrics holds the application counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	documentsWritten *prometheus.CounterVec
	conflicts        *prometheus.CounterVec
	exports          *prometheus.CounterVec
	seedRuns         *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates the counters on a private registry together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documentsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_written_total",
			Help:      "Invoice and receipt writes that committed, by kind and operation.",
		}, []string{"kind", "operation"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_conflicts_total",
			Help:      "Writes rejected because the document number was already taken.",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_exports_total",
			Help:      "Rendered document exports by kind and format.",
		}, []string{"kind", "format"}),
		seedRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_runs_total",
			Help:      "Demo data reseed runs by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status class.",
		}, []string{"route", "method", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.documentsWritten,
		m.conflicts,
		m.exports,
		m.seedRuns,
		m.httpRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) DocumentWritten(kind, operation string) {
	if m == nil {
		return
	}
	m.documentsWritten.WithLabelValues(kind, operation).Inc()
}

func (m *Metrics) DocumentConflict(kind string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(kind).Inc()
}

func (m *Metrics) DocumentExported(kind, format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(kind, format).Inc()
}

func (m *Metrics) SeedRun(result string) {
	if m == nil {
		return
	}
	m.seedRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) HTTPRequest(route, method, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
}
