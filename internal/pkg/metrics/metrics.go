// Package metrics holds the Prometheus collectors of the service.
//
// Every method is safe on a nil *Metrics so components can run without
// instrumentation in tests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fleetops"

// Metrics holds the Prometheus collectors.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	assignmentsTotal *prometheus.CounterVec
	refreshesTotal   *prometheus.CounterVec
	snapshotSize     *prometheus.GaugeVec
	auditDropped     prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of requests being served.",
			},
		),
		assignmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "assignments_total",
				Help:      "Assign and unassign attempts by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		refreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "live",
				Name:      "refreshes_total",
				Help:      "Live snapshot reloads by source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		snapshotSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "live",
				Name:      "snapshot_documents",
				Help:      "Documents in the latest snapshot of each source.",
			},
			[]string{"source"},
		),
		auditDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "audit",
				Name:      "dropped_total",
				Help:      "Audit entries that could not be stored.",
			},
		),
	}
}

// RequestStarted tracks an in-flight request and returns the function that
// records its completion.
func (m *Metrics) RequestStarted(method, path string) func(status int) {
	if m == nil {
		return func(int) {}
	}

	m.requestsInFlight.Inc()
	start := time.Now()

	return func(status int) {
		m.requestsInFlight.Dec()
		m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveAssignment counts an assign or unassign attempt.
func (m *Metrics) ObserveAssignment(operation string, err error) {
	if m == nil {
		return
	}
	m.assignmentsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveRefresh counts a snapshot reload and records its size.
func (m *Metrics) ObserveRefresh(source string, documents int, err error) {
	if m == nil {
		return
	}
	m.refreshesTotal.WithLabelValues(source, outcome(err)).Inc()
	if err == nil {
		m.snapshotSize.WithLabelValues(source).Set(float64(documents))
	}
}

// AuditDropped counts an audit entry lost to a storage failure.
func (m *Metrics) AuditDropped() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
