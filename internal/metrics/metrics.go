package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for the attendance service.
// Each instance owns its registry so tests and multiple apps don't collide.
type Metrics struct {
	registry *prometheus.Registry

	CheckIns        *prometheus.CounterVec
	CheckOuts       *prometheus.CounterVec
	RosterReads     prometheus.Counter
	RejectedBatches *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CheckIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_participants_checked_in_total",
			Help: "Participants checked in, by participant kind",
		}, []string{"kind"}),
		CheckOuts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_participants_checked_out_total",
			Help: "Participants checked out, by participant kind",
		}, []string{"kind"}),
		RosterReads: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkin_roster_reads_total",
			Help: "Roster fetches served",
		}),
		RejectedBatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_rejected_batches_total",
			Help: "Check-in and check-out batches rejected, by operation",
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "checkin_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (for tests)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AddCheckIns records participants checked in
func (m *Metrics) AddCheckIns(kind string, n int) {
	m.CheckIns.WithLabelValues(kind).Add(float64(n))
}

// AddCheckOuts records participants checked out
func (m *Metrics) AddCheckOuts(kind string, n int) {
	m.CheckOuts.WithLabelValues(kind).Add(float64(n))
}

// IncrementRosterReads records a roster fetch
func (m *Metrics) IncrementRosterReads() {
	m.RosterReads.Inc()
}

// IncrementRejected records a batch rejected by validation
func (m *Metrics) IncrementRejected(operation string) {
	m.RejectedBatches.WithLabelValues(operation).Inc()
}

// ObserveRequest records the duration of an HTTP request.
// route is the path template, never the raw path, to keep group codes out of label values.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
