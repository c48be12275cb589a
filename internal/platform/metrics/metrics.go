package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ConsentsRecorded prometheus.Counter
	GateDecisions    *prometheus.CounterVec
	ErasureRuns      *prometheus.CounterVec
	RequestLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ConsentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vorsorge_consents_recorded_total",
			Help: "Total number of consent records written to the ledger",
		}),
		GateDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vorsorge_gate_decisions_total",
			Help: "Feature gate decisions by outcome",
		}, []string{"outcome"}),
		ErasureRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vorsorge_erasure_runs_total",
			Help: "Account erasure runs by terminal state",
		}, []string{"state"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vorsorge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// IncrementConsentsRecorded increments the consent counter by n.
func (m *Metrics) IncrementConsentsRecorded(n int) {
	m.ConsentsRecorded.Add(float64(n))
}

// IncrementGateDecision counts one gate decision by outcome label.
func (m *Metrics) IncrementGateDecision(outcome string) {
	m.GateDecisions.WithLabelValues(outcome).Inc()
}

// IncrementErasureRun counts one erasure run by terminal state.
func (m *Metrics) IncrementErasureRun(state string) {
	m.ErasureRuns.WithLabelValues(state).Inc()
}

// ObserveRequestLatency records a request duration.
func (m *Metrics) ObserveRequestLatency(method, path string, d time.Duration) {
	m.RequestLatency.WithLabelValues(method, path).Observe(d.Seconds())
}
