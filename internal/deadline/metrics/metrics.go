package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the deadline engine.
type Metrics struct {
	// Computations by deadline type and outcome ("ok" or an error code)
	Computations *prometheus.CounterVec

	// Rule applications by rule ID
	RulesApplied *prometheus.CounterVec

	// Full computation latency including store reads
	ComputeLatency prometheus.Histogram
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Computations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prazo_deadline_computations_total",
			Help: "Deadline computations by deadline type and outcome",
		}, []string{"deadline_type", "outcome"}),

		RulesApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prazo_deadline_rules_applied_total",
			Help: "Pipeline rule applications by rule ID",
		}, []string{"rule"}),

		ComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prazo_deadline_compute_duration_seconds",
			Help:    "Duration of full deadline computations including store reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementComputation records a computation outcome.
func (m *Metrics) IncrementComputation(deadlineType, outcome string) {
	if m != nil {
		m.Computations.WithLabelValues(deadlineType, outcome).Inc()
	}
}

// IncrementRule records one rule application.
func (m *Metrics) IncrementRule(ruleID string) {
	if m != nil {
		m.RulesApplied.WithLabelValues(ruleID).Inc()
	}
}

// ObserveCompute records the total computation duration.
func (m *Metrics) ObserveCompute(d time.Duration) {
	if m != nil {
		m.ComputeLatency.Observe(d.Seconds())
	}
}
