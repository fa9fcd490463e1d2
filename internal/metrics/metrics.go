// Package metrics records import decision outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/pkg/quality"
)

// Outcome label values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds the decision collectors registered on one registry.
// A nil *Metrics records nothing.
type Metrics struct {
	decisions  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	scanErrors *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admit_decisions_total",
			Help: "Total number of import decisions by outcome",
		}, []string{"family", "outcome"}),

		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admit_rejections_total",
			Help: "Total number of rejections by reason",
		}, []string{"family", "reason"}),

		scanErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admit_scan_errors_total",
			Help: "Total number of files that could not be decided",
		}, []string{"family"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admit_decide_duration_seconds",
			Help:    "Time to evaluate every rule for one candidate",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"family"}),
	}
}

// RecordDecision counts one decision and each of its rejections.
func (m *Metrics) RecordDecision(family quality.Family, d decision.Decision, elapsed time.Duration) {
	if m == nil {
		return
	}
	f := string(family)
	outcome := OutcomeAccepted
	if !d.Accepted() {
		outcome = OutcomeRejected
	}
	m.decisions.WithLabelValues(f, outcome).Inc()
	for _, r := range d.Rejections {
		m.rejections.WithLabelValues(f, string(r.Reason)).Inc()
	}
	m.duration.WithLabelValues(f).Observe(elapsed.Seconds())
}

// RecordScanError counts a file that produced no decision.
func (m *Metrics) RecordScanError(family quality.Family) {
	if m == nil {
		return
	}
	m.scanErrors.WithLabelValues(string(family)).Inc()
}
