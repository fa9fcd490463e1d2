package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/pkg/quality"
)

func TestRecordDecision(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordDecision(quality.FamilyMovie, decision.Decision{Path: "a.mkv"}, 2*time.Millisecond)
	m.RecordDecision(quality.FamilyMovie, decision.Decision{
		Path: "b.mkv",
		Rejections: []decision.Rejection{
			{Reason: decision.ReasonUnableToParse},
			{Reason: decision.ReasonNoVideoTrack},
		},
	}, time.Millisecond)
	m.RecordDecision(quality.FamilyMusic, decision.Decision{
		Path:       "01.mp3",
		Rejections: []decision.Rejection{{Reason: decision.ReasonNotAnUpgrade}},
	}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("movie", OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("movie", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("music", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("movie", "UnableToParse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("music", "NotAnUpgrade")))

	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestRecordScanError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordScanError(quality.FamilyMusic)
	m.RecordScanError(quality.FamilyMusic)

	expected := `
# HELP admit_scan_errors_total Total number of files that could not be decided
# TYPE admit_scan_errors_total counter
admit_scan_errors_total{family="music"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "admit_scan_errors_total"))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDecision(quality.FamilyMovie, decision.Decision{}, time.Second)
		m.RecordScanError(quality.FamilyMovie)
	})
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "duplicate registration on one registry")
}
