package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderIncludesCountersAndHistograms(t *testing.T) {
	IncAnalysisStarted()
	IncInsightsFallback()
	SetRolesIndexed(6)
	ObserveAnalysisDurationMs(12)
	ObserveMatchPercentage(62.5)

	out := Render()
	assert.Contains(t, out, "# TYPE analysis_started_total counter")
	assert.Contains(t, out, "# TYPE roles_indexed gauge")
	assert.Contains(t, out, "roles_indexed 6")
	assert.Contains(t, out, `analysis_duration_ms_bucket{le="25"}`)
	assert.Contains(t, out, `skill_match_percentage_bucket{le="+Inf"}`)
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram("test_ms", "test", []float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(10)
	h.Observe(50)

	snap := h.Snapshot()
	assert.Equal(t, []uint64{1, 2}, snap.counts)
	assert.Equal(t, uint64(4), snap.count)
	assert.Equal(t, 65.5, snap.sum)
}

func TestRateLimitedIsLabeledByGroup(t *testing.T) {
	IncRateLimited("CHAT")
	IncRateLimited("ANALYZE")
	IncRateLimited("ANALYZE")
	IncInsightsCacheHit()

	out := Render()
	assert.Contains(t, out, "# TYPE http_rate_limited_total counter")
	assert.Contains(t, out, `http_rate_limited_total{group="ANALYZE"} 2`)
	assert.Contains(t, out, `http_rate_limited_total{group="CHAT"} 1`)
	assert.Contains(t, out, "insights_cache_hits_total 1")
}
