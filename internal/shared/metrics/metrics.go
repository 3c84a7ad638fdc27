package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// series is anything Render can print in Prometheus text format.
type series interface {
	write(buf *bytes.Buffer)
}

type counter struct {
	name, help string
	v          atomic.Uint64
}

func (c *counter) write(buf *bytes.Buffer) {
	header(buf, c.name, c.help, "counter")
	fmt.Fprintf(buf, "%s %d\n", c.name, c.v.Load())
}

type gauge struct {
	name, help string
	v          atomic.Int64
}

func (g *gauge) write(buf *bytes.Buffer) {
	header(buf, g.name, g.help, "gauge")
	fmt.Fprintf(buf, "%s %d\n", g.name, g.v.Load())
}

// labeledCounter is a counter keyed by a single label value.
type labeledCounter struct {
	name, help, label string

	mu     sync.Mutex
	values map[string]uint64
}

func (c *labeledCounter) inc(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]uint64)
	}
	c.values[value]++
}

func (c *labeledCounter) write(buf *bytes.Buffer) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]uint64, len(keys))
	for i, k := range keys {
		counts[i] = c.values[k]
	}
	c.mu.Unlock()

	header(buf, c.name, c.help, "counter")
	for i, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", c.name, c.label, k, counts[i])
	}
}

var (
	analysisStarted   = &counter{name: "analysis_started_total", help: "Total analyses started"}
	analysisCompleted = &counter{name: "analysis_completed_total", help: "Total analyses completed"}
	analysisFailed    = &counter{name: "analysis_failed_total", help: "Total analyses failed"}
	documentsParsed   = &counter{name: "documents_parsed_total", help: "Total documents parsed"}
	extractionFailed  = &counter{name: "extraction_failed_total", help: "Total text extraction failures"}
	insightsFallback  = &counter{name: "insights_fallback_total", help: "Total reports using offline insights"}
	insightsCacheHits = &counter{name: "insights_cache_hits_total", help: "Total insight payloads served from cache"}
	rolesIndexed      = &gauge{name: "roles_indexed", help: "Roles held by the retriever"}
	rateLimited       = &labeledCounter{name: "http_rate_limited_total", help: "Requests rejected by the rate limiter", label: "group"}

	analysisDuration = newHistogram("analysis_duration_ms", "Analysis duration in milliseconds",
		[]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 20000})
	matchPercentage = newHistogram("skill_match_percentage", "Skill match percentage per report",
		[]float64{10, 25, 50, 75, 90, 100})

	registry = []series{
		analysisStarted, analysisCompleted, analysisFailed,
		documentsParsed, extractionFailed,
		insightsFallback, insightsCacheHits,
		rolesIndexed, rateLimited,
		analysisDuration, matchPercentage,
	}
)

func IncAnalysisStarted()   { analysisStarted.v.Add(1) }
func IncAnalysisCompleted() { analysisCompleted.v.Add(1) }
func IncAnalysisFailed()    { analysisFailed.v.Add(1) }

// IncDocumentsParsed counts documents that went through the parser.
func IncDocumentsParsed() { documentsParsed.v.Add(1) }

// IncExtractionFailed counts uploads whose text could not be extracted.
func IncExtractionFailed() { extractionFailed.v.Add(1) }

// IncInsightsFallback counts reports served with the offline insight payload.
func IncInsightsFallback() { insightsFallback.v.Add(1) }

func IncInsightsCacheHit() { insightsCacheHits.v.Add(1) }

// IncRateLimited counts a rejected request for a limiter group.
func IncRateLimited(group string) { rateLimited.inc(group) }

// SetRolesIndexed records the number of roles held by the retriever.
func SetRolesIndexed(n int) { rolesIndexed.v.Store(int64(n)) }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveMatchPercentage records the skill-gap match percentage of a report.
func ObserveMatchPercentage(value float64) {
	matchPercentage.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render prints every registered series.
func Render() string {
	var buf bytes.Buffer
	for _, s := range registry {
		s.write(&buf)
	}
	return buf.String()
}

type histogram struct {
	name, help string

	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(name, help string, buckets []float64) *histogram {
	return &histogram{
		name:    name,
		help:    help,
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose upper bound holds it.
// Values above the last bound only reach +Inf.
func (h *histogram) Observe(value float64) {
	i := sort.SearchFloat64s(h.buckets, value)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	if i < len(h.buckets) {
		h.counts[i]++
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func (h *histogram) write(buf *bytes.Buffer) {
	snap := h.Snapshot()
	header(buf, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", h.name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", h.name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", h.name, snap.count)
}

func header(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
