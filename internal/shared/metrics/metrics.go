package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	importsTotal          atomic.Uint64
	importFailuresTotal   atomic.Uint64
	auditsTotal           atomic.Uint64
	auditFailuresTotal    atomic.Uint64
	enhancesTotal         atomic.Uint64
	enhanceFailuresTotal  atomic.Uint64

	aiRequestDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncImport increments the resume import counter.
func IncImport() { importsTotal.Add(1) }

// IncImportFailed increments the failed import counter.
func IncImportFailed() { importFailuresTotal.Add(1) }

// IncAudit increments the ATS audit counter.
func IncAudit() { auditsTotal.Add(1) }

// IncAuditFailed increments the failed audit counter.
func IncAuditFailed() { auditFailuresTotal.Add(1) }

// IncEnhance increments the text enhancement counter.
func IncEnhance() { enhancesTotal.Add(1) }

// IncEnhanceFailed increments the failed enhancement counter.
func IncEnhanceFailed() { enhanceFailuresTotal.Add(1) }

// ObserveAIRequestDurationMs records one gateway round trip in milliseconds.
func ObserveAIRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	aiRequestDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_imports_total", "Total resume imports attempted", importsTotal.Load())
	writeCounter(&buf, "resume_import_failures_total", "Total resume imports failed", importFailuresTotal.Load())
	writeCounter(&buf, "ats_audits_total", "Total ATS audits attempted", auditsTotal.Load())
	writeCounter(&buf, "ats_audit_failures_total", "Total ATS audits failed", auditFailuresTotal.Load())
	writeCounter(&buf, "ai_enhancements_total", "Total text enhancements attempted", enhancesTotal.Load())
	writeCounter(&buf, "ai_enhancement_failures_total", "Total text enhancements failed", enhanceFailuresTotal.Load())
	writeHistogram(&buf, "ai_request_duration_ms", "LLM gateway round trip in milliseconds", aiRequestDuration.Snapshot())
	return buf.String()
}

type histogram struct {
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

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
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

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
