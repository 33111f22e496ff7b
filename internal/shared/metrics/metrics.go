package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	cacheHitTotal          atomic.Uint64
	cacheMissTotal         atomic.Uint64
	chunkDispatchedTotal   atomic.Uint64
	chunkFailedTotal       atomic.Uint64
	webhookDeliveredTotal  atomic.Uint64
	webhookFailedTotal     atomic.Uint64

	jobsReceivedTotal      atomic.Uint64
	jobsCompletedTotal     atomic.Uint64
	jobsFailedTotal        atomic.Uint64
	jobsUnrecoverableTotal atomic.Uint64

	analysisDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() { analysisStartedTotal.Add(1) }

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() { analysisCompletedTotal.Add(1) }

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() { analysisFailedTotal.Add(1) }

// IncCacheHit increments the cache hit counter.
func IncCacheHit() { cacheHitTotal.Add(1) }

// IncCacheMiss increments the cache miss counter.
func IncCacheMiss() { cacheMissTotal.Add(1) }

// IncChunkDispatched increments the dispatched-chunk counter.
func IncChunkDispatched() { chunkDispatchedTotal.Add(1) }

// IncChunkFailed increments the failed-chunk counter.
func IncChunkFailed() { chunkFailedTotal.Add(1) }

// IncWebhookDelivered increments the delivered-webhook counter.
func IncWebhookDelivered() { webhookDeliveredTotal.Add(1) }

// IncWebhookFailed increments the failed-webhook counter.
func IncWebhookFailed() { webhookFailedTotal.Add(1) }

// IncJobsReceived increments the queue-jobs-received counter.
func IncJobsReceived() { jobsReceivedTotal.Add(1) }

// IncJobsCompleted increments the queue-jobs-completed counter.
func IncJobsCompleted() { jobsCompletedTotal.Add(1) }

// IncJobsFailed increments the queue-jobs-failed counter.
func IncJobsFailed() { jobsFailedTotal.Add(1) }

// IncJobsDeletedUnrecoverable counts messages dropped as unprocessable.
func IncJobsDeletedUnrecoverable() { jobsUnrecoverableTotal.Add(1) }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
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
	writeCounter(&buf, "analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "analysis_cache_hit_total", "Total content cache hits", cacheHitTotal.Load())
	writeCounter(&buf, "analysis_cache_miss_total", "Total content cache misses", cacheMissTotal.Load())
	writeCounter(&buf, "chunk_dispatched_total", "Total chunk inference calls dispatched", chunkDispatchedTotal.Load())
	writeCounter(&buf, "chunk_failed_total", "Total chunk inference calls failed", chunkFailedTotal.Load())
	writeCounter(&buf, "webhook_delivered_total", "Total webhook deliveries accepted", webhookDeliveredTotal.Load())
	writeCounter(&buf, "webhook_failed_total", "Total webhook deliveries failed", webhookFailedTotal.Load())
	writeCounter(&buf, "queue_jobs_received_total", "Total queue messages received", jobsReceivedTotal.Load())
	writeCounter(&buf, "queue_jobs_completed_total", "Total queue messages completed", jobsCompletedTotal.Load())
	writeCounter(&buf, "queue_jobs_failed_total", "Total queue messages failed", jobsFailedTotal.Load())
	writeCounter(&buf, "queue_jobs_unrecoverable_total", "Total unprocessable queue messages dropped", jobsUnrecoverableTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
