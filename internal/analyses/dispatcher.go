package analyses

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"proposal-analyzer/internal/llm"
	"proposal-analyzer/internal/shared/metrics"
	"proposal-analyzer/internal/shared/telemetry"
)

// DefaultConcurrentCalls bounds in-flight inference calls per request.
const DefaultConcurrentCalls = 3

// Dispatcher issues one inference call per chunk under a rolling-window
// rate limit. Failures are isolated per chunk; a chunk whose call fails is
// dropped and logged, never aborting its siblings.
type Dispatcher struct {
	LLM         llm.Client
	Limiter     *rate.Limiter
	Concurrency int
}

// NewDispatcher builds a dispatcher allowing at most callsPerSecond calls
// within any rolling one-second window.
func NewDispatcher(client llm.Client, callsPerSecond int) *Dispatcher {
	if callsPerSecond <= 0 {
		callsPerSecond = DefaultConcurrentCalls
	}
	return &Dispatcher{
		LLM:         client,
		Limiter:     rate.NewLimiter(rate.Limit(callsPerSecond), callsPerSecond),
		Concurrency: callsPerSecond,
	}
}

// Dispatch analyzes every chunk and returns the surviving results ordered
// by chunk index. Returns ErrAggregateFailure when no chunk produced a
// usable result.
func (d *Dispatcher) Dispatch(ctx context.Context, chunks []Chunk) ([]ChunkResult, error) {
	if len(chunks) == 0 {
		return nil, ErrAggregateFailure
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrentCalls
	}
	sem := make(chan struct{}, concurrency)
	slots := make([]*ChunkResult, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(slot int, c Chunk) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if d.Limiter != nil {
				if err := d.Limiter.Wait(ctx); err != nil {
					metrics.IncChunkFailed()
					telemetry.Warn("chunk.dispatch_failed", map[string]any{
						"chunk_index": c.Index,
						"error":       err.Error(),
					})
					return
				}
			}

			metrics.IncChunkDispatched()
			started := time.Now()
			raw, err := d.LLM.Analyze(ctx, llm.AnalysisPrompt(c.Text))
			if err != nil {
				metrics.IncChunkFailed()
				telemetry.Warn("chunk.inference_failed", map[string]any{
					"chunk_index": c.Index,
					"error_code":  ErrorCodeInference,
					"error":       err.Error(),
				})
				return
			}

			result := parseChunkResult(raw, c.Index)
			result.ProcessingTimeSeconds = time.Since(started).Seconds()
			slots[slot] = &result
		}(i, chunk)
	}
	wg.Wait()

	results := make([]ChunkResult, 0, len(chunks))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	if len(results) == 0 {
		return nil, ErrAggregateFailure
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, nil
}
