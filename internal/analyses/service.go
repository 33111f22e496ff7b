package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"proposal-analyzer/internal/cache"
	"proposal-analyzer/internal/scoring"
	"proposal-analyzer/internal/shared/metrics"
	"proposal-analyzer/internal/shared/telemetry"
	"proposal-analyzer/internal/shared/util"
)

// Notifier delivers one signed payload to a caller-specified endpoint.
type Notifier interface {
	Notify(ctx context.Context, url string, payload any) bool
}

// Stager releases temporarily staged request content.
type Stager interface {
	Delete(ctx context.Context, storageKey string) error
}

// Service runs the per-request analysis state machine. One instance serves
// all requests, but each Run owns its request's entities end to end; the
// only shared mutable resource is the content cache. Cache writes and
// webhook delivery are independent side effects: a cache failure never
// blocks notification, and vice versa.
type Service struct {
	Dispatcher *Dispatcher
	Cache      *cache.ContentCache
	Notifier   Notifier
	Engine     *scoring.Engine
	Stager     Stager

	MaxContentLength int

	now func() time.Time
}

// NewService wires the orchestrator from its collaborators.
func NewService(dispatcher *Dispatcher, contentCache *cache.ContentCache, notifier Notifier, engine *scoring.Engine, maxContentLength int) *Service {
	return &Service{
		Dispatcher:       dispatcher,
		Cache:            contentCache,
		Notifier:         notifier,
		Engine:           engine,
		MaxContentLength: maxContentLength,
		now:              time.Now,
	}
}

// AnalyzeDocument accepts a single-document request. The request eventually
// triggers exactly one webhook delivery, success or failure.
func (s *Service) AnalyzeDocument(ctx context.Context, req Request) {
	go s.Run(backgroundWithRequestID(ctx), req)
}

// AnalyzeBatch accepts a multi-document request under the same delivery
// contract.
func (s *Service) AnalyzeBatch(ctx context.Context, req BatchRequest) {
	go s.RunBatch(backgroundWithRequestID(ctx), req)
}

// BatchRequest is one multi-document submission.
type BatchRequest struct {
	ProposalID string
	Documents  []BatchDocument
	WebhookURL string
	StagedKeys []string
}

// Run executes the full state machine for one request. It never returns an
// error: every outcome, including total failure, exits through the
// notifying stage.
func (s *Service) Run(ctx context.Context, req Request) {
	started := s.nowFunc()
	defer s.releaseStaged(ctx, req.StagedKey)
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, req, started, ErrorCodeInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()

	metrics.IncAnalysisStarted()
	s.transition(ctx, req.ProposalID, StateQueued, StateExtracting)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		s.fail(ctx, req, started, ErrorCodeExtraction, "document content is empty or unreadable")
		return
	}
	fingerprint := util.Fingerprint(content)

	s.transition(ctx, req.ProposalID, StateExtracting, StateCacheLookup)
	var merged MergedResult
	if s.Cache.Get(ctx, fingerprint, &merged) {
		metrics.IncCacheHit()
		// Hit short-circuits to delivery: the substantive analysis is
		// returned verbatim, only proposal id and timestamp are fresh.
		s.transition(ctx, req.ProposalID, StateCacheLookup, StateNotifying)
		s.deliver(ctx, req.ProposalID, req.WebhookURL, s.buildPayload(req.ProposalID, merged), started)
		return
	}
	metrics.IncCacheMiss()

	s.transition(ctx, req.ProposalID, StateCacheLookup, StateChunking)
	chunks := ChunkContent(content, s.maxContentLength())

	s.transition(ctx, req.ProposalID, StateChunking, StateDispatching)
	results, err := s.Dispatcher.Dispatch(ctx, chunks)
	if err != nil {
		s.fail(ctx, req, started, ErrorCodeAggregate, "analysis failed: no usable results from any document section")
		return
	}

	s.transition(ctx, req.ProposalID, StateDispatching, StateMerging)
	merged, err = Merge(results)
	if err != nil {
		s.fail(ctx, req, started, ErrorCodeAggregate, "analysis failed: could not merge section results")
		return
	}

	s.transition(ctx, req.ProposalID, StateMerging, StateScoring)
	s.scoreDocument(ctx, req, content, merged)

	s.transition(ctx, req.ProposalID, StateScoring, StateCacheStore)
	if s.Cache.Enabled() && !s.Cache.Set(ctx, fingerprint, merged) {
		telemetry.Warn("analysis.cache_store_failed", map[string]any{
			"proposal_id": req.ProposalID,
			"error_code":  ErrorCodeCache,
		})
	}

	s.transition(ctx, req.ProposalID, StateCacheStore, StateNotifying)
	s.deliver(ctx, req.ProposalID, req.WebhookURL, s.buildPayload(req.ProposalID, merged), started)
}

// RunBatch analyzes each document independently, folds the per-document
// results into one narrative, and attaches a composite assessment built
// from the document signals.
func (s *Service) RunBatch(ctx context.Context, req BatchRequest) {
	started := s.nowFunc()
	defer s.releaseStaged(ctx, req.StagedKeys...)
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, Request{ProposalID: req.ProposalID, WebhookURL: req.WebhookURL}, started, ErrorCodeInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()

	metrics.IncAnalysisStarted()
	single := Request{ProposalID: req.ProposalID, WebhookURL: req.WebhookURL}

	var contents []string
	for _, doc := range req.Documents {
		if c := strings.TrimSpace(doc.Content); c != "" {
			contents = append(contents, c)
		}
	}
	if len(contents) == 0 {
		s.fail(ctx, single, started, ErrorCodeExtraction, "batch contains no readable documents")
		return
	}
	fingerprint := util.Fingerprint(strings.Join(contents, "\n\n"))

	signals := s.documentSignals(req.Documents)

	s.transition(ctx, req.ProposalID, StateExtracting, StateCacheLookup)
	var merged MergedResult
	if s.Cache.Get(ctx, fingerprint, &merged) {
		metrics.IncCacheHit()
		payload := s.buildPayload(req.ProposalID, merged)
		s.attachAssessment(&payload, signals, len(req.Documents))
		s.transition(ctx, req.ProposalID, StateCacheLookup, StateNotifying)
		s.deliver(ctx, req.ProposalID, req.WebhookURL, payload, started)
		return
	}
	metrics.IncCacheMiss()

	s.transition(ctx, req.ProposalID, StateCacheLookup, StateDispatching)
	var docResults []ChunkResult
	for i, doc := range req.Documents {
		content := strings.TrimSpace(doc.Content)
		if content == "" {
			continue
		}
		chunks := ChunkContent(content, s.maxContentLength())
		results, err := s.Dispatcher.Dispatch(ctx, chunks)
		if err != nil {
			telemetry.Warn("batch.document_failed", map[string]any{
				"proposal_id": req.ProposalID,
				"file_name":   doc.FileName,
				"error":       err.Error(),
			})
			continue
		}
		docMerged, err := Merge(results)
		if err != nil {
			continue
		}
		docResults = append(docResults, ChunkResult{
			Index:                 i,
			Summary:               docMerged.Summary,
			Strengths:             docMerged.Strengths,
			Considerations:        docMerged.Considerations,
			ComplexityScore:       docMerged.ComplexityScore,
			ProcessingTimeSeconds: docMerged.ProcessingTimeSeconds,
		})
	}
	if len(docResults) == 0 {
		s.fail(ctx, single, started, ErrorCodeAggregate, "analysis failed: no usable results from any document")
		return
	}

	s.transition(ctx, req.ProposalID, StateDispatching, StateMerging)
	merged, err := Merge(docResults)
	if err != nil {
		s.fail(ctx, single, started, ErrorCodeAggregate, "analysis failed: could not merge document results")
		return
	}

	s.transition(ctx, req.ProposalID, StateMerging, StateScoring)
	payload := s.buildPayload(req.ProposalID, merged)
	s.attachAssessment(&payload, signals, len(req.Documents))

	s.transition(ctx, req.ProposalID, StateScoring, StateCacheStore)
	if s.Cache.Enabled() && !s.Cache.Set(ctx, fingerprint, merged) {
		telemetry.Warn("analysis.cache_store_failed", map[string]any{
			"proposal_id": req.ProposalID,
			"error_code":  ErrorCodeCache,
		})
	}

	s.transition(ctx, req.ProposalID, StateCacheStore, StateNotifying)
	s.deliver(ctx, req.ProposalID, req.WebhookURL, payload, started)
}

func (s *Service) documentSignals(docs []BatchDocument) []scoring.DocumentSignal {
	var signals []scoring.DocumentSignal
	for _, doc := range docs {
		docType := doc.DocumentType
		confidence := 1.0
		if docType == "" {
			docType = scoring.ClassifyDocument(doc.FileName, doc.Content)
			confidence = 0.8
		}
		signals = append(signals, scoring.DocumentSignal{Type: docType, Confidence: confidence})
	}
	return signals
}

func (s *Service) attachAssessment(payload *Payload, signals []scoring.DocumentSignal, documentCount int) {
	payload.DocumentCount = documentCount
	if s.Engine == nil {
		return
	}
	assessment := s.Engine.Assess(scoring.AssessmentInputs{Documents: signals})
	payload.Assessment = &assessment
}

// scoreDocument computes the composite assessment for observability. The
// single-document payload keeps the fixed wire shape, so the scores are
// logged rather than delivered.
func (s *Service) scoreDocument(ctx context.Context, req Request, content string, merged MergedResult) {
	if s.Engine == nil {
		return
	}
	docType := req.DocumentType
	if docType == "" {
		docType = scoring.ClassifyDocument("", content)
	}
	assessment := s.Engine.Assess(scoring.AssessmentInputs{
		Documents: []scoring.DocumentSignal{{Type: docType, Confidence: 1.0}},
	})
	telemetry.Info("analysis.scored", map[string]any{
		"request_id":     requestIDFromContext(ctx),
		"proposal_id":    req.ProposalID,
		"document_type":  string(docType),
		"overall_score":  assessment.OverallScore,
		"recommendation": assessment.Recommendation,
		"complexity":     merged.ComplexityScore,
	})
}

func (s *Service) fail(ctx context.Context, req Request, started time.Time, code, diagnostic string) {
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.failed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"proposal_id": req.ProposalID,
		"error_code":  code,
		"diagnostic":  diagnostic,
	})
	s.transition(ctx, req.ProposalID, StateFailed, StateNotifying)
	payload := Payload{
		ProposalID:     req.ProposalID,
		Status:         StatusFailed,
		Summary:        diagnostic,
		Strengths:      []string{},
		Considerations: []string{},
		Timestamp:      s.nowFunc().UTC().Format(time.RFC3339),
	}
	s.deliver(ctx, req.ProposalID, req.WebhookURL, payload, started)
}

func (s *Service) deliver(ctx context.Context, proposalID, webhookURL string, payload Payload, started time.Time) {
	delivered := false
	if s.Notifier != nil {
		delivered = s.Notifier.Notify(ctx, webhookURL, payload)
	}
	if !delivered {
		telemetry.Warn("analysis.delivery_failed", map[string]any{
			"proposal_id": proposalID,
			"error_code":  ErrorCodeDelivery,
		})
	}
	completed := s.nowFunc()
	durationMs := float64(completed.Sub(started).Microseconds()) / 1000.0
	if payload.Status == StatusCompleted {
		metrics.IncAnalysisCompleted()
	}
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.finished", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"proposal_id": proposalID,
		"status":      payload.Status,
		"delivered":   delivered,
		"duration_ms": durationMs,
	})
}

func (s *Service) buildPayload(proposalID string, merged MergedResult) Payload {
	return Payload{
		ProposalID:            proposalID,
		Status:                StatusCompleted,
		Summary:               merged.Summary,
		Strengths:             emptyIfNil(merged.Strengths),
		Considerations:        emptyIfNil(merged.Considerations),
		ComplexityScore:       merged.ComplexityScore,
		ProcessingTimeSeconds: merged.ProcessingTimeSeconds,
		DocumentHash:          merged.ContentHash,
		Timestamp:             s.nowFunc().UTC().Format(time.RFC3339),
	}
}

// releaseStaged drops temporarily staged inputs on both success and failure
// exits. Cleanup problems are logged, never escalated.
func (s *Service) releaseStaged(ctx context.Context, keys ...string) {
	if s.Stager == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Stager.Delete(ctx, key); err != nil {
			telemetry.Warn("staged_content.cleanup_failed", map[string]any{
				"storage_key": key,
				"error":       err.Error(),
			})
		}
	}
}

func (s *Service) transition(ctx context.Context, proposalID string, from, to State) {
	telemetry.Info("analysis.state", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"proposal_id": proposalID,
		"transition":  string(from) + "->" + string(to),
	})
}

func (s *Service) maxContentLength() int {
	if s.MaxContentLength > 0 {
		return s.MaxContentLength
	}
	return 8000
}

func (s *Service) nowFunc() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
