package analyses

import (
	"proposal-analyzer/internal/scoring"
)

// Statuses reported in the delivered payload.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// State names one stage of a request's lifecycle. Every request walks
// Queued through Done, or drops into Failed from any stage.
type State string

const (
	StateQueued      State = "queued"
	StateExtracting  State = "extracting"
	StateCacheLookup State = "cache_lookup"
	StateChunking    State = "chunking"
	StateDispatching State = "dispatching"
	StateMerging     State = "merging"
	StateScoring     State = "scoring"
	StateCacheStore  State = "cache_store"
	StateNotifying   State = "notifying"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Request is one analysis submission. Immutable once accepted.
type Request struct {
	ProposalID   string
	Content      string
	DocumentType scoring.DocumentType
	WebhookURL   string

	// StagedKey names a temporarily staged upload to release when the
	// request finishes, on both success and failure.
	StagedKey string
}

// Chunk is a bounded fragment of an oversized document. Chunks exist only
// between the chunking and dispatching stages.
type Chunk struct {
	Index int
	Text  string
}

// ChunkResult is one chunk's parsed analysis. Index ties it back to the
// originating chunk regardless of completion order.
type ChunkResult struct {
	Index                 int      `json:"chunk_index"`
	Summary               string   `json:"summary"`
	Strengths             []string `json:"potential_strengths"`
	Considerations        []string `json:"areas_for_consideration"`
	ComplexityScore       int      `json:"complexity_score"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

// MergedResult is the aggregate of all surviving chunk results for one
// document. This is the unit that gets cached and scored.
type MergedResult struct {
	Summary               string   `json:"summary"`
	Strengths             []string `json:"potential_strengths"`
	Considerations        []string `json:"areas_for_consideration"`
	ComplexityScore       int      `json:"complexity_score"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	ContentHash           string   `json:"content_hash"`
	ChunkCount            int      `json:"chunk_count"`
}

// Payload is the outward-facing result record. Field names are the wire
// contract; the HMAC signature is computed over its exact serialized bytes.
type Payload struct {
	ProposalID            string   `json:"proposal_id"`
	Status                string   `json:"status"`
	Summary               string   `json:"summary"`
	Strengths             []string `json:"potential_strengths"`
	Considerations        []string `json:"areas_for_consideration"`
	ComplexityScore       int      `json:"complexity_score"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	DocumentHash          string   `json:"document_hash"`
	Timestamp             string   `json:"timestamp"`

	// Batch requests carry a composite assessment alongside the merged
	// narrative. Absent on single-document payloads.
	DocumentCount int                 `json:"document_count,omitempty"`
	Assessment    *scoring.Assessment `json:"assessment,omitempty"`
}

// BatchDocument is one member of a multi-document request.
type BatchDocument struct {
	FileName     string
	Content      string
	DocumentType scoring.DocumentType
}
