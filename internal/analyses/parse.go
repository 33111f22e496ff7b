package analyses

import (
	"encoding/json"
	"math"
	"strings"

	"proposal-analyzer/internal/shared/telemetry"
)

// Neutral defaults substituted when the model response cannot be parsed.
// Parse failures never surface to the caller; the chunk still contributes
// a usable result.
const (
	neutralSummary    = "Analysis completed but the response could not be parsed"
	neutralComplexity = 5
)

// parseChunkResult extracts the structured analysis from a raw model
// response. Models wrap JSON in prose often enough that we scan for the
// outermost brace pair instead of unmarshaling the response whole.
func parseChunkResult(raw string, index int) ChunkResult {
	result := ChunkResult{
		Index:           index,
		Summary:         neutralSummary,
		ComplexityScore: neutralComplexity,
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		telemetry.Warn("chunk.parse_fallback", map[string]any{
			"chunk_index": index,
			"error_code":  ErrorCodeParse,
			"reason":      "no json object in response",
		})
		return result
	}

	var parsed struct {
		Summary         string   `json:"summary"`
		Strengths       []string `json:"potential_strengths"`
		Considerations  []string `json:"areas_for_consideration"`
		ComplexityScore float64  `json:"complexity_score"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		telemetry.Warn("chunk.parse_fallback", map[string]any{
			"chunk_index": index,
			"error_code":  ErrorCodeParse,
			"reason":      err.Error(),
		})
		return result
	}

	if s := strings.TrimSpace(parsed.Summary); s != "" {
		result.Summary = s
	}
	result.Strengths = compactStrings(parsed.Strengths)
	result.Considerations = compactStrings(parsed.Considerations)
	if parsed.ComplexityScore >= 1 {
		result.ComplexityScore = clampComplexity(int(math.Round(parsed.ComplexityScore)))
	}
	return result
}

func clampComplexity(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func compactStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
