package analyses

import (
	"encoding/json"
	"math"
	"strings"

	"proposal-analyzer/internal/shared/util"
)

const (
	maxMergedListItems = 5
	maxMergedSummaries = 3

	mergedSummaryPreamble = "Multi-section analysis completed. Key findings: "
)

// Merge combines chunk results into one MergedResult. A single result
// passes through unchanged. Otherwise strengths and considerations are
// unioned with exact-match deduplication in first-seen order and capped at
// five each, up to three chunk summaries are joined into one narrative
// behind a fixed multi-section preamble,
// the complexity score is the rounded mean and processing time the sum.
// ContentHash is computed over the serialized merge input for audit
// traceability; it is not the cache fingerprint. Deterministic for a fixed
// input ordering.
func Merge(results []ChunkResult) (MergedResult, error) {
	if len(results) == 0 {
		return MergedResult{}, ErrNoValidResults
	}

	hash := mergeInputHash(results)

	if len(results) == 1 {
		r := results[0]
		return MergedResult{
			Summary:               r.Summary,
			Strengths:             r.Strengths,
			Considerations:        r.Considerations,
			ComplexityScore:       r.ComplexityScore,
			ProcessingTimeSeconds: r.ProcessingTimeSeconds,
			ContentHash:           hash,
			ChunkCount:            1,
		}, nil
	}

	var summaries []string
	var strengths []string
	var considerations []string
	var complexityTotal int
	var processingTotal float64

	for _, r := range results {
		if s := strings.TrimSpace(r.Summary); s != "" {
			summaries = append(summaries, s)
		}
		strengths = append(strengths, r.Strengths...)
		considerations = append(considerations, r.Considerations...)
		complexityTotal += r.ComplexityScore
		processingTotal += r.ProcessingTimeSeconds
	}

	if len(summaries) > maxMergedSummaries {
		summaries = summaries[:maxMergedSummaries]
	}
	mean := float64(complexityTotal) / float64(len(results))

	return MergedResult{
		Summary:               mergedSummaryPreamble + strings.Join(summaries, " "),
		Strengths:             dedupCap(strengths, maxMergedListItems),
		Considerations:        dedupCap(considerations, maxMergedListItems),
		ComplexityScore:       int(math.Round(mean)),
		ProcessingTimeSeconds: processingTotal,
		ContentHash:           hash,
		ChunkCount:            len(results),
	}, nil
}

// dedupCap removes exact duplicates preserving first-seen order, then
// truncates to limit entries.
func dedupCap(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

func mergeInputHash(results []ChunkResult) string {
	data, err := json.Marshal(results)
	if err != nil {
		return util.ShortHash(nil)
	}
	return util.ShortHash(data)
}
