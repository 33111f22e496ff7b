package analyses

import (
	"reflect"
	"testing"
)

func TestParseChunkResultWellFormed(t *testing.T) {
	raw := `{"summary":"Solid plan","potential_strengths":["clear market"],"areas_for_consideration":["thin runway"],"complexity_score":7}`

	got := parseChunkResult(raw, 2)

	if got.Index != 2 {
		t.Fatalf("index = %d", got.Index)
	}
	if got.Summary != "Solid plan" {
		t.Fatalf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Strengths, []string{"clear market"}) {
		t.Fatalf("strengths = %v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Considerations, []string{"thin runway"}) {
		t.Fatalf("considerations = %v", got.Considerations)
	}
	if got.ComplexityScore != 7 {
		t.Fatalf("complexity = %d", got.ComplexityScore)
	}
}

func TestParseChunkResultJSONWrappedInProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" +
		`{"summary":"Good","potential_strengths":[],"areas_for_consideration":[],"complexity_score":3}` +
		"\n```\nLet me know if you need more."

	got := parseChunkResult(raw, 0)

	if got.Summary != "Good" {
		t.Fatalf("summary = %q", got.Summary)
	}
	if got.ComplexityScore != 3 {
		t.Fatalf("complexity = %d", got.ComplexityScore)
	}
}

func TestParseChunkResultFallsBackToNeutralDefault(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json at all", "I could not process this document."},
		{"malformed json", `{"summary": "broken`},
		{"empty response", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseChunkResult(tc.raw, 4)
			if got.Summary != neutralSummary {
				t.Fatalf("summary = %q", got.Summary)
			}
			if got.ComplexityScore != neutralComplexity {
				t.Fatalf("complexity = %d", got.ComplexityScore)
			}
			if got.Index != 4 {
				t.Fatalf("index = %d", got.Index)
			}
			if len(got.Strengths) != 0 || len(got.Considerations) != 0 {
				t.Fatalf("fallback lists should be empty: %v %v", got.Strengths, got.Considerations)
			}
		})
	}
}

func TestParseChunkResultClampsComplexity(t *testing.T) {
	got := parseChunkResult(`{"summary":"x","complexity_score":42}`, 0)
	if got.ComplexityScore != 10 {
		t.Fatalf("complexity = %d, want 10", got.ComplexityScore)
	}

	got = parseChunkResult(`{"summary":"x","complexity_score":0.4}`, 0)
	if got.ComplexityScore != neutralComplexity {
		t.Fatalf("complexity = %d, want neutral default", got.ComplexityScore)
	}
}

func TestParseChunkResultDropsBlankListEntries(t *testing.T) {
	raw := `{"summary":"x","potential_strengths":["  ","real one",""],"complexity_score":5}`

	got := parseChunkResult(raw, 0)

	if !reflect.DeepEqual(got.Strengths, []string{"real one"}) {
		t.Fatalf("strengths = %v", got.Strengths)
	}
}
