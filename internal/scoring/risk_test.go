package scoring

import (
	"math"
	"testing"
)

func TestOverallRiskScoreEmptyIsNeutral(t *testing.T) {
	if got := OverallRiskScore(nil); got != 0.5 {
		t.Fatalf("expected neutral 0.5 for no factors, got %v", got)
	}
}

func TestOverallRiskScoreAggregation(t *testing.T) {
	factors := []RiskFactor{
		{Category: "Market Risk", Severity: RiskHigh, Likelihood: 0.8, ImpactScore: 0.5},
		{Category: "Team Risk", Severity: RiskLow, Likelihood: 0.2, ImpactScore: 0.3},
	}
	first := (0.7 + 0.8*0.5) / 2.0
	second := (0.3 + 0.2*0.3) / 2.0
	want := (first + second) / 2.0
	if got := OverallRiskScore(factors); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOverallRiskScoreDeterministic(t *testing.T) {
	factors := []RiskFactor{
		{Category: "Regulatory Risk", Severity: RiskVeryHigh, Likelihood: 1.0, ImpactScore: 1.0},
	}
	a := OverallRiskScore(factors)
	b := OverallRiskScore(factors)
	if a != b {
		t.Fatalf("expected deterministic score, got %v vs %v", a, b)
	}
	if a < 0 || a > 1 {
		t.Fatalf("expected score within [0,1], got %v", a)
	}
}

func TestRiskCategoryTiers(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskSeverity
	}{
		{0.0, RiskVeryLow},
		{0.19, RiskVeryLow},
		{0.2, RiskLow},
		{0.45, RiskModerate},
		{0.6, RiskHigh},
		{0.8, RiskVeryHigh},
		{1.0, RiskVeryHigh},
	}
	for _, tc := range cases {
		if got := RiskCategory(tc.score); got != tc.want {
			t.Fatalf("score %v: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	if _, err := ParseRiskSeverity("catastrophic"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
	if _, err := ParseComplianceStatus("partial"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, err := ParseComplianceRisk("severe"); err == nil {
		t.Fatalf("expected error for unknown risk level")
	}
	if _, err := ParseMarketTiming("late"); err == nil {
		t.Fatalf("expected error for unknown timing")
	}
	if _, err := ParseDocumentType("memo"); err == nil {
		t.Fatalf("expected error for unknown document type")
	}
	if got, err := ParseDocumentType("business_plan"); err != nil || got != DocBusinessPlan {
		t.Fatalf("expected business_plan to parse, got %v err %v", got, err)
	}
}

func TestClassifyDocument(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		content  string
		want     DocumentType
	}{
		{"filename_wins", "financial_forecast_2026.pdf", "", DocFinancialProjections},
		{"team_filename", "founder_bios.docx", "", DocTeamBios},
		{"content_fallback", "upload.pdf", "Our market analysis shows strong demand.", DocMarketAnalysis},
		{"no_match", "upload.pdf", "hello world", DocOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDocument(tc.fileName, tc.content); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
