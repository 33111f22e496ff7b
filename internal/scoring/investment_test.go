package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestInvestmentWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range InvestmentWeights() {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected weights to sum to 1.0, got %v", sum)
	}
	if _, err := NewEngine(); err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
}

func TestComponentScoresDefaults(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// No team or financial documents present: both components default to 0.5.
	components := engine.ComponentScores(InvestmentInputs{
		Documents:        []DocumentSignal{{Type: DocBusinessPlan, Confidence: 0.9}},
		OverallRiskScore: 0.3,
		MarketScore:      0.7,
	})

	if got := components[ComponentTeamQuality]; got != 0.5 {
		t.Fatalf("expected team_quality default 0.5, got %v", got)
	}
	if got := components[ComponentFinancialProjections]; got != 0.5 {
		t.Fatalf("expected financial_projections default 0.5, got %v", got)
	}
	if got := components[ComponentRiskProfile]; math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected risk_profile 1-0.3=0.7, got %v", got)
	}
	if got := components[ComponentMarketOpportunity]; got != 0.7 {
		t.Fatalf("expected market_opportunity 0.7, got %v", got)
	}
}

func TestOverallScoreMeanConfidence(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	in := InvestmentInputs{
		Documents: []DocumentSignal{
			{Type: DocTeamBios, Confidence: 0.8},
			{Type: DocTeamBios, Confidence: 0.6},
			{Type: DocFinancialProjections, Confidence: 1.0},
		},
		OverallRiskScore: 0.5,
		MarketScore:      0.5,
	}
	components := engine.ComponentScores(in)
	if got := components[ComponentTeamQuality]; math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("expected team_quality mean 0.7, got %v", got)
	}

	want := 0.5*0.25 + 0.7*0.20 + 1.0*0.20 + 0.5*0.15 + 0.6*0.10 + 0.6*0.10
	if got := engine.OverallScore(in); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected overall %v, got %v", want, got)
	}
}

func TestRecommendationTiers(t *testing.T) {
	cases := []struct {
		score  float64
		prefix string
	}{
		{0.82, "Strong Buy"},
		{0.80, "Strong Buy"},
		{0.79, "Buy"},
		{0.65, "Buy"},
		{0.50, "Hold"},
		{0.49, "Weak Hold"},
		{0.35, "Weak Hold"},
		{0.34999, "Avoid"},
		{0.0, "Avoid"},
	}
	for _, tc := range cases {
		got := Recommendation(tc.score)
		if !strings.HasPrefix(got, tc.prefix) {
			t.Fatalf("score %v: expected prefix %q, got %q", tc.score, tc.prefix, got)
		}
		if tc.prefix == "Hold" && strings.HasPrefix(got, "Weak Hold") {
			t.Fatalf("score %v: expected Hold, got %q", tc.score, got)
		}
	}
}

func TestCompletenessRatio(t *testing.T) {
	cases := []struct {
		name    string
		present []DocumentType
		want    float64
	}{
		{"empty", nil, 0.0},
		{"one_required", []DocumentType{DocBusinessPlan}, 0.25},
		{"duplicates_counted_once", []DocumentType{DocBusinessPlan, DocBusinessPlan}, 0.25},
		{"non_required_ignored", []DocumentType{DocPitchDeck, DocOther}, 0.0},
		{"all_required", []DocumentType{DocBusinessPlan, DocFinancialProjections, DocMarketAnalysis, DocTeamBios}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Completeness(tc.present); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
