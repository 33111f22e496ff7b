package scoring

import (
	"math"
	"testing"
)

func TestMarketScoreBlend(t *testing.T) {
	in := MarketInputs{
		Trends: []MarketTrend{
			{Sector: "fintech", Direction: "bullish", Strength: 0.7},
			{Sector: "fintech", Direction: "bullish", Strength: 0.8},
			{Sector: "fintech", Direction: "sideways", Strength: 0.9},
		},
		Economic: EconomicIndicators{
			GDPGrowth:     2.1,
			InflationRate: 3.2,
			InterestRates: 5.25,
		},
		Competitors: []CompetitorProfile{
			{Name: "Market Leader Corp", GrowthRatePct: 45},
			{Name: "Rising Challenger Inc", GrowthRatePct: 120},
		},
		SentimentScore: 0.65,
		Timing:         TimingGood,
	}

	trend := (0.7 + 0.8 + 0.9) / 3.0
	gdp := 2.1 / 4.0
	inflation := 1.0 - math.Abs(3.2-2.0)/3.0
	rates := 1.0 - 5.25/8.0
	econ := (gdp + inflation + rates) / 3.0
	comp := 0.7 // avg growth 82.5 is in the (50,100] tier
	sentiment := (0.65 + 1.0) / 2.0
	timing := 0.8

	want := trend*0.25 + econ*0.20 + comp*0.25 + sentiment*0.15 + timing*0.15
	if got := MarketScore(in); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMarketScoreClamped(t *testing.T) {
	in := MarketInputs{
		Trends:         []MarketTrend{{Strength: 1.0}},
		Economic:       EconomicIndicators{GDPGrowth: 10, InflationRate: 2.0, InterestRates: 0},
		SentimentScore: 1.0,
		Timing:         TimingExcellent,
	}
	got := MarketScore(in)
	if got < 0 || got > 1 {
		t.Fatalf("expected score within [0,1], got %v", got)
	}
}

func TestCompetitiveScoreTiers(t *testing.T) {
	cases := []struct {
		name        string
		competitors []CompetitorProfile
		want        float64
	}{
		{"no_data", nil, 0.8},
		{"hypergrowth", []CompetitorProfile{{GrowthRatePct: 150}}, 0.6},
		{"moderate", []CompetitorProfile{{GrowthRatePct: 60}}, 0.7},
		{"slow", []CompetitorProfile{{GrowthRatePct: 20}}, 0.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := competitiveScore(tc.competitors); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTimingLookup(t *testing.T) {
	cases := map[MarketTiming]float64{
		TimingExcellent: 1.0,
		TimingGood:      0.8,
		TimingFair:      0.6,
		TimingPoor:      0.3,
	}
	for timing, want := range cases {
		if got := timingScore(timing); got != want {
			t.Fatalf("timing %s: expected %v, got %v", timing, want, got)
		}
	}
}

func TestSentimentNormalization(t *testing.T) {
	if got := sentimentScore(-1.0); got != 0.0 {
		t.Fatalf("expected -1 to normalize to 0, got %v", got)
	}
	if got := sentimentScore(1.0); got != 1.0 {
		t.Fatalf("expected 1 to normalize to 1, got %v", got)
	}
	if got := sentimentScore(0.0); got != 0.5 {
		t.Fatalf("expected 0 to normalize to 0.5, got %v", got)
	}
}
