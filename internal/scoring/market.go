package scoring

// Market score blend weights.
const (
	marketTrendWeight       = 0.25
	marketEconomicWeight    = 0.20
	marketCompetitionWeight = 0.25
	marketSentimentWeight   = 0.15
	marketTimingWeight      = 0.15
)

// MarketScore computes the market attractiveness score in [0,1] as a weighted
// blend of trend strength, economic conditions, competitive intensity, news
// sentiment, and entry timing.
func MarketScore(in MarketInputs) float64 {
	score := trendScore(in.Trends)*marketTrendWeight +
		economicScore(in.Economic)*marketEconomicWeight +
		competitiveScore(in.Competitors)*marketCompetitionWeight +
		sentimentScore(in.SentimentScore)*marketSentimentWeight +
		timingScore(in.Timing)*marketTimingWeight
	return clamp01(score)
}

func trendScore(trends []MarketTrend) float64 {
	if len(trends) == 0 {
		return 0.5
	}
	var sum float64
	for _, t := range trends {
		sum += clamp01(t.Strength)
	}
	return sum / float64(len(trends))
}

// economicScore normalizes macro indicators: GDP growth around a 4% ceiling,
// inflation against a 2% target, and interest rates against an 8% ceiling.
func economicScore(ind EconomicIndicators) float64 {
	gdp := clamp01(ind.GDPGrowth / 4.0)
	inflation := clamp01(1.0 - abs(ind.InflationRate-2.0)/3.0)
	rates := clamp01(1.0 - ind.InterestRates/8.0)
	return (gdp + inflation + rates) / 3.0
}

// competitiveScore grades the landscape by average competitor growth: fast
// average growth means an attractive but crowded market.
func competitiveScore(competitors []CompetitorProfile) float64 {
	if len(competitors) == 0 {
		return 0.8
	}
	var sum float64
	for _, c := range competitors {
		sum += c.GrowthRatePct
	}
	avg := sum / float64(len(competitors))
	switch {
	case avg > 100:
		return 0.6
	case avg > 50:
		return 0.7
	default:
		return 0.8
	}
}

// sentimentScore normalizes a [-1,1] sentiment value to [0,1].
func sentimentScore(raw float64) float64 {
	return clamp01((raw + 1.0) / 2.0)
}

// timingScore is the fixed timing lookup. Exhaustive over MarketTiming.
func timingScore(t MarketTiming) float64 {
	switch t {
	case TimingExcellent:
		return 1.0
	case TimingGood:
		return 0.8
	case TimingFair:
		return 0.6
	case TimingPoor:
		return 0.3
	default:
		// Unreachable for parsed input; fair is the neutral assumption.
		return 0.6
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
