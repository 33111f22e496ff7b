package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Component names for the overall investment score.
const (
	ComponentMarketOpportunity    = "market_opportunity"
	ComponentTeamQuality          = "team_quality"
	ComponentFinancialProjections = "financial_projections"
	ComponentRiskProfile          = "risk_profile"
	ComponentCompetitivePosition  = "competitive_position"
	ComponentExecutionCapability  = "execution_capability"
)

// Defaults applied when a component has no underlying document signal.
const (
	neutralComponentScore   = 0.5
	defaultPositionScore    = 0.6
	weightSumTolerance      = 1e-9
	requiredCategoriesCount = 4
)

// Weights maps component name to its fixed share of the overall score.
type Weights map[string]float64

// InvestmentWeights returns the fixed weight table. The weights sum to 1.0;
// NewEngine verifies this at construction.
func InvestmentWeights() Weights {
	return Weights{
		ComponentMarketOpportunity:    0.25,
		ComponentTeamQuality:          0.20,
		ComponentFinancialProjections: 0.20,
		ComponentRiskProfile:          0.15,
		ComponentCompetitivePosition:  0.10,
		ComponentExecutionCapability:  0.10,
	}
}

// Engine evaluates the weighted composite scores. All methods are pure.
type Engine struct {
	weights Weights
}

// NewEngine constructs an Engine, verifying the weight-sum invariant.
func NewEngine() (*Engine, error) {
	weights := InvestmentWeights()
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, fmt.Errorf("investment weights must sum to 1.0, got %v", sum)
	}
	return &Engine{weights: weights}, nil
}

// DocumentSignal is the per-document confidence feeding component scores.
type DocumentSignal struct {
	Type       DocumentType
	Confidence float64
}

// InvestmentInputs bundles everything the overall score consumes.
type InvestmentInputs struct {
	Documents        []DocumentSignal
	OverallRiskScore float64
	MarketScore      float64
}

// ComponentScores computes the named component scores in [0,1].
// team_quality and financial_projections fall back to 0.5 when no document of
// the corresponding category was analyzed.
func (e *Engine) ComponentScores(in InvestmentInputs) map[string]float64 {
	return map[string]float64{
		ComponentMarketOpportunity:    clamp01(in.MarketScore),
		ComponentTeamQuality:          meanConfidence(in.Documents, DocTeamBios),
		ComponentFinancialProjections: meanConfidence(in.Documents, DocFinancialProjections),
		ComponentRiskProfile:          clamp01(1.0 - in.OverallRiskScore),
		ComponentCompetitivePosition:  defaultPositionScore,
		ComponentExecutionCapability:  defaultPositionScore,
	}
}

// OverallScore computes the weighted overall investment score in [0,1].
func (e *Engine) OverallScore(in InvestmentInputs) float64 {
	components := e.ComponentScores(in)
	names := make([]string, 0, len(e.weights))
	for name := range e.weights {
		names = append(names, name)
	}
	sort.Strings(names)

	var score float64
	for _, name := range names {
		score += components[name] * e.weights[name]
	}
	return clamp01(score)
}

// Recommendation maps an overall score to an investment recommendation.
// Tier bounds are lower-bound inclusive.
func Recommendation(overall float64) string {
	switch {
	case overall >= 0.80:
		return "Strong Buy - Excellent investment opportunity"
	case overall >= 0.65:
		return "Buy - Good investment opportunity with manageable risks"
	case overall >= 0.50:
		return "Hold - Moderate opportunity, requires careful consideration"
	case overall >= 0.35:
		return "Weak Hold - Significant risks outweigh potential"
	default:
		return "Avoid - High risk, low probability of success"
	}
}

// Completeness returns the share of the required document categories present.
// The required set is business plan, financial projections, market analysis,
// and team bios.
func Completeness(present []DocumentType) float64 {
	required := map[DocumentType]bool{
		DocBusinessPlan:         true,
		DocFinancialProjections: true,
		DocMarketAnalysis:       true,
		DocTeamBios:             true,
	}
	seen := make(map[DocumentType]bool, len(present))
	count := 0
	for _, dt := range present {
		if required[dt] && !seen[dt] {
			seen[dt] = true
			count++
		}
	}
	return float64(count) / float64(requiredCategoriesCount)
}

func meanConfidence(docs []DocumentSignal, want DocumentType) float64 {
	var sum float64
	n := 0
	for _, d := range docs {
		if d.Type == want {
			sum += d.Confidence
			n++
		}
	}
	if n == 0 {
		return neutralComponentScore
	}
	return clamp01(sum / float64(n))
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0.0), 1.0)
}
