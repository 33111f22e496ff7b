package scoring

// AssessmentInputs bundles everything an end-to-end assessment consumes.
// Any part may be empty; every sub-score degrades to its neutral default.
type AssessmentInputs struct {
	Documents       []DocumentSignal
	RiskFactors     []RiskFactor
	ComplianceFlags []ComplianceFlag
	Market          *MarketInputs
}

// Assessment is the full set of composite scores for one proposal.
type Assessment struct {
	OverallScore    float64      `json:"overall_score"`
	Recommendation  string       `json:"investment_recommendation"`
	RiskScore       float64      `json:"overall_risk_score"`
	RiskCategory    RiskSeverity `json:"risk_category"`
	ComplianceScore float64      `json:"compliance_score"`
	MarketScore     float64      `json:"market_score"`
	Completeness    float64      `json:"information_completeness"`
}

// Assess computes every composite score from the given inputs.
func (e *Engine) Assess(in AssessmentInputs) Assessment {
	riskScore := OverallRiskScore(in.RiskFactors)

	marketScore := 0.5
	if in.Market != nil {
		marketScore = MarketScore(*in.Market)
	}

	overall := e.OverallScore(InvestmentInputs{
		Documents:        in.Documents,
		OverallRiskScore: riskScore,
		MarketScore:      marketScore,
	})

	present := make([]DocumentType, 0, len(in.Documents))
	for _, d := range in.Documents {
		present = append(present, d.Type)
	}

	return Assessment{
		OverallScore:    overall,
		Recommendation:  Recommendation(overall),
		RiskScore:       riskScore,
		RiskCategory:    RiskCategory(riskScore),
		ComplianceScore: ComplianceScore(in.ComplianceFlags),
		MarketScore:     marketScore,
		Completeness:    Completeness(present),
	}
}
