package scoring

import "fmt"

// DocumentType classifies a proposal document for scoring purposes.
type DocumentType string

const (
	DocBusinessPlan         DocumentType = "business_plan"
	DocFinancialProjections DocumentType = "financial_projections"
	DocMarketAnalysis       DocumentType = "market_analysis"
	DocTeamBios             DocumentType = "team_bios"
	DocLegalDocuments       DocumentType = "legal_documents"
	DocTechnicalSpecs       DocumentType = "technical_specs"
	DocPitchDeck            DocumentType = "pitch_deck"
	DocOther                DocumentType = "other"
)

// ParseDocumentType validates a document type string.
func ParseDocumentType(raw string) (DocumentType, error) {
	switch DocumentType(raw) {
	case DocBusinessPlan, DocFinancialProjections, DocMarketAnalysis, DocTeamBios,
		DocLegalDocuments, DocTechnicalSpecs, DocPitchDeck, DocOther:
		return DocumentType(raw), nil
	}
	return "", fmt.Errorf("unknown document type: %q", raw)
}

// RiskSeverity is the ordered severity scale for risk factors.
type RiskSeverity string

const (
	RiskVeryLow  RiskSeverity = "very_low"
	RiskLow      RiskSeverity = "low"
	RiskModerate RiskSeverity = "moderate"
	RiskHigh     RiskSeverity = "high"
	RiskVeryHigh RiskSeverity = "very_high"
)

// ParseRiskSeverity validates a severity string.
func ParseRiskSeverity(raw string) (RiskSeverity, error) {
	switch RiskSeverity(raw) {
	case RiskVeryLow, RiskLow, RiskModerate, RiskHigh, RiskVeryHigh:
		return RiskSeverity(raw), nil
	}
	return "", fmt.Errorf("unknown risk severity: %q", raw)
}

// RiskFactor is one identified risk, consumed only by scoring and reporting.
type RiskFactor struct {
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	Severity    RiskSeverity `json:"severity"`
	Likelihood  float64      `json:"likelihood"`
	ImpactScore float64      `json:"impact_score"`
}

// ComplianceStatus is the evaluated status of one regulatory requirement.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "compliant"
	StatusNonCompliant ComplianceStatus = "non_compliant"
	StatusNeedsReview  ComplianceStatus = "needs_review"
	StatusUnclear      ComplianceStatus = "unclear"
)

// ParseComplianceStatus validates a compliance status string.
func ParseComplianceStatus(raw string) (ComplianceStatus, error) {
	switch ComplianceStatus(raw) {
	case StatusCompliant, StatusNonCompliant, StatusNeedsReview, StatusUnclear:
		return ComplianceStatus(raw), nil
	}
	return "", fmt.Errorf("unknown compliance status: %q", raw)
}

// ComplianceRisk grades how damaging a compliance gap is.
type ComplianceRisk string

const (
	ComplianceRiskLow      ComplianceRisk = "low"
	ComplianceRiskMedium   ComplianceRisk = "medium"
	ComplianceRiskHigh     ComplianceRisk = "high"
	ComplianceRiskCritical ComplianceRisk = "critical"
)

// ParseComplianceRisk validates a compliance risk level string.
func ParseComplianceRisk(raw string) (ComplianceRisk, error) {
	switch ComplianceRisk(raw) {
	case ComplianceRiskLow, ComplianceRiskMedium, ComplianceRiskHigh, ComplianceRiskCritical:
		return ComplianceRisk(raw), nil
	}
	return "", fmt.Errorf("unknown compliance risk level: %q", raw)
}

// ComplianceFlag is a single requirement's evaluated status. Read-only once produced.
type ComplianceFlag struct {
	RequirementID string           `json:"requirement_id"`
	Mandatory     bool             `json:"mandatory"`
	Status        ComplianceStatus `json:"status"`
	RiskLevel     ComplianceRisk   `json:"risk_level"`
	Details       string           `json:"details,omitempty"`
}

// MarketTiming grades market entry timing.
type MarketTiming string

const (
	TimingExcellent MarketTiming = "excellent"
	TimingGood      MarketTiming = "good"
	TimingFair      MarketTiming = "fair"
	TimingPoor      MarketTiming = "poor"
)

// ParseMarketTiming validates a market timing string.
func ParseMarketTiming(raw string) (MarketTiming, error) {
	switch MarketTiming(raw) {
	case TimingExcellent, TimingGood, TimingFair, TimingPoor:
		return MarketTiming(raw), nil
	}
	return "", fmt.Errorf("unknown market timing: %q", raw)
}

// MarketTrend is one observed sector trend feeding the market score.
type MarketTrend struct {
	Sector    string  `json:"sector"`
	Direction string  `json:"direction"`
	Strength  float64 `json:"strength"`
	Timeframe string  `json:"timeframe"`
}

// EconomicIndicators are the macro inputs to the market score.
type EconomicIndicators struct {
	GDPGrowth     float64 `json:"gdp_growth"`
	InflationRate float64 `json:"inflation_rate"`
	InterestRates float64 `json:"interest_rates"`
}

// CompetitorProfile describes one competitor; only the growth rate feeds scoring.
type CompetitorProfile struct {
	Name          string  `json:"name"`
	GrowthRatePct float64 `json:"growth_rate_pct"`
}

// MarketInputs bundles everything the market attractiveness score consumes.
type MarketInputs struct {
	Trends         []MarketTrend
	Economic       EconomicIndicators
	Competitors    []CompetitorProfile
	SentimentScore float64 // -1..1
	Timing         MarketTiming
}
