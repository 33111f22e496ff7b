package scoring

// Flag weights: mandatory requirements count double.
const (
	mandatoryFlagWeight = 1.0
	optionalFlagWeight  = 0.5
)

// statusBase is the base score for each compliance status. Exhaustive over
// ComplianceStatus.
func statusBase(s ComplianceStatus) float64 {
	switch s {
	case StatusCompliant:
		return 1.0
	case StatusNeedsReview:
		return 0.7
	case StatusUnclear:
		return 0.5
	case StatusNonCompliant:
		return 0.0
	default:
		// Unreachable for parsed input.
		return 0.5
	}
}

// riskDerating discounts a flag score by its risk level. Exhaustive over
// ComplianceRisk.
func riskDerating(r ComplianceRisk) float64 {
	switch r {
	case ComplianceRiskCritical:
		return 0.5
	case ComplianceRiskHigh:
		return 0.7
	case ComplianceRiskMedium, ComplianceRiskLow:
		return 1.0
	default:
		// Unreachable for parsed input.
		return 1.0
	}
}

// ComplianceScore computes the weighted compliance score in [0,1] over all
// flags. An empty flag list yields the neutral 0.5.
func ComplianceScore(flags []ComplianceFlag) float64 {
	if len(flags) == 0 {
		return 0.5
	}
	var weightedSum, totalWeight float64
	for _, flag := range flags {
		weight := optionalFlagWeight
		if flag.Mandatory {
			weight = mandatoryFlagWeight
		}
		score := statusBase(flag.Status) * riskDerating(flag.RiskLevel)
		weightedSum += score * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0.5
	}
	return clamp01(weightedSum / totalWeight)
}
