package scoring

// severityBase is the ordered base value for each severity tier. The switch is
// exhaustive over RiskSeverity; unknown values must be rejected at parse time.
func severityBase(s RiskSeverity) float64 {
	switch s {
	case RiskVeryLow:
		return 0.1
	case RiskLow:
		return 0.3
	case RiskModerate:
		return 0.5
	case RiskHigh:
		return 0.7
	case RiskVeryHigh:
		return 0.9
	default:
		// Unreachable for parsed input; treated as moderate.
		return 0.5
	}
}

// OverallRiskScore aggregates risk factors into one score in [0,1].
// Each factor contributes its severity base blended with likelihood x impact;
// an empty factor list yields the neutral 0.5.
func OverallRiskScore(factors []RiskFactor) float64 {
	if len(factors) == 0 {
		return 0.5
	}
	var sum float64
	for _, f := range factors {
		exposure := clamp01(f.Likelihood) * clamp01(f.ImpactScore)
		sum += (severityBase(f.Severity) + exposure) / 2.0
	}
	return clamp01(sum / float64(len(factors)))
}

// RiskCategory maps an overall risk score to a severity tier.
func RiskCategory(score float64) RiskSeverity {
	switch {
	case score < 0.2:
		return RiskVeryLow
	case score < 0.4:
		return RiskLow
	case score < 0.6:
		return RiskModerate
	case score < 0.8:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}
