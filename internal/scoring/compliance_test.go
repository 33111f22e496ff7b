package scoring

import (
	"math"
	"testing"
)

func TestComplianceScoreEmptyIsNeutral(t *testing.T) {
	if got := ComplianceScore(nil); got != 0.5 {
		t.Fatalf("expected neutral 0.5 for empty flags, got %v", got)
	}
}

func TestComplianceScoreWeighting(t *testing.T) {
	cases := []struct {
		name  string
		flags []ComplianceFlag
		want  float64
	}{
		{
			name: "single_compliant_low_risk",
			flags: []ComplianceFlag{
				{RequirementID: "cf_offering_limit", Mandatory: true, Status: StatusCompliant, RiskLevel: ComplianceRiskLow},
			},
			want: 1.0,
		},
		{
			name: "critical_derates_half",
			flags: []ComplianceFlag{
				{RequirementID: "cf_offering_limit", Mandatory: true, Status: StatusCompliant, RiskLevel: ComplianceRiskCritical},
			},
			want: 0.5,
		},
		{
			name: "optional_weighs_half",
			flags: []ComplianceFlag{
				{RequirementID: "a", Mandatory: true, Status: StatusNonCompliant, RiskLevel: ComplianceRiskLow},
				{RequirementID: "b", Mandatory: false, Status: StatusCompliant, RiskLevel: ComplianceRiskLow},
			},
			// (0.0*1.0 + 1.0*0.5) / 1.5
			want: 1.0 / 3.0,
		},
		{
			name: "needs_review_high_risk",
			flags: []ComplianceFlag{
				{RequirementID: "a", Mandatory: true, Status: StatusNeedsReview, RiskLevel: ComplianceRiskHigh},
			},
			want: 0.7 * 0.7,
		},
		{
			name: "unclear_medium_risk",
			flags: []ComplianceFlag{
				{RequirementID: "a", Mandatory: false, Status: StatusUnclear, RiskLevel: ComplianceRiskMedium},
			},
			want: 0.5,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComplianceScore(tc.flags); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRequirementsTables(t *testing.T) {
	if got := len(Requirements(FrameworkSECRegCF)); got != 5 {
		t.Fatalf("expected 5 Reg CF requirements, got %d", got)
	}
	if got := len(Requirements(FrameworkSECRegD)); got != 4 {
		t.Fatalf("expected 4 Reg D requirements, got %d", got)
	}
	if got := len(Requirements(FrameworkBSAAML)); got != 3 {
		t.Fatalf("expected 3 BSA/AML requirements, got %d", got)
	}
	for _, req := range Requirements(FrameworkSECRegCF) {
		if !req.Mandatory {
			t.Fatalf("expected all Reg CF requirements mandatory, %s is not", req.RequirementID)
		}
	}
	if Requirements(Framework("unknown")) != nil {
		t.Fatalf("expected nil for unknown framework")
	}
}
