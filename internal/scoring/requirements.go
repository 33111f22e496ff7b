package scoring

// Framework identifies a regulatory framework.
type Framework string

const (
	FrameworkSECRegCF Framework = "sec_regulation_cf"
	FrameworkSECRegD  Framework = "sec_regulation_d"
	FrameworkBSAAML   Framework = "bsa_aml"
)

// Requirement is one regulatory requirement used as scoring input data.
type Requirement struct {
	Framework     Framework
	RequirementID string
	Description   string
	Mandatory     bool
	Category      string // disclosure, financial, operational, governance
}

// Requirements returns the static requirement table per framework.
func Requirements(f Framework) []Requirement {
	switch f {
	case FrameworkSECRegCF:
		return []Requirement{
			{f, "cf_offering_limit", "Offering amount must not exceed $5 million in 12-month period", true, "financial"},
			{f, "cf_investor_limits", "Individual investor limits based on income and net worth", true, "financial"},
			{f, "cf_disclosure_requirements", "Detailed business plan, financial statements, and risk factors", true, "disclosure"},
			{f, "cf_intermediary_requirement", "Must use registered funding portal or broker-dealer", true, "operational"},
			{f, "cf_annual_reporting", "Annual reporting requirements for ongoing issuers", true, "disclosure"},
		}
	case FrameworkSECRegD:
		return []Requirement{
			{f, "reg_d_accredited_investors", "Verification of accredited investor status required", true, "financial"},
			{f, "reg_d_general_solicitation", "Restrictions on general solicitation and advertising", true, "operational"},
			{f, "reg_d_form_d_filing", "Form D filing within 15 days of first sale", true, "disclosure"},
			{f, "reg_d_bad_actor_check", "Bad actor disqualification checks for covered persons", true, "governance"},
		}
	case FrameworkBSAAML:
		return []Requirement{
			{f, "aml_customer_identification", "Customer Identification Program (CIP) requirements", true, "operational"},
			{f, "aml_suspicious_activity", "Suspicious Activity Report (SAR) filing procedures", true, "operational"},
			{f, "aml_recordkeeping", "Transaction recordkeeping and reporting requirements", true, "operational"},
		}
	default:
		return nil
	}
}
