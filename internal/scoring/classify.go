package scoring

import "strings"

// classification keyword sets, checked filename-first then content.
var docTypeKeywords = []struct {
	docType DocumentType
	terms   []string
}{
	{DocBusinessPlan, []string{"business", "plan", "executive", "summary"}},
	{DocFinancialProjections, []string{"financial", "projections", "forecast", "budget"}},
	{DocMarketAnalysis, []string{"market", "analysis", "research"}},
	{DocTeamBios, []string{"team", "bio", "founder", "leadership"}},
	{DocLegalDocuments, []string{"legal", "terms", "contract", "agreement"}},
	{DocTechnicalSpecs, []string{"technical", "spec", "architecture", "product"}},
	{DocPitchDeck, []string{"pitch", "deck", "presentation"}},
}

const classifyContentWindow = 2000

// ClassifyDocument infers the document type from the filename, falling back to
// keywords in the leading content window. Unmatched documents are DocOther.
func ClassifyDocument(fileName, content string) DocumentType {
	name := strings.ToLower(fileName)
	for _, entry := range docTypeKeywords {
		if containsAny(name, entry.terms) {
			return entry.docType
		}
	}

	window := strings.ToLower(content)
	if len(window) > classifyContentWindow {
		window = window[:classifyContentWindow]
	}
	for _, entry := range docTypeKeywords {
		if containsAny(window, entry.terms) {
			return entry.docType
		}
	}
	return DocOther
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
