package llm

import (
	"fmt"
	"strings"
)

// maxPromptContent caps how much document text a single prompt carries.
const maxPromptContent = 15000

const analysisPromptTemplate = `You are an expert financial analyst specializing in investment proposal evaluation.
Analyze the following proposal document and provide a comprehensive assessment.

Document Content:
%s

Please provide your analysis in the following JSON format:
{
    "summary": "A concise 2-3 sentence summary of the proposal",
    "potential_strengths": [
        "List 3-5 key strengths or positive aspects",
        "Focus on market opportunity, team, business model, financials"
    ],
    "areas_for_consideration": [
        "List 3-5 areas that need attention or pose risks",
        "Include regulatory, market, operational, or financial concerns"
    ],
    "complexity_score": <1-10 integer rating the proposal complexity>,
    "key_metrics": {
        "market_size": "Estimated market size if mentioned",
        "funding_amount": "Requested funding amount",
        "revenue_model": "Brief description of revenue model",
        "regulatory_status": "Regulatory compliance status"
    }
}

Focus on providing actionable insights for investors. Be objective and highlight both opportunities and risks.
Ensure your complexity score reflects the sophistication required to understand and evaluate this investment.`

// AnalysisPrompt builds the structured analysis prompt for one content unit.
func AnalysisPrompt(content string) string {
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}
	return fmt.Sprintf(analysisPromptTemplate, content)
}

const chatPromptTemplate = `You are a senior financial advisor and tokenization expert for the CF1 platform, with deep expertise in real-world asset tokenization, SEC regulations, investor relations, and asset management.

User Question: "%s"

Context Information:
%s

Provide a comprehensive, professional response that directly addresses the question, covers relevant regulatory considerations, and offers concrete next steps. Match response length to question complexity: simple questions get concise answers, strategic questions get detailed guidance.`

// ChatPrompt builds the advisory chat prompt.
func ChatPrompt(message string, contextParts []string) string {
	contextInfo := "No specific context provided"
	if len(contextParts) > 0 {
		contextInfo = strings.Join(contextParts, "\n")
	}
	return fmt.Sprintf(chatPromptTemplate, message, contextInfo)
}
