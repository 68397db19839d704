package analyst

import (
	"github.com/yildizm/go-promptfmt"
)

const systemPrompt = `You are an expert legal AI assistant. Your purpose is to demystify complex legal documents for the average person. Carefully review the legal document provided and assess every significant clause.`

const taskPrompt = `Return a valid JSON object and nothing else. The JSON object must follow this exact structure:
{
  "summary": "A concise, 2-3 sentence summary of the document's main purpose and who it is between.",
  "risk_analysis": [
    {
      "clause_summary": "A brief, simple title for the clause. For example: 'Lease Term and Duration'.",
      "risk_level": "Red, Amber, or Green",
      "explanation": "In simple terms, explain what this clause means and why it has the assigned risk level. 'Red' = highly unfavorable or predatory. 'Amber' = caution or unusual clauses. 'Green' = standard, fair clauses.",
      "action_suggestion": "A clear, actionable suggestion for the user. For example: 'Confirm the termination notice period in writing'."
    }
  ]
}`

// modelAnalysis is the JSON shape the model is asked to produce.
type modelAnalysis struct {
	Summary      string      `json:"summary"`
	RiskAnalysis []modelRisk `json:"risk_analysis"`
}

type modelRisk struct {
	ClauseSummary    string `json:"clause_summary"`
	RiskLevel        string `json:"risk_level"`
	Explanation      string `json:"explanation"`
	ActionSuggestion string `json:"action_suggestion"`
}

// buildTextPrompt builds the analysis prompt for inline document text.
func buildTextPrompt(documentText string) *promptfmt.Prompt {
	return promptfmt.New().
		System(systemPrompt).
		User("%s\n\nLegal Document Text:\n---\n%s\n---", taskPrompt, documentText).
		ExpectJSON(&modelAnalysis{}).
		Build()
}

// buildAttachmentPrompt builds the analysis prompt for an attached file.
func buildAttachmentPrompt() *promptfmt.Prompt {
	return promptfmt.New().
		System(systemPrompt).
		User("%s\n\nThe legal document is attached. If it is a scan or photo, read the text from the image before analyzing it.", taskPrompt).
		ExpectJSON(&modelAnalysis{}).
		Build()
}
