package formatter

import (
	"encoding/json"

	"github.com/certifyai/certify/internal/analysis"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *analysis.Report) ([]byte, error) {
	output := &JSONOutput{
		Summary:      report.Summary,
		HighestRisk:  report.HighestRisk().String(),
		RiskAnalysis: createRiskOutputs(report.RiskItems),
		ActionsTaken: report.ActionsTaken,
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the top-level machine-readable report structure
type JSONOutput struct {
	Summary      string        `json:"summary"`
	HighestRisk  string        `json:"highest_risk"`
	RiskAnalysis []*RiskOutput `json:"risk_analysis"`
	ActionsTaken []string      `json:"actions_taken,omitempty"`
}

// RiskOutput represents a single flagged clause
type RiskOutput struct {
	ClauseSummary    string `json:"clause_summary"`
	RiskLevel        string `json:"risk_level"`
	Explanation      string `json:"explanation"`
	ActionSuggestion string `json:"action_suggestion,omitempty"`
}

func createRiskOutputs(items []analysis.RiskItem) []*RiskOutput {
	outputs := make([]*RiskOutput, 0, len(items))
	for _, item := range items {
		outputs = append(outputs, &RiskOutput{
			ClauseSummary:    item.ClauseSummary,
			RiskLevel:        item.RiskLevel.String(),
			Explanation:      item.Explanation,
			ActionSuggestion: item.ActionSuggestion,
		})
	}
	return outputs
}
