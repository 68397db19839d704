package analyst

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/yildizm/go-promptfmt"
)

// parseModelOutput turns raw model output into a Result. Models often wrap
// JSON in markdown fences despite being told not to, so the output is
// cleaned before parsing.
func parseModelOutput(output string) (*Result, error) {
	clean := stripFences(output)

	var parsed modelAnalysis
	response := promptfmt.NewResponse(clean)
	if result := response.TryParseJSON(&parsed); !result.Success {
		return nil, ErrMalformedAnalysis
	}

	if parsed.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary", ErrMalformedAnalysis)
	}

	report := &analysis.Report{
		Summary:   parsed.Summary,
		RiskItems: make([]analysis.RiskItem, 0, len(parsed.RiskAnalysis)),
	}
	for _, item := range parsed.RiskAnalysis {
		report.RiskItems = append(report.RiskItems, analysis.RiskItem{
			ClauseSummary:    item.ClauseSummary,
			RiskLevel:        analysis.ParseRiskLevel(item.RiskLevel),
			Explanation:      item.Explanation,
			ActionSuggestion: item.ActionSuggestion,
		})
	}

	// Re-marshal the parsed analysis so the stored form is always valid
	// JSON regardless of what the model wrapped it in
	raw, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	return &Result{Report: report, Raw: raw}, nil
}

// stripFences removes a markdown code fence wrapper from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
