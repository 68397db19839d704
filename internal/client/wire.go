package client

import "github.com/certifyai/certify/internal/analysis"

// Wire types mirror the backend's flat JSON contract.

type wireReport struct {
	Analysis     wireAnalysis `json:"analysis"`
	ActionsTaken []string     `json:"actions_taken"`
}

type wireAnalysis struct {
	Summary      string     `json:"summary"`
	RiskAnalysis []wireRisk `json:"risk_analysis"`
}

type wireRisk struct {
	ClauseSummary    string `json:"clause_summary"`
	Explanation      string `json:"explanation"`
	ActionSuggestion string `json:"action_suggestion"`
	RiskLevel        string `json:"risk_level"`
}

type wireError struct {
	Error string `json:"error"`
}

func (w *wireReport) toReport() *analysis.Report {
	report := &analysis.Report{
		Summary:      w.Analysis.Summary,
		ActionsTaken: w.ActionsTaken,
	}
	for _, r := range w.Analysis.RiskAnalysis {
		report.RiskItems = append(report.RiskItems, analysis.RiskItem{
			ClauseSummary:    r.ClauseSummary,
			Explanation:      r.Explanation,
			ActionSuggestion: r.ActionSuggestion,
			RiskLevel:        analysis.ParseRiskLevel(r.RiskLevel),
		})
	}
	return report
}
