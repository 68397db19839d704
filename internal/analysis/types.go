package analysis

import (
	"path/filepath"
	"strings"
)

// InputMode identifies the input channel a document arrives through.
// Exactly one mode is active at a time in the client.
type InputMode int

const (
	ModePDF InputMode = iota
	ModeImage
	ModeText
)

// String returns the mode name used in flags and display output.
func (m InputMode) String() string {
	switch m {
	case ModePDF:
		return "pdf"
	case ModeImage:
		return "image"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseInputMode parses a mode name as used on the command line.
func ParseInputMode(s string) (InputMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return ModePDF, true
	case "image", "img":
		return ModeImage, true
	case "text", "txt":
		return ModeText, true
	default:
		return ModeText, false
	}
}

// Extensions returns the file extensions accepted for the mode. Text mode
// takes pasted input rather than a file and returns nil. These filters are
// advisory; the backend remains the authority on acceptance.
func (m InputMode) Extensions() []string {
	switch m {
	case ModePDF:
		return []string{".pdf"}
	case ModeImage:
		return []string{".png", ".jpg", ".jpeg", ".webp"}
	default:
		return nil
	}
}

// AcceptsFile reports whether the mode takes a file as input.
func (m InputMode) AcceptsFile() bool {
	return m == ModePDF || m == ModeImage
}

// ModeForFile infers the input mode from a filename extension.
func ModeForFile(name string) (InputMode, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range []InputMode{ModePDF, ModeImage} {
		for _, e := range m.Extensions() {
			if ext == e {
				return m, true
			}
		}
	}
	return ModeText, false
}

// MIMEType returns the MIME type sent for files of this mode.
func MIMEType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// RiskLevel is the severity tier assigned to a clause.
type RiskLevel int

const (
	RiskUnknown RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// String returns the canonical tier name.
func (r RiskLevel) String() string {
	switch r {
	case RiskHigh:
		return "High"
	case RiskMedium:
		return "Medium"
	case RiskLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// ParseRiskLevel maps a backend risk_level string to a tier. The backend
// emits High/Medium/Low or the traffic-light synonyms Red/Amber/Green;
// anything else lands in the neutral Unknown tier rather than failing.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "red":
		return RiskHigh
	case "medium", "amber":
		return RiskMedium
	case "low", "green":
		return RiskLow
	default:
		return RiskUnknown
	}
}

// RiskItem is one clause-level finding with severity and suggested remediation.
type RiskItem struct {
	ClauseSummary    string    `json:"clause_summary"`
	Explanation      string    `json:"explanation"`
	ActionSuggestion string    `json:"action_suggestion"`
	RiskLevel        RiskLevel `json:"risk_level"`
}

// Report is a complete analysis result: the document summary, the ordered
// clause findings, and the log of actions the backend performed.
type Report struct {
	Summary      string     `json:"summary"`
	RiskItems    []RiskItem `json:"risk_items"`
	ActionsTaken []string   `json:"actions_taken"`
}

// HighestRisk returns the most severe tier present in the report, or
// RiskUnknown for an empty report.
func (r *Report) HighestRisk() RiskLevel {
	highest := RiskUnknown
	for _, item := range r.RiskItems {
		if item.RiskLevel > highest {
			highest = item.RiskLevel
		}
	}
	return highest
}

// CountByLevel returns the number of findings per tier.
func (r *Report) CountByLevel() map[RiskLevel]int {
	counts := make(map[RiskLevel]int)
	for _, item := range r.RiskItems {
		counts[item.RiskLevel]++
	}
	return counts
}
