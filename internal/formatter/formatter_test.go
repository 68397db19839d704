package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/emoji"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		Summary: "A twelve-month service agreement with automatic renewal.",
		RiskItems: []analysis.RiskItem{
			{
				ClauseSummary:    "Automatic renewal clause",
				RiskLevel:        analysis.RiskHigh,
				Explanation:      "Renews for a full year unless cancelled 90 days ahead.",
				ActionSuggestion: "Set a cancellation reminder for 100 days before renewal.",
			},
			{
				ClauseSummary: "Late payment fee",
				RiskLevel:     analysis.RiskMedium,
				Explanation:   "Charges 5% monthly interest on overdue invoices.",
			},
			{
				ClauseSummary: "Standard confidentiality clause",
				RiskLevel:     analysis.RiskLow,
				Explanation:   "Mutual confidentiality with customary carve-outs.",
			},
		},
		ActionsTaken: []string{"Analysis saved to vault."},
	}
}

func TestTerminalFormat(t *testing.T) {
	f := NewTerminal(false)

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	output := string(out)
	for _, want := range []string{
		"Document Risk Assessment",
		"A twelve-month service agreement",
		"Automatic renewal clause",
		"Set a cancellation reminder",
		"Actions Taken",
		"Analysis saved to vault.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}

	// clauses should keep report order
	highPos := strings.Index(output, "Automatic renewal clause")
	lowPos := strings.Index(output, "Standard confidentiality clause")
	if highPos > lowPos {
		t.Error("clauses should render in report order")
	}
}

func TestTerminalFormatRiskMarkers(t *testing.T) {
	emoji.SetEmojiDisabled(false)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(false).Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{"🔴", "🟡", "🟢"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("terminal output missing risk marker %q", want)
		}
	}

	emoji.SetEmojiDisabled(true)
	out, err = NewTerminal(false).Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	output := string(out)
	for _, want := range []string{"[HIGH]", "[MED]", "[LOW]"} {
		if !strings.Contains(output, want) {
			t.Errorf("emoji-disabled output missing marker %q", want)
		}
	}
	if strings.Contains(output, "🔴") {
		t.Error("emoji-disabled output should not contain emoji markers")
	}
}

func TestTerminalFormatOmitsEmptySections(t *testing.T) {
	f := NewTerminal(false)

	out, err := f.Format(&analysis.Report{Summary: "Nothing of concern."})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	output := string(out)
	if strings.Contains(output, "Flagged Clauses") {
		t.Error("empty report should not render a clauses section")
	}
	if strings.Contains(output, "Actions Taken") {
		t.Error("empty report should not render an actions section")
	}
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.HighestRisk != "High" {
		t.Errorf("highest_risk = %q, want %q", decoded.HighestRisk, "High")
	}
	if len(decoded.RiskAnalysis) != 3 {
		t.Fatalf("risk_analysis has %d entries, want 3", len(decoded.RiskAnalysis))
	}
	if decoded.RiskAnalysis[0].RiskLevel != "High" {
		t.Errorf("first clause level = %q, want High", decoded.RiskAnalysis[0].RiskLevel)
	}
	if decoded.RiskAnalysis[1].ActionSuggestion != "" {
		t.Errorf("clause without suggestion should marshal empty, got %q", decoded.RiskAnalysis[1].ActionSuggestion)
	}
}

func TestMarkdownFormat(t *testing.T) {
	f := NewMarkdown()

	out, err := f.Format(sampleReport())
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	output := string(out)
	for _, want := range []string{
		"# Document Risk Assessment",
		"## Risk Breakdown",
		"| High | 1 |",
		"| Medium | 1 |",
		"| Low | 1 |",
		"Overall risk: **High**",
		"### 1. [HIGH] Automatic renewal clause",
		"**Suggested action:**",
		"## Actions Taken",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}

	if strings.Contains(output, "| Unclassified |") {
		t.Error("breakdown should omit the unclassified row when count is zero")
	}
}
