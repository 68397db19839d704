package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/certifyai/certify/internal/analysis"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Document Risk Assessment\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	b.WriteString("## Summary\n\n")
	b.WriteString(report.Summary + "\n\n")

	f.writeBreakdownTable(&b, report)

	if len(report.RiskItems) > 0 {
		f.writeClauseSections(&b, report.RiskItems)
	}

	if len(report.ActionsTaken) > 0 {
		b.WriteString("## Actions Taken\n\n")
		for _, action := range report.ActionsTaken {
			b.WriteString("- " + action + "\n")
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeBreakdownTable(b *strings.Builder, report *analysis.Report) {
	counts := report.CountByLevel()

	b.WriteString("## Risk Breakdown\n\n")
	b.WriteString("| Level | Clauses |\n")
	b.WriteString("|-------|--------|\n")
	fmt.Fprintf(b, "| High | %d |\n", counts[analysis.RiskHigh])
	fmt.Fprintf(b, "| Medium | %d |\n", counts[analysis.RiskMedium])
	fmt.Fprintf(b, "| Low | %d |\n", counts[analysis.RiskLow])
	if n := counts[analysis.RiskUnknown]; n > 0 {
		fmt.Fprintf(b, "| Unclassified | %d |\n", n)
	}
	fmt.Fprintf(b, "\nOverall risk: **%s**\n\n", report.HighestRisk())
}

func (f *markdownFormatter) writeClauseSections(b *strings.Builder, items []analysis.RiskItem) {
	b.WriteString("## Flagged Clauses\n\n")

	for i, item := range items {
		fmt.Fprintf(b, "### %d. %s %s\n\n", i+1, riskBadge(item.RiskLevel), item.ClauseSummary)
		b.WriteString(item.Explanation + "\n\n")
		if item.ActionSuggestion != "" {
			fmt.Fprintf(b, "**Suggested action:** %s\n\n", item.ActionSuggestion)
		}
	}
}
