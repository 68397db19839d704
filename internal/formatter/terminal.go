package formatter

import (
	"fmt"
	"strings"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats a report as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, report)
	f.writeRiskBreakdown(&b, report)

	if len(report.RiskItems) > 0 {
		f.writeClauses(&b, report.RiskItems)
	}

	if len(report.ActionsTaken) > 0 {
		f.writeActionsTaken(&b, report.ActionsTaken)
	}

	return []byte(b.String()), nil
}

// writeHeader writes a box-drawn header
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Document Risk Assessment"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, report *analysis.Report) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	if symbol == "" {
		symbol = "📝"
	}
	b.WriteString(symbol + " Summary\n")
	b.WriteString(report.Summary + "\n\n")
}

// writeRiskBreakdown writes per-level counts with tree-style formatting
func (f *terminalFormatter) writeRiskBreakdown(b *strings.Builder, report *analysis.Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Risk Breakdown\n")

	counts := report.CountByLevel()
	items := []termfmt.TreeItem{
		{Label: "Clauses Reviewed", Value: fmt.Sprintf("%d", len(report.RiskItems))},
		{Label: "High Risk", Value: fmt.Sprintf("%d", counts[analysis.RiskHigh])},
		{Label: "Medium Risk", Value: fmt.Sprintf("%d", counts[analysis.RiskMedium])},
		{Label: "Low Risk", Value: fmt.Sprintf("%d", counts[analysis.RiskLow]), Last: true},
	}
	if n := counts[analysis.RiskUnknown]; n > 0 {
		items[3].Last = false
		items = append(items, termfmt.TreeItem{Label: "Unclassified", Value: fmt.Sprintf("%d", n), Last: true})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeClauses writes each flagged clause with its risk indicator
func (f *terminalFormatter) writeClauses(b *strings.Builder, items []analysis.RiskItem) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Flagged Clauses\n")

	treeItems := make([]termfmt.TreeItem, 0, len(items))
	for i, item := range items {
		children := []termfmt.TreeItem{
			{Label: "Why", Value: item.Explanation},
		}
		if item.ActionSuggestion != "" {
			children = append(children, termfmt.TreeItem{Label: "Suggested Action", Value: item.ActionSuggestion})
		}

		treeItems = append(treeItems, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s", emoji.ForRiskLevel(item.RiskLevel), item.ClauseSummary),
			Value:    item.RiskLevel.String(),
			Children: children,
			Last:     i == len(items)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(treeItems, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) writeActionsTaken(b *strings.Builder, actions []string) {
	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Actions Taken\n")

	for _, action := range actions {
		b.WriteString("• " + action + "\n")
	}
}
