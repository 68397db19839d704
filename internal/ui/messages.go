package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/client"
	tea "github.com/charmbracelet/bubbletea"
)

// Message types shared across UI models
type analysisCompleteMsg struct {
	report *analysis.Report
}

type analysisErrorMsg struct {
	err error
}

// CreateAnalysisCommand creates a tea command that performs one analysis
// round trip against the backend. The command owns the file handle for its
// whole lifetime; the UI never blocks on it.
func CreateAnalysisCommand(c *client.Client, mode analysis.InputMode, filePath, text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var input client.Input
		if mode.AcceptsFile() {
			file, err := os.Open(filePath)
			if err != nil {
				return analysisErrorMsg{err: err}
			}
			defer func() { _ = file.Close() }()
			input = client.FileInput(mode, filepath.Base(filePath), file)
		} else {
			input = client.TextInput(text)
		}

		report, err := c.Analyze(ctx, input)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return analysisCompleteMsg{report: report}
	}
}
