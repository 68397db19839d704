package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/client"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewState represents the screens of the app.
type ViewState int

const (
	ViewInput ViewState = iota
	ViewAnalyzing
	ViewResults
)

var modeTabs = []analysis.InputMode{analysis.ModePDF, analysis.ModeImage, analysis.ModeText}

// Model is the interactive document-analysis TUI. All state transitions go
// through the Store; the model only translates key events and network
// completion messages into store operations.
type Model struct {
	store  *Store
	client *client.Client

	width  int
	height int
	ready  bool

	currentView   ViewState
	selectedIndex int

	picker   filepicker.Model
	input    textarea.Model
	spin     spinner.Model
	quitting bool

	// Colors and styles
	primaryColor   lipgloss.AdaptiveColor
	secondaryColor lipgloss.AdaptiveColor
	successColor   lipgloss.AdaptiveColor
	warningColor   lipgloss.AdaptiveColor
	errorColor     lipgloss.AdaptiveColor
	selectedColor  lipgloss.AdaptiveColor
}

// NewModel creates the app model. The store may arrive pre-populated (file
// already chosen on the command line).
func NewModel(c *client.Client, store *Store) *Model {
	if store == nil {
		store = NewStore()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ta := textarea.New()
	ta.Placeholder = "Paste the document text here..."
	ta.CharLimit = 0

	m := &Model{
		store:          store,
		client:         c,
		currentView:    ViewInput,
		spin:           sp,
		input:          ta,
		primaryColor:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		secondaryColor: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		successColor:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		warningColor:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		errorColor:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		selectedColor:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	}
	m.picker = m.newPicker(store.Mode)

	return m
}

func (m *Model) newPicker(mode analysis.InputMode) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = mode.Extensions()
	fp.CurrentDirectory = "."
	return fp
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, m.spin.Tick}
	if m.store.Mode.AcceptsFile() {
		cmds = append(cmds, m.picker.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.picker.Height = max(5, msg.Height-14)
		m.input.SetWidth(min(msg.Width-8, 100))
		m.input.SetHeight(max(5, msg.Height-14))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analysisCompleteMsg:
		m.store.FinishSuccess(msg.report)
		m.currentView = ViewResults
		m.selectedIndex = 0
		return m, nil

	case analysisErrorMsg:
		m.store.FinishFailure(client.UserMessage(msg.err))
		m.currentView = ViewInput
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Quit keys work everywhere except inside the textarea, where plain
	// characters are input.
	if key == "ctrl+c" || (key == "q" && !m.textFocused()) {
		m.quitting = true
		return m, tea.Quit
	}

	// The submit trigger is disabled during loading; this is the sole
	// guard against concurrent requests.
	if m.store.Loading {
		return m, nil
	}

	switch key {
	case "tab":
		if m.currentView == ViewInput {
			return m.switchMode(m.nextMode())
		}
	case "1", "2", "3":
		if m.currentView == ViewInput && !m.textFocused() {
			return m.switchMode(modeTabs[int(key[0]-'1')])
		}
	case "esc":
		if m.currentView == ViewResults {
			m.currentView = ViewInput
			return m, nil
		}
		if m.textFocused() {
			m.input.Blur()
			return m, nil
		}
	case "up", "k":
		if m.currentView == ViewResults && m.selectedIndex > 0 {
			m.selectedIndex--
			return m, nil
		}
	case "down", "j":
		if m.currentView == ViewResults && m.store.Report != nil &&
			m.selectedIndex < len(m.store.Report.RiskItems)-1 {
			m.selectedIndex++
			return m, nil
		}
	case "enter":
		if m.currentView == ViewInput && m.store.Mode.AcceptsFile() && m.store.FilePath != "" {
			return m.submit()
		}
		if m.currentView == ViewResults {
			m.currentView = ViewInput
			return m, nil
		}
	case "backspace":
		if m.currentView == ViewInput && m.store.Mode.AcceptsFile() && m.store.FilePath != "" {
			// Re-open the picker for a different file.
			m.store.FilePath = ""
			m.store.FileName = ""
			return m, m.picker.Init()
		}
	case "ctrl+s":
		if m.currentView == ViewInput && m.store.Mode == analysis.ModeText {
			m.store.SetText(m.input.Value())
			return m.submit()
		}
	case "i":
		if m.currentView == ViewInput && m.store.Mode == analysis.ModeText && !m.textFocused() {
			return m, m.input.Focus()
		}
	}

	return m.updateComponents(msg)
}

func (m *Model) textFocused() bool {
	return m.store.Mode == analysis.ModeText && m.input.Focused()
}

func (m *Model) nextMode() analysis.InputMode {
	for i, mode := range modeTabs {
		if mode == m.store.Mode {
			return modeTabs[(i+1)%len(modeTabs)]
		}
	}
	return analysis.ModePDF
}

func (m *Model) switchMode(mode analysis.InputMode) (tea.Model, tea.Cmd) {
	m.store.SelectMode(mode)
	m.selectedIndex = 0
	m.input.SetValue("")
	m.input.Blur()

	if mode.AcceptsFile() {
		m.picker = m.newPicker(mode)
		m.picker.Height = max(5, m.height-14)
		return m, m.picker.Init()
	}
	return m, m.input.Focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if !m.store.BeginSubmit() {
		return m, nil
	}
	m.currentView = ViewAnalyzing
	return m, tea.Batch(
		m.spin.Tick,
		CreateAnalysisCommand(m.client, m.store.Mode, m.store.FilePath, m.store.Text),
	)
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.currentView == ViewInput && m.store.Mode.AcceptsFile() && m.store.FilePath == "" {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)

		if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
			m.store.SelectFile(path, filepath.Base(path))
		}
	}

	if m.currentView == ViewInput && m.store.Mode == analysis.ModeText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.store.SetText(m.input.Value())
	}

	return m, tea.Batch(cmds...)
}

// View renders the app.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewAnalyzing:
		return m.renderAnalyzing()
	case ViewResults:
		return m.renderResults()
	default:
		return m.renderInput()
	}
}

func (m *Model) renderTabs() string {
	labels := map[analysis.InputMode]string{
		analysis.ModePDF:   "1 PDF",
		analysis.ModeImage: "2 Image",
		analysis.ModeText:  "3 Paste Text",
	}

	tabs := make([]string, 0, len(modeTabs))
	for _, mode := range modeTabs {
		style := lipgloss.NewStyle().Foreground(m.secondaryColor).Padding(0, 2)
		if mode == m.store.Mode {
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		}
		tabs = append(tabs, style.Render(labels[mode]))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderInput() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render("CertifyAI Document Analysis")

	var body string
	switch {
	case m.store.Mode.AcceptsFile() && m.store.FilePath == "":
		hint := "Pick a file to analyze"
		if m.store.Mode == analysis.ModeImage {
			hint = "Pick a PNG or JPEG to analyze"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(m.secondaryColor).Render(hint),
			"",
			m.picker.View(),
		)
	case m.store.Mode.AcceptsFile():
		selected := lipgloss.NewStyle().Foreground(m.successColor).
			Render("Selected: " + m.store.FileName)
		body = lipgloss.JoinVertical(lipgloss.Left,
			selected,
			"",
			lipgloss.NewStyle().Foreground(m.secondaryColor).
				Render("Enter to analyze • Backspace to pick another file"),
		)
	default:
		submitHint := "Ctrl+S to analyze"
		if !m.input.Focused() {
			submitHint = "i to edit • Ctrl+S to analyze"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.input.View(),
			"",
			lipgloss.NewStyle().Foreground(m.secondaryColor).Render(submitHint),
		)
	}

	sections := []string{title, "", m.renderTabs(), "", body}

	if m.store.ErrMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(m.errorColor).Bold(true).Render(m.store.ErrMsg))
	}
	if m.store.Report != nil {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(m.secondaryColor).
				Render("Previous result available • Enter on Results view"))
	}

	sections = append(sections, "",
		lipgloss.NewStyle().Foreground(m.secondaryColor).
			Render("Tab to switch input • q to quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(min(m.width-4, 100))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderAnalyzing() string {
	target := m.store.FileName
	if m.store.Mode == analysis.ModeText {
		target = "pasted text"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render("CertifyAI"),
		"",
		fmt.Sprintf("%s Analyzing %s...", m.spin.View(), target),
		"",
		lipgloss.NewStyle().Foreground(m.secondaryColor).Render("This can take a moment"),
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(2, 4).
		Width(60)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) riskColor(level analysis.RiskLevel) lipgloss.AdaptiveColor {
	switch level {
	case analysis.RiskHigh:
		return m.errorColor
	case analysis.RiskMedium:
		return m.warningColor
	case analysis.RiskLow:
		return m.successColor
	default:
		return m.secondaryColor
	}
}

func (m *Model) renderResults() string {
	report := m.store.Report
	if report == nil {
		return m.renderInput()
	}

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render("Risk Assessment")

	summary := lipgloss.NewStyle().
		Width(min(m.width-12, 92)).
		Render(report.Summary)

	cards := make([]string, 0, len(report.RiskItems)*2)
	for i, item := range report.RiskItems {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(m.riskColor(item.RiskLevel))
		if i == m.selectedIndex {
			prefix = "▶ "
			style = style.Background(m.selectedColor).Bold(true)
		}

		cards = append(cards, style.Render(
			fmt.Sprintf("%s[%s] %s", prefix, item.RiskLevel, item.ClauseSummary)))

		if i == m.selectedIndex {
			detail := item.Explanation
			if item.ActionSuggestion != "" {
				detail += "\n    Suggested: " + item.ActionSuggestion
			}
			cards = append(cards, lipgloss.NewStyle().
				Foreground(m.secondaryColor).
				Width(min(m.width-12, 92)).
				Render("    "+detail))
		}
	}
	if len(report.RiskItems) == 0 {
		cards = append(cards, lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render("No clause-level findings"))
	}

	sections := []string{title, "", summary, "", strings.Join(cards, "\n")}

	if len(report.ActionsTaken) > 0 {
		actions := make([]string, 0, len(report.ActionsTaken)+1)
		actions = append(actions, lipgloss.NewStyle().
			Foreground(m.primaryColor).Bold(true).Render("Actions Taken"))
		for _, action := range report.ActionsTaken {
			actions = append(actions, "• "+action)
		}
		sections = append(sections, "", strings.Join(actions, "\n"))
	}

	sections = append(sections, "",
		lipgloss.NewStyle().Foreground(m.secondaryColor).
			Render("↑↓ Navigate • Esc Back • q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.riskColor(report.HighestRisk())).
		Padding(1, 3).
		Width(min(m.width-4, 100))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// Run starts the interactive app and blocks until it exits.
func Run(c *client.Client, store *Store) error {
	model := NewModel(c, store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
