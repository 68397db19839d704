package ui

import (
	"strings"

	"github.com/certifyai/certify/internal/analysis"
)

// Store owns the view state: the active input mode, the selected input, the
// in-flight flag, and the last result or error. It is not a singleton; the
// app creates one per session and is the only writer. Result and error are
// mutually exclusive by construction.
type Store struct {
	Mode     analysis.InputMode
	FilePath string
	FileName string
	Text     string
	Loading  bool
	ErrMsg   string
	Report   *analysis.Report
}

// NewStore creates a store with PDF as the initial mode.
func NewStore() *Store {
	return &Store{Mode: analysis.ModePDF}
}

// SelectMode activates a mode and discards any unsubmitted input along with
// the previous result and error. Re-selecting the current mode clears too.
func (s *Store) SelectMode(mode analysis.InputMode) {
	s.Mode = mode
	s.FilePath = ""
	s.FileName = ""
	s.Text = ""
	s.Report = nil
	s.ErrMsg = ""
}

// SelectFile stores the chosen file. Only meaningful for PDF/Image modes;
// a prior result stays visible until the next submission.
func (s *Store) SelectFile(path, name string) bool {
	if !s.Mode.AcceptsFile() {
		return false
	}
	s.FilePath = path
	s.FileName = name
	return true
}

// SetText stores pasted text as-is; trimming happens only at submit time.
func (s *Store) SetText(text string) bool {
	if s.Mode != analysis.ModeText {
		return false
	}
	s.Text = text
	return true
}

// BeginSubmit validates the current input. On a validation failure it sets
// the error and reports false without touching the loading flag, so no
// network call happens. Otherwise it enters the loading state and clears
// both error and result.
func (s *Store) BeginSubmit() bool {
	if s.Loading {
		return false
	}

	switch {
	case s.Mode.AcceptsFile() && s.FilePath == "":
		s.ErrMsg = "Please choose a file to analyze."
		return false
	case s.Mode == analysis.ModeText && strings.TrimSpace(s.Text) == "":
		s.ErrMsg = "Please paste some text to analyze."
		return false
	}

	s.Loading = true
	s.ErrMsg = ""
	s.Report = nil
	return true
}

// FinishSuccess records a completed analysis.
func (s *Store) FinishSuccess(report *analysis.Report) {
	s.Loading = false
	s.Report = report
	s.ErrMsg = ""
}

// FinishFailure records a failed analysis.
func (s *Store) FinishFailure(msg string) {
	s.Loading = false
	s.Report = nil
	s.ErrMsg = msg
}

// CanSubmit reports whether the submit trigger should be enabled.
func (s *Store) CanSubmit() bool {
	return !s.Loading
}
