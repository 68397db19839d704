package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/certifyai/certify/internal/analysis"
)

const analyzeTestBody = `{
	"analysis": {
		"summary": "A short lease agreement.",
		"risk_analysis": [
			{
				"clause_summary": "Early termination fee",
				"risk_level": "High",
				"explanation": "Three months rent due on early exit.",
				"action_suggestion": "Negotiate a lower fee."
			}
		]
	},
	"actions_taken": ["Analysis saved to vault."]
}`

func TestRunAnalyzeEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-text" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(analyzeTestBody)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	t.Setenv("CERTIFY_BACKEND_URL", srv.URL)

	outFile := filepath.Join(t.TempDir(), "report.json")
	root := NewRootCommand("test", "none", "unknown")
	root.SetArgs([]string{"analyze", "--text", "The tenant agrees to pay.", "-o", "json", "--output-file", outFile})

	if err := root.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	output := string(data)
	for _, want := range []string{"A short lease agreement.", "Early termination fee", `"highest_risk": "High"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"terminal", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"md", false},
		{"csv", true},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			f, err := getFormatter(tt.format, false)
			if tt.wantErr {
				if err == nil {
					t.Errorf("getFormatter(%q) expected error", tt.format)
				}
				return
			}
			if err != nil {
				t.Errorf("getFormatter(%q) error: %v", tt.format, err)
			}
			if f == nil {
				t.Errorf("getFormatter(%q) returned nil formatter", tt.format)
			}
		})
	}
}

func TestResolveFileMode(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		path       string
		wantMode   analysis.InputMode
		wantUpload bool
		wantErr    bool
	}{
		{name: "pdf extension", path: "contract.pdf", wantMode: analysis.ModePDF, wantUpload: true},
		{name: "png extension", path: "scan.png", wantMode: analysis.ModeImage, wantUpload: true},
		{name: "jpeg extension", path: "scan.JPEG", wantMode: analysis.ModeImage, wantUpload: true},
		{name: "txt falls back to text", path: "notes.txt", wantMode: analysis.ModeText, wantUpload: false},
		{name: "flag overrides extension", flag: "image", path: "weird.bin", wantMode: analysis.ModeImage, wantUpload: true},
		{name: "text flag reads file contents", flag: "text", path: "contract.pdf", wantMode: analysis.ModeText, wantUpload: false},
		{name: "bad flag", flag: "spreadsheet", path: "a.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzeMode = tt.flag
			defer func() { analyzeMode = "" }()

			mode, upload, err := resolveFileMode(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", mode, tt.wantMode)
			}
			if upload != tt.wantUpload {
				t.Errorf("upload = %v, want %v", upload, tt.wantUpload)
			}
		})
	}
}

func TestResolveInputFromTextFlag(t *testing.T) {
	analyzeText = "some clause text"
	defer func() { analyzeText = "" }()

	input, cleanup, err := resolveInput(nil)
	if err != nil {
		t.Fatalf("resolveInput() error: %v", err)
	}
	if cleanup != nil {
		t.Error("text input should not need cleanup")
	}
	if input.Mode != analysis.ModeText {
		t.Errorf("mode = %v, want text", input.Mode)
	}
	if input.Text != "some clause text" {
		t.Errorf("text = %q", input.Text)
	}
}

func TestResolveFileInputUnknownExtensionReadsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(path, []byte("clause body"), 0o600); err != nil {
		t.Fatal(err)
	}

	input, cleanup, err := resolveFileInput(path)
	if err != nil {
		t.Fatalf("resolveFileInput() error: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	if input.Mode != analysis.ModeText {
		t.Errorf("mode = %v, want text", input.Mode)
	}
	if input.Text != "clause body" {
		t.Errorf("text = %q, want file contents", input.Text)
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"missing file", filepath.Join(dir, "nope.pdf"), true},
		{"directory", dir, true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestShouldUseTUIRespectsFlags(t *testing.T) {
	analyzeNoTUI = true
	defer func() { analyzeNoTUI = false }()
	if shouldUseTUI(nil) {
		t.Error("--no-tui should disable the TUI")
	}

	analyzeNoTUI = false
	if shouldUseTUI([]string{"contract.pdf"}) {
		t.Error("a file argument should disable the TUI")
	}

	analyzeText = "pasted"
	defer func() { analyzeText = "" }()
	if shouldUseTUI(nil) {
		t.Error("--text should disable the TUI")
	}
}

func TestWriteOutputBytesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := writeOutputBytesToFile([]byte("# Report\n"), path); err != nil {
		t.Fatalf("writeOutputBytesToFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Report\n" {
		t.Errorf("file contents = %q", data)
	}
}
