package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/certifyai/certify/internal/client"
	"github.com/fsnotify/fsnotify"
)

// newWatchTestBackend serves a canned analysis for pasted-text requests.
func newWatchTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-text" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(analyzeTestBody)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
}

// redirectOutputToFile points formatAndOutput at a temp file and restores
// the globals afterwards.
func redirectOutputToFile(t *testing.T) string {
	t.Helper()
	outFile := filepath.Join(t.TempDir(), "report.json")
	prevFormat, prevOutput := outputFmt, analyzeOutputFile
	outputFmt = "json"
	analyzeOutputFile = outFile
	t.Cleanup(func() {
		outputFmt = prevFormat
		analyzeOutputFile = prevOutput
	})
	return outFile
}

func TestAnalyzeWatchedFileTextDocument(t *testing.T) {
	srv := newWatchTestBackend(t)
	defer srv.Close()

	c, err := client.New(&client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("client.New() error: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(path, []byte("The tenant agrees to pay."), 0o600); err != nil {
		t.Fatal(err)
	}

	outFile := redirectOutputToFile(t)

	if err := analyzeWatchedFile(c, path); err != nil {
		t.Fatalf("analyzeWatchedFile() error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), "A short lease agreement.") {
		t.Errorf("output missing summary:\n%s", data)
	}
}

func TestRunWatchLoopReanalyzesOnWrite(t *testing.T) {
	srv := newWatchTestBackend(t)
	defer srv.Close()

	c, err := client.New(&client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("client.New() error: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(path, []byte("Initial draft."), 0o600); err != nil {
		t.Fatal(err)
	}

	outFile := redirectOutputToFile(t)

	prevDebounce := watchDebounce
	watchDebounce = 50 * time.Millisecond
	defer func() { watchDebounce = prevDebounce }()

	watcher, err := createWatcher(path)
	if err != nil {
		t.Fatalf("createWatcher() error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- runWatchLoop(watcher, c, path) }()

	// Give the loop a moment to start, then save the draft
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("Revised draft."), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	analyzed := false
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(outFile); err == nil && strings.Contains(string(data), "A short lease agreement.") {
			analyzed = true
			break
		}
		time.Sleep(25 * time.Millisecond)
	}
	if !analyzed {
		t.Error("watch loop never re-analyzed the saved file")
	}

	if err := watcher.Close(); err != nil {
		t.Fatalf("closing watcher: %v", err)
	}
	if err := <-done; err == nil {
		t.Error("loop should report the closed watcher")
	}
}

func TestWatchEventTouchesFile(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		file  string
		want  bool
	}{
		{"write to watched file", fsnotify.Event{Name: "docs/draft.txt", Op: fsnotify.Write}, "docs/draft.txt", true},
		{"create replaces watched file", fsnotify.Event{Name: "docs/draft.txt", Op: fsnotify.Create}, "docs/draft.txt", true},
		{"rename of watched file", fsnotify.Event{Name: "docs/draft.txt", Op: fsnotify.Rename}, "docs/draft.txt", true},
		{"chmod ignored", fsnotify.Event{Name: "docs/draft.txt", Op: fsnotify.Chmod}, "docs/draft.txt", false},
		{"sibling file ignored", fsnotify.Event{Name: "docs/other.txt", Op: fsnotify.Write}, "docs/draft.txt", false},
		{"unclean path still matches", fsnotify.Event{Name: "docs//draft.txt", Op: fsnotify.Write}, "docs/draft.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watchEventTouchesFile(tt.event, tt.file); got != tt.want {
				t.Errorf("watchEventTouchesFile(%v, %q) = %v, want %v", tt.event, tt.file, got, tt.want)
			}
		})
	}
}

func TestValidateWatchFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(file, []byte("clause"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(dir, "nope.txt"), true},
		{"directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWatchFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
