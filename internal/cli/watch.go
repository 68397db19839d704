package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/certifyai/certify/internal/client"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a document whenever it changes",
		Long: `Monitor a document file and re-run the risk analysis whenever it is saved.

Useful while negotiating a contract: keep the draft open in an editor and watch
the risk assessment update on every save. Press Ctrl+C to stop watching.

Examples:
  certify watch contract.pdf
  certify watch -o markdown draft.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "wait this long after the last change before re-analyzing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	cfg := GetGlobalConfig()
	c, err := client.New(cfg.ClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	watcher, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	// Analyze the current contents once before waiting for changes
	if err := analyzeWatchedFile(c, filename); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	return runWatchLoop(watcher, c, filename)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory rather than the file itself so editors that
	// replace the file on save do not drop the watch
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return watcher, nil
}

// setupFileWatcher creates and configures the file watcher
func setupFileWatcher(filename string) (*fsnotify.Watcher, func(), error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file does not exist: %s", filename)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		cleanupWatcher(watcher)
	}

	return watcher, cleanup, nil
}

// runWatchLoop runs the main watch loop with signal handling and debounced
// re-analysis
func runWatchLoop(watcher *fsnotify.Watcher, c *client.Client, filename string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case <-debounce.C:
			if pending {
				pending = false
				if err := analyzeWatchedFile(c, filename); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
				}
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if watchEventTouchesFile(event, filename) {
				pending = true
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// watchEventTouchesFile reports whether an event concerns the watched file
func watchEventTouchesFile(event fsnotify.Event, filename string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(filename) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// analyzeWatchedFile runs one analysis pass over the current file contents
func analyzeWatchedFile(c *client.Client, filename string) error {
	input, cleanup, err := resolveFileInput(filename)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), GetGlobalConfig().Backend.Timeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "[%s] Analyzing %s...\n", time.Now().Format("15:04:05"), filepath.Base(filename))

	report, err := c.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("%s", client.UserMessage(err))
	}

	return formatAndOutput(report)
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
