package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/client"
	"github.com/certifyai/certify/internal/formatter"
	"github.com/certifyai/certify/internal/logger"
	"github.com/certifyai/certify/internal/ui"
	"github.com/spf13/cobra"
)

var (
	analyzeText       string
	analyzeMode       string
	analyzeTimeout    time.Duration
	analyzeNoTUI      bool
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a document for risky clauses",
		Long: `Analyze a contract or other document for risky clauses.

Accepts a PDF file, a scanned image (PNG, JPEG, WebP), or raw text. The input
mode is inferred from the file extension unless --mode is given. With no file
argument, text is taken from --text or stdin. Run with no input in a terminal
to launch the interactive UI.

Examples:
  certify analyze contract.pdf
  certify analyze scan.png
  certify analyze --text "The tenant agrees to..."
  cat lease.txt | certify analyze
  certify analyze -o json contract.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeText, "text", "t", "", "analyze the given text instead of a file")
	cmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "input mode (pdf, image, text); inferred from the file extension by default")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", client.DefaultTimeout, "analysis timeout")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if !cmd.Flag("timeout").Changed {
		analyzeTimeout = cfg.Backend.Timeout
	}

	c, err := client.New(cfg.ClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if shouldUseTUI(args) {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Launching interactive terminal UI...\n")
		}
		return ui.Run(c, ui.NewStore())
	}

	input, cleanup, err := resolveInput(args)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	log := GetLogger("analyze")
	log.Debug("sending analysis request", logger.F("mode", input.Mode))

	start := time.Now()
	report, err := c.Analyze(ctx, input)
	if err != nil {
		log.Error("analysis failed", logger.Err(err))
		return errors.New(client.UserMessage(err))
	}
	log.Info("analysis complete", logger.Duration(time.Since(start)))

	return formatAndOutput(report)
}

// shouldUseTUI reports whether to launch the interactive UI. The UI only
// runs when there is no one-shot input and stdin is a terminal.
func shouldUseTUI(args []string) bool {
	if analyzeNoTUI || len(args) > 0 || analyzeText != "" {
		return false
	}
	if format := getOutputFormat(); format != "text" && format != "" {
		return false
	}
	return stdinIsTerminal()
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// resolveInput builds the analysis input from the file argument, the --text
// flag, or stdin, in that order of precedence.
func resolveInput(args []string) (client.Input, func(), error) {
	if len(args) > 0 {
		return resolveFileInput(args[0])
	}

	if analyzeText != "" {
		return client.TextInput(analyzeText), nil, nil
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Reading text from stdin...\n")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return client.Input{}, nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return client.TextInput(string(data)), nil, nil
}

func resolveFileInput(path string) (client.Input, func(), error) {
	if err := validateFilePath(path); err != nil {
		return client.Input{}, nil, fmt.Errorf("invalid file path: %w", err)
	}
	cleanPath := filepath.Clean(path)

	mode, isUpload, err := resolveFileMode(cleanPath)
	if err != nil {
		return client.Input{}, nil, err
	}

	// Anything that is not a PDF or an image goes to the backend as
	// pasted text
	if !isUpload {
		// #nosec G304 - path is validated above
		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return client.Input{}, nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Analyzing file: %s (text)\n", cleanPath)
		}
		return client.TextInput(string(data)), nil, nil
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(cleanPath)
	if err != nil {
		return client.Input{}, nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	cleanup := func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
		}
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Analyzing file: %s (%s)\n", cleanPath, mode)
	}

	return client.FileInput(mode, filepath.Base(cleanPath), file), cleanup, nil
}

// resolveFileMode picks the input mode from the --mode flag or the file
// extension. The second return value reports whether the file should be
// uploaded as-is rather than sent as text.
func resolveFileMode(path string) (analysis.InputMode, bool, error) {
	if analyzeMode != "" {
		mode, ok := analysis.ParseInputMode(analyzeMode)
		if !ok {
			return 0, false, fmt.Errorf("unknown mode %q (available: pdf, image, text)", analyzeMode)
		}
		return mode, mode.AcceptsFile(), nil
	}

	mode, ok := analysis.ModeForFile(path)
	return mode, ok, nil
}

// formatAndOutput formats the report and writes it to the configured
// destination
func formatAndOutput(report *analysis.Report) error {
	f, err := getFormatter(getOutputFormat(), colorEnabled())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(output)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte) error {
	if analyzeOutputFile == "" {
		fmt.Print(string(output))
		return nil
	}

	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string, color bool) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "text", "terminal", "":
		return formatter.NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
