// Package analyst turns raw documents into structured risk assessments
// using a Gemini model.
package analyst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/logger"
	"github.com/google/generative-ai-go/genai"
)

var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrGenerationFailed  = errors.New("model generation failed")
	ErrMalformedAnalysis = errors.New("model returned malformed analysis")
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

// Generator produces model output for a prompt with optional attachments.
// It exists so tests can substitute a canned model.
type Generator interface {
	Generate(ctx context.Context, prompt string, parts ...genai.Part) (string, error)
}

// Result is a completed analysis: the parsed report plus the cleaned JSON
// exactly as the model produced it, for storage.
type Result struct {
	Report *analysis.Report
	Raw    json.RawMessage
}

// Analyst analyzes documents.
type Analyst struct {
	generator Generator
	log       *logger.Logger
}

// Option is a functional option for Analyst.
type Option func(*Analyst)

// WithGenerator sets the model generator.
func WithGenerator(g Generator) Option {
	return func(a *Analyst) {
		a.generator = g
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Analyst) {
		a.log = l
	}
}

// New creates an analyst.
func New(opts ...Option) *Analyst {
	a := &Analyst{
		log: logger.New("analyst", nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewGemini creates an analyst backed by a Gemini client.
func NewGemini(client *genai.Client, model string, opts ...Option) *Analyst {
	if model == "" {
		model = DefaultModel
	}
	all := append([]Option{WithGenerator(&geminiGenerator{client: client, model: model})}, opts...)
	return New(all...)
}

// AnalyzeText analyzes pasted or extracted document text.
func (a *Analyst) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	prompt := buildTextPrompt(text)
	return a.run(ctx, prompt.String())
}

// AnalyzeDocument analyzes an uploaded file. The raw bytes go to the model
// alongside the prompt; Gemini reads PDFs and images natively.
func (a *Analyst) AnalyzeDocument(ctx context.Context, mimeType string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	prompt := buildAttachmentPrompt()
	return a.run(ctx, prompt.String(), genai.Blob{MIMEType: mimeType, Data: data})
}

func (a *Analyst) run(ctx context.Context, prompt string, parts ...genai.Part) (*Result, error) {
	if a.generator == nil {
		return nil, errors.New("generator not set")
	}

	start := time.Now()
	output, err := a.generator.Generate(ctx, prompt, parts...)
	if err != nil {
		a.log.Error("generation failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	a.log.Debug("generation complete", logger.Duration(time.Since(start)))

	result, err := parseModelOutput(output)
	if err != nil {
		a.log.Error("failed to parse model output", logger.Err(err))
		return nil, err
	}

	return result, nil
}
