// Package client implements the HTTP client for the CertifyAI analysis
// backend. One POST per analysis, no retries, no request de-duplication;
// callers guard concurrency by not submitting while a request is in flight.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/certifyai/certify/internal/analysis"
)

// Input is the tagged union over the three input channels. Exactly one of
// the payload fields is meaningful, selected by Mode: Path/Name for PDF and
// Image, Text for pasted text.
type Input struct {
	Mode analysis.InputMode
	Name string
	Data io.Reader
	Text string
}

// TextInput builds an Input carrying pasted text.
func TextInput(text string) Input {
	return Input{Mode: analysis.ModeText, Text: text}
}

// FileInput builds an Input carrying a document file.
func FileInput(mode analysis.InputMode, name string, data io.Reader) Input {
	return Input{Mode: mode, Name: name, Data: data}
}

// Client issues analysis requests against one fixed backend address.
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates an analysis client.
func New(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Analyze dispatches on the input mode. Validation failures return before
// any network traffic.
func (c *Client) Analyze(ctx context.Context, input Input) (*analysis.Report, error) {
	switch input.Mode {
	case analysis.ModePDF, analysis.ModeImage:
		if input.Data == nil || input.Name == "" {
			return nil, newError(ErrTypeValidation, "Please choose a file to analyze.")
		}
		return c.AnalyzeFile(ctx, input.Mode, input.Name, input.Data)
	case analysis.ModeText:
		if strings.TrimSpace(input.Text) == "" {
			return nil, newError(ErrTypeValidation, "Please paste some text to analyze.")
		}
		return c.AnalyzeText(ctx, input.Text)
	default:
		return nil, newError(ErrTypeValidation, fmt.Sprintf("unsupported input mode %q", input.Mode))
	}
}

// AnalyzeText submits pasted text to /analyze-text.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*analysis.Report, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to marshal request", err)
	}

	endpoint := c.baseURL.JoinPath("/analyze-text")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// AnalyzeFile submits a document as multipart content to the mode-specific
// endpoint: /analyze-pdf or /analyze-image.
func (c *Client) AnalyzeFile(ctx context.Context, mode analysis.InputMode, name string, data io.Reader) (*analysis.Report, error) {
	if !mode.AcceptsFile() {
		return nil, newError(ErrTypeValidation, fmt.Sprintf("mode %q does not accept files", mode))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to build multipart body", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to read file", err)
	}
	if err := writer.Close(); err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to finalize multipart body", err)
	}

	path := "/analyze-pdf"
	if mode == analysis.ModeImage {
		path = "/analyze-image"
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeInternal, "failed to create request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

// HealthCheck verifies backend connectivity.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), http.NoBody)
	if err != nil {
		return newErrorWithCause(ErrTypeInternal, "failed to create health check request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return newErrorWithCause(ErrTypeNetwork, "health check failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:       ErrTypeServer,
			Message:    fmt.Sprintf("health check failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}

// do performs the round trip and normalizes the response into a Report or
// a ClientError. A non-2xx body carrying {"error": ...} surfaces that
// message verbatim; everything else falls back to the generic category.
func (c *Client) do(req *http.Request) (*analysis.Report, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeNetwork, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newErrorWithCause(ErrTypeNetwork, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp wireError
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, &ClientError{
				Type:       ErrTypeServer,
				Message:    errResp.Error,
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &ClientError{
			Type:       ErrTypeDecode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var wire wireReport
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, newErrorWithCause(ErrTypeDecode, "failed to decode response", err)
	}

	return wire.toReport(), nil
}
