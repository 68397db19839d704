package analyst

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// geminiGenerator runs prompts against the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string, parts ...genai.Part) (string, error) {
	model := g.client.GenerativeModel(g.model)

	input := make([]genai.Part, 0, len(parts)+1)
	input = append(input, genai.Text(prompt))
	input = append(input, parts...)

	resp, err := model.GenerateContent(ctx, input...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}

	return b.String(), nil
}
