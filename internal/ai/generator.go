package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Prompt is a single request to a text model.
// JSON asks the model to answer with application/json.
type Prompt struct {
	Text string
	JSON bool
}

// TextGenerator turns a prompt into model text.
type TextGenerator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GeminiGenerator is a thin wrapper around the official genai client.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator creates a Gemini-backed generator for the given model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini:" + g.model }

// Generate sends one prompt and returns the concatenated text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	var cfg *genai.GenerateContentConfig
	if p.JSON {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(p.Text, genai.RoleUser)},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// OfflineGenerator is used when no model is configured. Every call fails, so
// callers fall back to their default values.
type OfflineGenerator struct{}

func (OfflineGenerator) Name() string { return "offline" }

func (OfflineGenerator) Generate(context.Context, Prompt) (string, error) {
	return "", ErrNoAPIKey
}
