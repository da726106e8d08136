package ai

import (
	"context"
	"fmt"
	"strings"
)

const complimentPrompt = `You are a poetry expert and critic who appreciates Shayari (Urdu/Hindi poetry).
Please provide a warm, encouraging compliment for this Shayari in Hindi/Urdu style.
Keep it brief (1-2 sentences) and focus on the emotional depth, word choice, or imagery.

Title: %s
Content: %s

Respond in Hindi/Urdu with English translation in parentheses.`

const moodPrompt = `Analyze the mood and emotions in this Shayari. Provide:
1. Primary mood (romantic, sad, happy, nostalgic, philosophical, motivational)
2. Brief emotional analysis (2-3 sentences in Hindi/English mix)
3. Key emotional themes

Title: %s
Content: %s

Respond in JSON format:
{
  "mood": "primary_mood",
  "analysis": "emotional analysis text",
  "themes": ["theme1", "theme2", "theme3"]
}`

const suggestionsPrompt = `Based on this Shayari, provide 3 creative suggestions for the poet:
1. A related theme to explore next
2. A poetic technique to try
3. An inspirational writing prompt

Title: %s
Content: %s

Respond in JSON format with Hindi/Urdu suggestions:
{
  "suggestions": [
    "suggestion 1 in Hindi/Urdu",
    "suggestion 2 in Hindi/Urdu",
    "suggestion 3 in Hindi/Urdu"
  ]
}`

// Client issues the three insight prompts against a TextGenerator.
// It never retries; every failure is returned as a *GenerationError.
type Client struct {
	gen TextGenerator
}

// NewClient creates a Client backed by gen.
func NewClient(gen TextGenerator) *Client {
	return &Client{gen: gen}
}

// Compliment asks for a short complimentary remark about the poem.
func (c *Client) Compliment(ctx context.Context, title, body string) (string, error) {
	return c.run(ctx, "compliment", complimentPrompt, false, title, body)
}

// MoodAnalysis asks for a JSON {mood, analysis, themes} object.
func (c *Client) MoodAnalysis(ctx context.Context, title, body string) (string, error) {
	return c.run(ctx, "mood_analysis", moodPrompt, true, title, body)
}

// Suggestions asks for a JSON {suggestions: [...]} object.
func (c *Client) Suggestions(ctx context.Context, title, body string) (string, error) {
	return c.run(ctx, "suggestions", suggestionsPrompt, true, title, body)
}

func (c *Client) run(ctx context.Context, op, tmpl string, asJSON bool, title, body string) (string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return "", &GenerationError{Op: op, Kind: KindInvalidRequest, Err: fmt.Errorf("title and content are required")}
	}

	text, err := c.gen.Generate(ctx, Prompt{Text: fmt.Sprintf(tmpl, title, body), JSON: asJSON})
	if err != nil {
		return "", &GenerationError{Op: op, Kind: classify(err), Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Op: op, Kind: KindEmptyResponse, Err: ErrEmptyResponse}
	}
	return text, nil
}
