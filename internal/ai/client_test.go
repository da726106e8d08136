package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type recordingGenerator struct {
	mu      sync.Mutex
	prompts []Prompt
	text    string
	err     error
}

func (g *recordingGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, p)
	return g.text, g.err
}

func TestClient_PromptsCarryTitleAndBody(t *testing.T) {
	gen := &recordingGenerator{text: "ok"}
	c := NewClient(gen)
	ctx := context.Background()

	_, err := c.Compliment(ctx, " रात ", "चाँद की रौशनी")
	require.NoError(t, err)
	_, err = c.MoodAnalysis(ctx, "रात", "चाँद की रौशनी")
	require.NoError(t, err)
	_, err = c.Suggestions(ctx, "रात", "चाँद की रौशनी")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 3)
	for _, p := range gen.prompts {
		assert.Contains(t, p.Text, "Title: रात\n")
		assert.Contains(t, p.Text, "Content: चाँद की रौशनी")
	}
	assert.False(t, gen.prompts[0].JSON, "compliment is free text")
	assert.True(t, gen.prompts[1].JSON)
	assert.True(t, gen.prompts[2].JSON)
	assert.True(t, strings.Contains(gen.prompts[1].Text, `"themes"`))
	assert.True(t, strings.Contains(gen.prompts[2].Text, `"suggestions"`))
}

func TestClient_EmptyInputIsInvalidRequest(t *testing.T) {
	gen := &recordingGenerator{text: "ok"}
	c := NewClient(gen)

	_, err := c.Compliment(context.Background(), "  ", "body")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindInvalidRequest, genErr.Kind)
	assert.Equal(t, "compliment", genErr.Op)
	assert.Empty(t, gen.prompts, "upstream must not be called")
}

func TestClient_EmptyResponse(t *testing.T) {
	c := NewClient(&recordingGenerator{text: " \n "})

	_, err := c.Suggestions(context.Background(), "t", "b")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindEmptyResponse, genErr.Kind)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"rate limited", genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"}, KindRateLimited},
		{"bad request", genai.APIError{Code: http.StatusBadRequest}, KindInvalidRequest},
		{"server error", genai.APIError{Code: http.StatusServiceUnavailable}, KindUnavailable},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"offline", ErrNoAPIKey, KindUnavailable},
		{"empty", ErrEmptyResponse, KindEmptyResponse},
		{"unknown", errors.New("boom"), KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(&recordingGenerator{err: tt.err})
			_, err := c.MoodAnalysis(context.Background(), "t", "b")

			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.want, genErr.Kind)
			assert.Equal(t, tt.err, genErr.Err)
		})
	}
}

func TestOfflineGenerator(t *testing.T) {
	c := NewClient(OfflineGenerator{})
	_, err := c.Compliment(context.Background(), "t", "b")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindUnavailable, genErr.Kind)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-2.0-flash")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
