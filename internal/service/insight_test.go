package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/shayari/shayari-go/internal/ai"
	"github.com/shayari/shayari-go/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	goodCompliment  = "क्या बात है! बहुत सुंदर।"
	goodMood        = `{"mood":"nostalgic","analysis":"यादों की ख़ुशबू","themes":["memory","home"]}`
	goodSuggestions = `{"suggestions":["बचपन पर लिखें","गाँव की गलियाँ","पुराने ख़त"]}`
)

type fakeInsightClient struct {
	compliment  func(ctx context.Context) (string, error)
	mood        func(ctx context.Context) (string, error)
	suggestions func(ctx context.Context) (string, error)
	calls       atomic.Int32
}

func (f *fakeInsightClient) Compliment(ctx context.Context, _, _ string) (string, error) {
	f.calls.Add(1)
	return f.compliment(ctx)
}

func (f *fakeInsightClient) MoodAnalysis(ctx context.Context, _, _ string) (string, error) {
	f.calls.Add(1)
	return f.mood(ctx)
}

func (f *fakeInsightClient) Suggestions(ctx context.Context, _, _ string) (string, error) {
	f.calls.Add(1)
	return f.suggestions(ctx)
}

func returns(text string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return text, nil }
}

func fails(kind ai.Kind) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		return "", &ai.GenerationError{Op: "test", Kind: kind, Err: errors.New("upstream")}
	}
}

func healthyClient() *fakeInsightClient {
	return &fakeInsightClient{
		compliment:  returns(goodCompliment),
		mood:        returns(goodMood),
		suggestions: returns(goodSuggestions),
	}
}

var validInsightRequest = model.InsightRequest{Title: "यादें", Content: "वो गलियाँ, वो आँगन"}

func TestInsightService_AllSucceed(t *testing.T) {
	svc := NewInsightService(healthyClient())

	got, err := svc.Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)

	want := model.InsightBundle{
		Compliment: goodCompliment,
		MoodAnalysis: &model.MoodAnalysis{
			Mood:     "nostalgic",
			Analysis: "यादों की ख़ुशबू",
			Themes:   []string{"memory", "home"},
		},
		Suggestions: []string{"बचपन पर लिखें", "गाँव की गलियाँ", "पुराने ख़त"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestInsightService_Validation(t *testing.T) {
	client := healthyClient()
	svc := NewInsightService(client)

	_, err := svc.Generate(context.Background(), model.InsightRequest{Title: "  ", Content: "x"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ErrTitleRequired, err)

	_, err = svc.Generate(context.Background(), model.InsightRequest{Title: "x", Content: "\n"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ErrContentRequired, err)

	assert.Zero(t, client.calls.Load(), "no generation call on invalid input")
}

// Every combination of failing calls yields a complete bundle in which exactly
// the failed parts are fallbacks.
func TestInsightService_FailureCombinations(t *testing.T) {
	good := healthyClient()
	okBundle, err := NewInsightService(good).Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)

	for mask := 0; mask < 8; mask++ {
		failCompliment := mask&1 != 0
		failMood := mask&2 != 0
		failSuggestions := mask&4 != 0

		client := healthyClient()
		want := okBundle
		if failCompliment {
			client.compliment = fails(ai.KindRateLimited)
			want.Compliment = FallbackCompliment
		}
		if failMood {
			client.mood = fails(ai.KindNetwork)
			m := FallbackMoodAnalysis()
			want.MoodAnalysis = &m
		}
		if failSuggestions {
			client.suggestions = fails(ai.KindUnavailable)
			want.Suggestions = FallbackSuggestions()
		}

		got, err := NewInsightService(client).Generate(context.Background(), validInsightRequest)
		require.NoError(t, err, "mask %03b", mask)
		assert.Equal(t, int32(3), client.calls.Load(), "mask %03b", mask)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mask %03b mismatch (-want +got):\n%s", mask, diff)
		}
	}
}

func TestInsightService_MalformedOutputFallsBack(t *testing.T) {
	client := healthyClient()
	client.mood = returns("The mood is sad.")
	client.suggestions = returns(`{"suggestions":[]}`)

	got, err := NewInsightService(client).Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)

	assert.Equal(t, goodCompliment, got.Compliment)
	require.NotNil(t, got.MoodAnalysis)
	assert.Equal(t, FallbackMoodAnalysis(), *got.MoodAnalysis)
	assert.Equal(t, FallbackSuggestions(), got.Suggestions)
}

func TestInsightService_FencedJSONAccepted(t *testing.T) {
	client := healthyClient()
	client.mood = returns("```json\n" + goodMood + "\n```")

	got, err := NewInsightService(client).Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)
	assert.Equal(t, "nostalgic", got.MoodAnalysis.Mood)
}

func TestInsightService_RunsConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := func(text string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			inFlight.Add(-1)
			return text, nil
		}
	}

	client := &fakeInsightClient{
		compliment:  slow(goodCompliment),
		mood:        slow(goodMood),
		suggestions: slow(goodSuggestions),
	}

	_, err := NewInsightService(client).Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1), "calls should overlap")
}

func TestInsightService_TimeoutDegradesSlowCall(t *testing.T) {
	client := healthyClient()
	client.suggestions = func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", &ai.GenerationError{Op: "suggestions", Kind: ai.KindNetwork, Err: ctx.Err()}
	}

	svc := NewInsightService(client, WithInsightTimeout(20*time.Millisecond))
	got, err := svc.Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)

	assert.Equal(t, goodCompliment, got.Compliment)
	assert.Equal(t, "nostalgic", got.MoodAnalysis.Mood)
	assert.Equal(t, FallbackSuggestions(), got.Suggestions)
}

func TestInsightService_CachesOnlyCompleteBundles(t *testing.T) {
	client := healthyClient()
	svc := NewInsightService(client, WithInsightCache(8))

	first, err := svc.Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), model.InsightRequest{
		Title:   " " + validInsightRequest.Title + " ",
		Content: validInsightRequest.Content,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), client.calls.Load(), "second request served from cache")
	assert.Equal(t, first, second)

	second.Suggestions[0] = "mutated"
	third, err := svc.Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", third.Suggestions[0], "cached bundle must not be shared")

	degraded := healthyClient()
	degraded.mood = fails(ai.KindUnavailable)
	svc = NewInsightService(degraded, WithInsightCache(8))
	for i := 0; i < 2; i++ {
		_, err := svc.Generate(context.Background(), validInsightRequest)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(6), degraded.calls.Load(), "bundles with fallbacks are not cached")
}

func TestInsightService_OfflineGeneratorYieldsAllFallbacks(t *testing.T) {
	svc := NewInsightService(ai.NewClient(ai.OfflineGenerator{}))

	got, err := svc.Generate(context.Background(), validInsightRequest)
	require.NoError(t, err)

	want := model.InsightBundle{
		Compliment:   FallbackCompliment,
		MoodAnalysis: func() *model.MoodAnalysis { m := FallbackMoodAnalysis(); return &m }(),
		Suggestions:  FallbackSuggestions(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInsightKey(t *testing.T) {
	assert.Equal(t, insightKey("a", "b"), insightKey("a", "b"))
	assert.NotEqual(t, insightKey("ab", "c"), insightKey("a", "bc"))
	assert.Len(t, insightKey("a", "b"), 64)
}
