package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/shayari/shayari-go/internal/ai"
	"github.com/shayari/shayari-go/internal/model"
)

// InsightClient produces the raw text of the three insight prompts.
// *ai.Client satisfies it.
type InsightClient interface {
	Compliment(ctx context.Context, title, body string) (string, error)
	MoodAnalysis(ctx context.Context, title, body string) (string, error)
	Suggestions(ctx context.Context, title, body string) (string, error)
}

// InsightOption configures an InsightService.
type InsightOption func(*InsightService)

// WithInsightTimeout bounds the whole fan-out. Calls still running when it
// expires degrade to their fallback.
func WithInsightTimeout(d time.Duration) InsightOption {
	return func(s *InsightService) { s.timeout = d }
}

// WithInsightCache keeps up to size fully generated bundles in memory.
// A size <= 0 disables caching.
func WithInsightCache(size int) InsightOption {
	return func(s *InsightService) {
		if size <= 0 {
			s.cache = nil
			return
		}
		c, err := lru.New[string, model.InsightBundle](size)
		if err != nil {
			s.logger.Warn("insight cache disabled", "error", err)
			return
		}
		s.cache = c
	}
}

// WithInsightLogger sets the logger used for degraded fields.
func WithInsightLogger(l *slog.Logger) InsightOption {
	return func(s *InsightService) { s.logger = l }
}

// InsightService aggregates compliment, mood analysis and suggestions for a poem.
type InsightService struct {
	client  InsightClient
	timeout time.Duration
	cache   *lru.Cache[string, model.InsightBundle]
	logger  *slog.Logger
}

// NewInsightService creates a new InsightService.
func NewInsightService(client InsightClient, opts ...InsightOption) *InsightService {
	s := &InsightService{client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type insightResult struct {
	raw string
	err error
}

// Generate runs the three insight calls concurrently and waits for all of them.
// A failed or unparsable call is replaced by its fallback, so the only errors
// returned are validation errors for an empty title or body.
func (s *InsightService) Generate(ctx context.Context, req model.InsightRequest) (model.InsightBundle, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Content)
	if title == "" {
		return model.InsightBundle{}, ErrTitleRequired
	}
	if body == "" {
		return model.InsightBundle{}, ErrContentRequired
	}

	key := insightKey(title, body)
	if s.cache != nil {
		if b, ok := s.cache.Get(key); ok {
			return cloneBundle(b), nil
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var compliment, mood, suggestions insightResult

	// Each goroutine reports its failure through its result and returns nil,
	// so Wait never cancels the siblings.
	var g errgroup.Group
	g.Go(func() error {
		compliment.raw, compliment.err = s.client.Compliment(ctx, title, body)
		return nil
	})
	g.Go(func() error {
		mood.raw, mood.err = s.client.MoodAnalysis(ctx, title, body)
		return nil
	})
	g.Go(func() error {
		suggestions.raw, suggestions.err = s.client.Suggestions(ctx, title, body)
		return nil
	})
	_ = g.Wait()

	degraded := 0

	bundle := model.InsightBundle{
		Compliment: NormalizeCompliment(compliment.raw, compliment.err),
	}
	if compliment.err != nil || strings.TrimSpace(compliment.raw) == "" {
		degraded++
		s.logDegraded(ctx, "compliment", compliment.err)
	}

	m, err := parseAfter(mood, ParseMoodAnalysis)
	if err != nil {
		degraded++
		s.logDegraded(ctx, "mood_analysis", err)
		m = FallbackMoodAnalysis()
	}
	bundle.MoodAnalysis = &m

	sugg, err := parseAfter(suggestions, ParseSuggestions)
	if err != nil {
		degraded++
		s.logDegraded(ctx, "suggestions", err)
		sugg = FallbackSuggestions()
	}
	bundle.Suggestions = sugg

	if s.cache != nil && degraded == 0 {
		s.cache.Add(key, cloneBundle(bundle))
	}

	return bundle, nil
}

func parseAfter[T any](r insightResult, parse func(string) (T, error)) (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return parse(r.raw)
}

func (s *InsightService) logDegraded(ctx context.Context, field string, err error) {
	attrs := []any{"field", field}

	var genErr *ai.GenerationError
	var parseErr *ParseError
	switch {
	case errors.As(err, &genErr):
		attrs = append(attrs, "kind", string(genErr.Kind), "error", err)
	case errors.As(err, &parseErr):
		attrs = append(attrs, "kind", "parse", "error", err)
	case err != nil:
		attrs = append(attrs, "error", err)
	default:
		attrs = append(attrs, "kind", string(ai.KindEmptyResponse))
	}

	s.logger.WarnContext(ctx, "insight degraded to fallback", attrs...)
}

func insightKey(title, body string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + body))
	return hex.EncodeToString(sum[:])
}

func cloneBundle(b model.InsightBundle) model.InsightBundle {
	out := model.InsightBundle{Compliment: b.Compliment}
	if b.MoodAnalysis != nil {
		m := *b.MoodAnalysis
		m.Themes = cloneStrings(b.MoodAnalysis.Themes)
		out.MoodAnalysis = &m
	}
	out.Suggestions = cloneStrings(b.Suggestions)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
