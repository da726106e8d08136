package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shayari/shayari-go/internal/crypto"
	"github.com/shayari/shayari-go/internal/model"
	"github.com/shayari/shayari-go/internal/repository"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 1000

	// Column widths of poems.title and poems.mood, in characters.
	MaxTitleLength = 500
	MaxMoodLength  = 64
)

// PoemStore is the persistence the PoemService needs.
// *repository.PoemRepository satisfies it.
type PoemStore interface {
	Create(ctx context.Context, p *model.Poem) error
	Update(ctx context.Context, p *model.Poem, secret repository.SecretChange) error
	GetByID(ctx context.Context, ownerID, id string) (*model.Poem, error)
	List(ctx context.Context, ownerID string, f model.PoemFilter) ([]model.Poem, int, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
	Stats(ctx context.Context, ownerID string, since time.Time) (model.PoemStats, error)
}

// PoemService handles journal business logic. Every operation is scoped to
// the calling owner.
type PoemService struct {
	store PoemStore
	now   func() time.Time
}

// NewPoemService creates a new PoemService.
func NewPoemService(store PoemStore) *PoemService {
	return &PoemService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create validates req and stores a new poem owned by ownerID.
func (s *PoemService) Create(ctx context.Context, ownerID string, req model.PoemRequest) (model.PoemResponse, error) {
	if ownerID == "" {
		return model.PoemResponse{}, ErrUnauthorized
	}
	fields, err := validatePoem(req)
	if err != nil {
		return model.PoemResponse{}, err
	}

	now := s.now()
	p := &model.Poem{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Title:          fields.title,
		Body:           fields.body,
		Mood:           fields.mood,
		Tags:           normalizeTags(req.Tags),
		IsFavorite:     req.IsFavorite,
		IsSecret:       req.IsSecret,
		AICompliment:   req.AICompliment,
		AIMoodAnalysis: req.AIMoodAnalysis,
		AISuggestions:  req.AISuggestions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if p.IsSecret && req.SecretPassword != "" {
		hash, err := crypto.HashSecret(req.SecretPassword)
		if err != nil {
			return model.PoemResponse{}, fmt.Errorf("hashing passphrase: %w", err)
		}
		p.SecretHash = hash
	}

	if err := s.store.Create(ctx, p); err != nil {
		return model.PoemResponse{}, storageErr("create", err)
	}

	return toResponse(p), nil
}

// Update replaces the editable fields of the owner's poem id. AI fields are
// only replaced when present in req.
func (s *PoemService) Update(ctx context.Context, ownerID, id string, req model.PoemRequest) (model.PoemResponse, error) {
	if ownerID == "" {
		return model.PoemResponse{}, ErrUnauthorized
	}
	fields, err := validatePoem(req)
	if err != nil {
		return model.PoemResponse{}, err
	}

	p := &model.Poem{
		ID:             id,
		OwnerID:        ownerID,
		Title:          fields.title,
		Body:           fields.body,
		Mood:           fields.mood,
		Tags:           normalizeTags(req.Tags),
		IsFavorite:     req.IsFavorite,
		IsSecret:       req.IsSecret,
		AICompliment:   req.AICompliment,
		AIMoodAnalysis: req.AIMoodAnalysis,
		AISuggestions:  req.AISuggestions,
		UpdatedAt:      s.now(),
	}

	secret := repository.SecretKeep
	switch {
	case !req.IsSecret:
		secret = repository.SecretClear
	case req.SecretPassword != "":
		hash, err := crypto.HashSecret(req.SecretPassword)
		if err != nil {
			return model.PoemResponse{}, fmt.Errorf("hashing passphrase: %w", err)
		}
		p.SecretHash = hash
		secret = repository.SecretReplace
	}

	if err := s.store.Update(ctx, p, secret); err != nil {
		return model.PoemResponse{}, mapStoreErr("update", err)
	}

	// Re-read so the response carries fields the request left untouched.
	stored, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.PoemResponse{}, mapStoreErr("get", err)
	}
	return toResponse(stored), nil
}

// Get returns the owner's poem id.
func (s *PoemService) Get(ctx context.Context, ownerID, id string) (model.PoemResponse, error) {
	if ownerID == "" {
		return model.PoemResponse{}, ErrUnauthorized
	}
	p, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.PoemResponse{}, mapStoreErr("get", err)
	}
	return toResponse(p), nil
}

// List returns one page of the owner's poems matching f.
func (s *PoemService) List(ctx context.Context, ownerID string, f model.PoemFilter) (model.PoemListResponse, error) {
	if ownerID == "" {
		return model.PoemListResponse{}, ErrUnauthorized
	}

	f = normalizeFilter(f)
	poems, total, err := s.store.List(ctx, ownerID, f)
	if err != nil {
		return model.PoemListResponse{}, storageErr("list", err)
	}

	out := make([]model.PoemResponse, 0, len(poems))
	for i := range poems {
		out = append(out, toResponse(&poems[i]))
	}

	return model.PoemListResponse{
		Success:  true,
		Shayaris: out,
		Pagination: model.Pagination{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
			Pages: pageCount(total, f.Limit),
		},
	}, nil
}

// Delete removes the owner's poem id.
func (s *PoemService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrUnauthorized
	}
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return mapStoreErr("delete", err)
	}
	return nil
}

// DeleteAll removes every poem of the owner and returns how many were removed.
func (s *PoemService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrUnauthorized
	}
	n, err := s.store.DeleteAll(ctx, ownerID)
	if err != nil {
		return 0, storageErr("delete all", err)
	}
	return n, nil
}

// Stats returns the owner's totals. ThisMonth counts poems created since the
// start of the current UTC month.
func (s *PoemService) Stats(ctx context.Context, ownerID string) (model.PoemStats, error) {
	if ownerID == "" {
		return model.PoemStats{}, ErrUnauthorized
	}
	now := s.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.store.Stats(ctx, ownerID, since)
	if err != nil {
		return model.PoemStats{}, storageErr("stats", err)
	}
	return stats, nil
}

// Unlock checks passphrase against a secret poem and returns the poem when it
// matches. Poems that are not secret unlock without a passphrase.
func (s *PoemService) Unlock(ctx context.Context, ownerID, id, passphrase string) (model.PoemResponse, error) {
	if ownerID == "" {
		return model.PoemResponse{}, ErrUnauthorized
	}
	p, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.PoemResponse{}, mapStoreErr("get", err)
	}

	if !p.IsSecret || p.SecretHash == "" {
		return toResponse(p), nil
	}
	if passphrase == "" {
		return model.PoemResponse{}, ErrPassphraseRequired
	}

	ok, err := crypto.VerifySecret(passphrase, p.SecretHash)
	if err != nil {
		return model.PoemResponse{}, fmt.Errorf("verifying passphrase: %w", err)
	}
	if !ok {
		return model.PoemResponse{}, ErrInvalidPassphrase
	}
	return toResponse(p), nil
}

// poemFields holds the trimmed, length-checked text fields of a request.
type poemFields struct {
	title, body, mood string
}

func validatePoem(req model.PoemRequest) (poemFields, error) {
	f := poemFields{
		title: strings.TrimSpace(req.Title),
		body:  strings.TrimSpace(req.Content),
		mood:  strings.TrimSpace(req.Mood),
	}
	switch {
	case f.title == "":
		return poemFields{}, ErrTitleRequired
	case f.body == "":
		return poemFields{}, ErrContentRequired
	case utf8.RuneCountInString(f.title) > MaxTitleLength:
		return poemFields{}, ErrTitleTooLong
	case utf8.RuneCountInString(f.mood) > MaxMoodLength:
		return poemFields{}, ErrMoodTooLong
	}
	return f, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeFilter(f model.PoemFilter) model.PoemFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	f.Mood = strings.TrimSpace(f.Mood)
	f.Tag = strings.TrimSpace(f.Tag)
	f.Search = strings.TrimSpace(f.Search)
	return f
}

func pageCount(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func mapStoreErr(op string, err error) error {
	if errors.Is(err, repository.ErrPoemNotFound) {
		return ErrPoemNotFound
	}
	return storageErr(op, err)
}

// toResponse projects a stored poem onto its wire form. The passphrase hash
// has no field to land in.
func toResponse(p *model.Poem) model.PoemResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.PoemResponse{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Body,
		Mood:           p.Mood,
		Tags:           tags,
		IsFavorite:     p.IsFavorite,
		IsSecret:       p.IsSecret,
		AICompliment:   p.AICompliment,
		AIMoodAnalysis: p.AIMoodAnalysis,
		AISuggestions:  p.AISuggestions,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
