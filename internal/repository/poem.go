package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shayari/shayari-go/internal/model"
)

var ErrPoemNotFound = errors.New("shayari not found")

// SecretChange says what Update does with the stored passphrase hash.
type SecretChange int

const (
	// SecretKeep leaves secret_hash as stored.
	SecretKeep SecretChange = iota
	// SecretReplace writes Poem.SecretHash.
	SecretReplace
	// SecretClear sets secret_hash to NULL.
	SecretClear
)

const poemColumns = `id, owner_id, title, body, mood, tags, is_favorite, is_secret, secret_hash,
	ai_compliment, ai_mood_analysis, ai_suggestions, created_at, updated_at`

// PoemRepository handles poem persistence. Every statement is scoped by owner_id.
type PoemRepository struct {
	db *sql.DB
}

// NewPoemRepository creates a new PoemRepository.
func NewPoemRepository(db *sql.DB) *PoemRepository {
	return &PoemRepository{db: db}
}

// Create inserts a new poem. The caller assigns ID and timestamps.
func (r *PoemRepository) Create(ctx context.Context, p *model.Poem) error {
	tags, err := jsonOrNull(p.Tags)
	if err != nil {
		return err
	}
	mood, err := jsonOrNull(p.AIMoodAnalysis)
	if err != nil {
		return err
	}
	suggestions, err := jsonOrNull(p.AISuggestions)
	if err != nil {
		return err
	}

	query := `INSERT INTO poems (` + poemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Body, p.Mood, tags,
		p.IsFavorite, p.IsSecret, nullString(p.SecretHash),
		p.AICompliment, mood, suggestions,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Update applies the editable fields of p to the row matching p.ID and p.OwnerID.
// Nil AI fields are left untouched. A row owned by someone else is reported as
// ErrPoemNotFound, exactly like a missing one.
func (r *PoemRepository) Update(ctx context.Context, p *model.Poem, secret SecretChange) error {
	tags, err := jsonOrNull(p.Tags)
	if err != nil {
		return err
	}

	sets := []string{"title = ?", "body = ?", "mood = ?", "tags = ?", "is_favorite = ?", "is_secret = ?"}
	args := []any{p.Title, p.Body, p.Mood, tags, p.IsFavorite, p.IsSecret}

	switch secret {
	case SecretReplace:
		sets = append(sets, "secret_hash = ?")
		args = append(args, nullString(p.SecretHash))
	case SecretClear:
		sets = append(sets, "secret_hash = NULL")
	}

	if p.AICompliment != nil {
		sets = append(sets, "ai_compliment = ?")
		args = append(args, *p.AICompliment)
	}
	if p.AIMoodAnalysis != nil {
		mood, err := json.Marshal(p.AIMoodAnalysis)
		if err != nil {
			return err
		}
		sets = append(sets, "ai_mood_analysis = ?")
		args = append(args, mood)
	}
	if p.AISuggestions != nil {
		suggestions, err := json.Marshal(p.AISuggestions)
		if err != nil {
			return err
		}
		sets = append(sets, "ai_suggestions = ?")
		args = append(args, suggestions)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, p.UpdatedAt, p.ID, p.OwnerID)

	query := `UPDATE poems SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND owner_id = ?`
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// GetByID retrieves a poem by ID, scoped to its owner.
func (r *PoemRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Poem, error) {
	query := `SELECT ` + poemColumns + ` FROM poems WHERE id = ? AND owner_id = ?`

	p, err := scanPoem(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoemNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns one page of the owner's poems matching f, most recently updated
// first, together with the total number of matches.
func (r *PoemRepository) List(ctx context.Context, ownerID string, f model.PoemFilter) ([]model.Poem, int, error) {
	where, args := listWhere(ownerID, f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM poems WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Poem{}, 0, nil
	}

	query := `SELECT ` + poemColumns + ` FROM poems WHERE ` + where +
		` ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	poems := []model.Poem{}
	for rows.Next() {
		p, err := scanPoem(rows)
		if err != nil {
			return nil, 0, err
		}
		poems = append(poems, *p)
	}

	return poems, total, rows.Err()
}

func listWhere(ownerID string, f model.PoemFilter) (string, []any) {
	conds := []string{"owner_id = ?"}
	args := []any{ownerID}

	if f.Mood != "" {
		conds = append(conds, "mood = ?")
		args = append(args, f.Mood)
	}
	if f.FavoriteOnly {
		conds = append(conds, "is_favorite = TRUE")
	}
	if f.SecretOnly {
		conds = append(conds, "is_secret = TRUE")
	}
	if f.Tag != "" {
		conds = append(conds, "JSON_CONTAINS(tags, JSON_QUOTE(?))")
		args = append(args, f.Tag)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(body) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	return strings.Join(conds, " AND "), args
}

// Delete removes a single poem owned by ownerID.
func (r *PoemRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM poems WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// DeleteAll removes every poem owned by ownerID and reports how many were removed.
func (r *PoemRepository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM poems WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats counts the owner's poems, favorites, and poems created at or after since.
func (r *PoemRepository) Stats(ctx context.Context, ownerID string, since time.Time) (model.PoemStats, error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN is_favorite THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM poems WHERE owner_id = ?`

	var s model.PoemStats
	err := r.db.QueryRowContext(ctx, query, since, ownerID).Scan(&s.Total, &s.Favorites, &s.ThisMonth)
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoem(row rowScanner) (*model.Poem, error) {
	var (
		p                       model.Poem
		tags, mood, suggestions []byte
		secretHash, compliment  sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Body, &p.Mood, &tags,
		&p.IsFavorite, &p.IsSecret, &secretHash,
		&compliment, &mood, &suggestions,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.SecretHash = secretHash.String
	if compliment.Valid {
		p.AICompliment = &compliment.String
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags of poem %s: %w", p.ID, err)
		}
	}
	if len(mood) > 0 {
		var m model.MoodAnalysis
		if err := json.Unmarshal(mood, &m); err != nil {
			return nil, fmt.Errorf("decoding mood analysis of poem %s: %w", p.ID, err)
		}
		p.AIMoodAnalysis = &m
	}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &p.AISuggestions); err != nil {
			return nil, fmt.Errorf("decoding suggestions of poem %s: %w", p.ID, err)
		}
	}

	return &p, nil
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPoemNotFound
	}
	return nil
}

// jsonOrNull encodes v for a JSON column, mapping nil pointers and nil slices to NULL.
func jsonOrNull(v any) (any, error) {
	switch x := v.(type) {
	case []string:
		if x == nil {
			return nil, nil
		}
	case *model.MoodAnalysis:
		if x == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
