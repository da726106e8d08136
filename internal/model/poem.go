package model

import "time"

// Poem represents a shayari record in the database.
// SecretHash holds the argon2id hash of the passphrase and is never serialized.
type Poem struct {
	ID             string
	OwnerID        string
	Title          string
	Body           string
	Mood           string
	Tags           []string
	IsFavorite     bool
	IsSecret       bool
	SecretHash     string
	AICompliment   *string
	AIMoodAnalysis *MoodAnalysis
	AISuggestions  []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PoemRequest is the editable field set sent on create and update.
// Nil AI fields leave the stored values untouched on update.
type PoemRequest struct {
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Mood           string        `json:"mood"`
	Tags           []string      `json:"tags"`
	IsFavorite     bool          `json:"isFavorite"`
	IsSecret       bool          `json:"isSecret"`
	SecretPassword string        `json:"secretPassword"`
	AICompliment   *string       `json:"aiCompliment"`
	AIMoodAnalysis *MoodAnalysis `json:"aiMoodAnalysis"`
	AISuggestions  []string      `json:"aiSuggestions"`
}

// PoemResponse is the outward projection of a poem. It has no passphrase field.
type PoemResponse struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Mood           string        `json:"mood"`
	Tags           []string      `json:"tags"`
	IsFavorite     bool          `json:"isFavorite"`
	IsSecret       bool          `json:"isSecret"`
	AICompliment   *string       `json:"aiCompliment,omitempty"`
	AIMoodAnalysis *MoodAnalysis `json:"aiMoodAnalysis,omitempty"`
	AISuggestions  []string      `json:"aiSuggestions,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// PoemEnvelope wraps a single poem in the API envelope.
type PoemEnvelope struct {
	Success bool         `json:"success"`
	Shayari PoemResponse `json:"shayari"`
}

// PoemFilter narrows a list query. Zero values mean "no filter".
type PoemFilter struct {
	Mood         string
	Tag          string
	FavoriteOnly bool
	SecretOnly   bool
	Search       string
	Page         int
	Limit        int
}

// Offset returns the number of rows to skip for the filter's page.
func (f PoemFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PoemListResponse represents a paged list of poems.
type PoemListResponse struct {
	Success    bool           `json:"success"`
	Shayaris   []PoemResponse `json:"shayaris"`
	Pagination Pagination     `json:"pagination"`
}

// PoemStats are the dashboard counters for one owner.
type PoemStats struct {
	Total     int `json:"total"`
	Favorites int `json:"favorites"`
	ThisMonth int `json:"thisMonth"`
}

// StatsResponse wraps PoemStats in the API envelope.
type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   PoemStats `json:"stats"`
}

// DeleteAllResponse reports the outcome of a bulk delete.
type DeleteAllResponse struct {
	Success bool   `json:"success"`
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

// UnlockRequest carries the passphrase for a secret poem.
type UnlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// UnlockResponse is returned when a poem was unlocked.
type UnlockResponse struct {
	Success  bool         `json:"success"`
	Unlocked bool         `json:"unlocked"`
	Shayari  PoemResponse `json:"shayari"`
}
