package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Moods the journal recognises. Other mood strings are stored as-is.
const (
	MoodRomantic      = "romantic"
	MoodSad           = "sad"
	MoodHappy         = "happy"
	MoodNostalgic     = "nostalgic"
	MoodPhilosophical = "philosophical"
	MoodMotivational  = "motivational"
)

var KnownMoods = []string{
	MoodRomantic, MoodSad, MoodHappy, MoodNostalgic, MoodPhilosophical, MoodMotivational,
}

// IsKnownMood reports whether mood is one of KnownMoods.
func IsKnownMood(mood string) bool {
	for _, m := range KnownMoods {
		if m == mood {
			return true
		}
	}
	return false
}

// MoodAnalysis is the structured mood classification of a poem.
type MoodAnalysis struct {
	Mood     string   `json:"mood"`
	Analysis string   `json:"analysis"`
	Themes   []string `json:"themes"`
}

// UnmarshalJSON accepts either the object form or a JSON string holding the
// serialized object, which is what older editor clients send.
func (m *MoodAnalysis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = bytes.TrimSpace([]byte(s))
		if len(data) == 0 || data[0] != '{' {
			return errors.New("serialized mood analysis must be a JSON object")
		}
	}

	type plain MoodAnalysis
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MoodAnalysis(p)
	return nil
}

// InsightRequest is the body of POST /insights.
type InsightRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// InsightBundle is the aggregated AI commentary for one poem.
type InsightBundle struct {
	Compliment   string        `json:"compliment"`
	MoodAnalysis *MoodAnalysis `json:"moodAnalysis"`
	Suggestions  []string      `json:"suggestions"`
}

// InsightResponse wraps a bundle in the API envelope.
type InsightResponse struct {
	Success bool          `json:"success"`
	AI      InsightBundle `json:"ai"`
}
