package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shayari/shayari-go/internal/model"
)

// Fallback values used whenever a generation call fails or its output cannot be parsed.
const (
	FallbackCompliment = "आपकी शायरी दिल को छू गई। (Your Shayari touched the heart.)"
	FallbackMood       = model.MoodRomantic
	FallbackAnalysis   = "इस शायरी में गहरे जज़्बात हैं। (This Shayari has deep emotions.)"
)

// FallbackMoodAnalysis returns a fresh copy of the default mood analysis.
func FallbackMoodAnalysis() model.MoodAnalysis {
	return model.MoodAnalysis{
		Mood:     FallbackMood,
		Analysis: FallbackAnalysis,
		Themes:   []string{"love", "emotions", "poetry"},
	}
}

// FallbackSuggestions returns a fresh copy of the default suggestion list.
func FallbackSuggestions() []string {
	return []string{
		"प्रकृति के साथ अपने जज़्बात को जोड़कर लिखें",
		"अपनी यादों को शब्दों में पिरोने की कोशिश करें",
		"रात के सन्नाटे में छुपे हुए राज़ों पर लिखें",
	}
}

// ParseError explains why a model response did not have the expected shape.
type ParseError struct {
	Shape  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Shape, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NormalizeCompliment returns the trimmed compliment, or the fallback when the
// call failed or produced no text.
func NormalizeCompliment(raw string, err error) string {
	text := strings.TrimSpace(raw)
	if err != nil || text == "" {
		return FallbackCompliment
	}
	return text
}

// NormalizeMoodAnalysis parses raw, substituting FallbackMoodAnalysis on any failure.
func NormalizeMoodAnalysis(raw string, err error) model.MoodAnalysis {
	if err != nil {
		return FallbackMoodAnalysis()
	}
	m, perr := ParseMoodAnalysis(raw)
	if perr != nil {
		return FallbackMoodAnalysis()
	}
	return m
}

// NormalizeSuggestions parses raw, substituting FallbackSuggestions on any failure.
func NormalizeSuggestions(raw string, err error) []string {
	if err != nil {
		return FallbackSuggestions()
	}
	s, perr := ParseSuggestions(raw)
	if perr != nil {
		return FallbackSuggestions()
	}
	return s
}

// ParseMoodAnalysis decodes a {mood, analysis, themes} object. Every field must
// be present with the right type. Mood strings outside model.KnownMoods are kept.
func ParseMoodAnalysis(raw string) (model.MoodAnalysis, error) {
	const shape = "mood analysis"

	fields, err := decodeObject(shape, raw)
	if err != nil {
		return model.MoodAnalysis{}, err
	}

	mood, err := stringField(shape, fields, "mood")
	if err != nil {
		return model.MoodAnalysis{}, err
	}
	if mood == "" {
		return model.MoodAnalysis{}, &ParseError{Shape: shape, Reason: `"mood" is empty`}
	}
	analysis, err := stringField(shape, fields, "analysis")
	if err != nil {
		return model.MoodAnalysis{}, err
	}
	themes, err := stringsField(shape, fields, "themes")
	if err != nil {
		return model.MoodAnalysis{}, err
	}

	return model.MoodAnalysis{Mood: mood, Analysis: analysis, Themes: themes}, nil
}

// ParseSuggestions decodes a {suggestions: [string...]} object. Blank entries
// are dropped; a list with nothing left is a failure.
func ParseSuggestions(raw string) ([]string, error) {
	const shape = "suggestions"

	fields, err := decodeObject(shape, raw)
	if err != nil {
		return nil, err
	}
	items, err := stringsField(shape, fields, "suggestions")
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, &ParseError{Shape: shape, Reason: `"suggestions" has no entries`}
	}
	return out, nil
}

func decodeObject(shape, raw string) (map[string]json.RawMessage, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, &ParseError{Shape: shape, Reason: "empty response"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &ParseError{Shape: shape, Reason: "not a JSON object", Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Shape: shape, Reason: "not a JSON object"}
	}
	return fields, nil
}

func stringField(shape string, fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return "", &ParseError{Shape: shape, Reason: fmt.Sprintf("missing %q", name)}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &ParseError{Shape: shape, Reason: fmt.Sprintf("%q is not a string", name), Err: err}
	}
	return strings.TrimSpace(s), nil
}

func stringsField(shape string, fields map[string]json.RawMessage, name string) ([]string, error) {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil, &ParseError{Shape: shape, Reason: fmt.Sprintf("missing %q", name)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ParseError{Shape: shape, Reason: fmt.Sprintf("%q is not an array", name), Err: err}
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil || isNull(item) {
			return nil, &ParseError{Shape: shape, Reason: fmt.Sprintf("%s[%d] is not a string", name, i), Err: err}
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stripCodeFence removes a surrounding ```json ... ``` block some models add
// even when asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
