package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shayari/shayari-go/internal/model"
)

func TestNormalizeCompliment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
		want string
	}{
		{"passes text through trimmed", "  बहुत ख़ूब!  \n", nil, "बहुत ख़ूब!"},
		{"call failed", "partial", errors.New("boom"), FallbackCompliment},
		{"empty text", "   ", nil, FallbackCompliment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCompliment(tt.raw, tt.err); got != tt.want {
				t.Errorf("NormalizeCompliment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMoodAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    model.MoodAnalysis
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  `{"mood":"sad","analysis":"दर्द भरी","themes":["loss","night"]}`,
			want: model.MoodAnalysis{Mood: "sad", Analysis: "दर्द भरी", Themes: []string{"loss", "night"}},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"mood\":\"happy\",\"analysis\":\"a\",\"themes\":[]}\n```",
			want: model.MoodAnalysis{Mood: "happy", Analysis: "a", Themes: []string{}},
		},
		{
			name: "unknown mood passes through",
			raw:  `{"mood":"melancholic","analysis":"a","themes":["x"]}`,
			want: model.MoodAnalysis{Mood: "melancholic", Analysis: "a", Themes: []string{"x"}},
		},
		{name: "not json", raw: "The mood is sad.", wantErr: true},
		{name: "array", raw: `["sad"]`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "missing themes", raw: `{"mood":"sad","analysis":"a"}`, wantErr: true},
		{name: "missing analysis", raw: `{"mood":"sad","themes":[]}`, wantErr: true},
		{name: "mood wrong type", raw: `{"mood":3,"analysis":"a","themes":[]}`, wantErr: true},
		{name: "empty mood", raw: `{"mood":" ","analysis":"a","themes":[]}`, wantErr: true},
		{name: "themes not array", raw: `{"mood":"sad","analysis":"a","themes":"loss"}`, wantErr: true},
		{name: "theme not string", raw: `{"mood":"sad","analysis":"a","themes":["x",1]}`, wantErr: true},
		{name: "null theme", raw: `{"mood":"sad","analysis":"a","themes":[null]}`, wantErr: true},
		{name: "truncated", raw: `{"mood":"sad","analysis":"a","themes":["x"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoodAnalysis(tt.raw)
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseMoodAnalysis() error = %v, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoodAnalysis() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseMoodAnalysis() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeMoodAnalysis_FallsBack(t *testing.T) {
	want := FallbackMoodAnalysis()

	for _, tc := range []struct {
		raw string
		err error
	}{
		{"not json at all", nil},
		{`{"mood":"sad"}`, nil},
		{`{"mood":"sad","analysis":"a","themes":["x"]}`, errors.New("upstream failed")},
	} {
		got := NormalizeMoodAnalysis(tc.raw, tc.err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NormalizeMoodAnalysis(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "three suggestions",
			raw:  `{"suggestions":["बारिश पर लिखें","रदीफ़ आज़माएँ","माँ की याद"]}`,
			want: []string{"बारिश पर लिखें", "रदीफ़ आज़माएँ", "माँ की याद"},
		},
		{
			name: "blank entries dropped",
			raw:  `{"suggestions":[" a ",""," ","b"]}`,
			want: []string{"a", "b"},
		},
		{name: "missing field", raw: `{"ideas":["a"]}`, wantErr: true},
		{name: "not array", raw: `{"suggestions":"a, b, c"}`, wantErr: true},
		{name: "object items", raw: `{"suggestions":[{"text":"a"}]}`, wantErr: true},
		{name: "empty array", raw: `{"suggestions":[]}`, wantErr: true},
		{name: "null field", raw: `{"suggestions":null}`, wantErr: true},
		{name: "prose", raw: `Here are three suggestions: ...`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestions(tt.raw)
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseSuggestions() error = %v, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSuggestions() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSuggestions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeSuggestions_FallsBack(t *testing.T) {
	got := NormalizeSuggestions(`{"suggestions":{}}`, nil)
	if diff := cmp.Diff(FallbackSuggestions(), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 3 {
		t.Errorf("fallback has %d items, want 3", len(got))
	}

	got = NormalizeSuggestions(`{"suggestions":["a","b","c"]}`, errors.New("boom"))
	if diff := cmp.Diff(FallbackSuggestions(), got); diff != "" {
		t.Errorf("mismatch on error (-want +got):\n%s", diff)
	}
}

func TestFallbacksAreFreshCopies(t *testing.T) {
	s := FallbackSuggestions()
	s[0] = "mutated"
	if FallbackSuggestions()[0] == "mutated" {
		t.Error("FallbackSuggestions() shares its backing array")
	}

	m := FallbackMoodAnalysis()
	m.Themes[0] = "mutated"
	if FallbackMoodAnalysis().Themes[0] == "mutated" {
		t.Error("FallbackMoodAnalysis() shares its themes slice")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"{\"a\":1}":                 "{\"a\":1}",
		"```json\n{\"a\":1}\n```":   "{\"a\":1}",
		"```\n{\"a\":1}\n```":       "{\"a\":1}",
		"```{\"a\":1}```":           "{\"a\":1}",
		"  \n```JSON\n[1]\n```\n  ": "[1]",
	}
	for in, want := range tests {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
