package mood

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/WictorCampos/playlist-inteligente/internal/ai"
	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

type stubGenerator struct {
	content string
	err     error
	prompts []string
}

func (s *stubGenerator) Invoke(ctx context.Context, prompt string) (ai.Response, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return ai.Response{}, s.err
	}
	return ai.Response{Content: s.content}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtract(t *testing.T) {
	gen := &stubGenerator{content: "```json\n" + `{"mood":"Feliz","genre":"rock","artist":"Coldplay, Oasis","country":null,"tracks":["Yellow%Coldplay","","Wonderwall%Oasis"]}` + "\n```"}
	e := NewExtractor(gen, quietLogger())

	p := e.Extract(context.Background(), "estou feliz e quero rock", 20)
	if p.Degraded || !p.Usable() {
		t.Fatalf("expected usable profile: %+v", p)
	}
	if p.Mood != "feliz" || p.Genre != "rock" || p.Country != "" {
		t.Fatalf("unexpected fields: %+v", p)
	}
	if len(p.Artists) != 2 || p.Artists[0] != "Coldplay" || p.Artists[1] != "Oasis" {
		t.Fatalf("artists: %v", p.Artists)
	}
	if len(p.Tracks) != 2 || p.Tracks[0] != "Yellow%Coldplay" {
		t.Fatalf("tracks: %v", p.Tracks)
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "at least 4 artists") || !strings.Contains(prompt, "at least 20 songs") {
		t.Fatalf("prompt is missing minimums: %s", prompt)
	}
	for _, key := range []string{`"mood"`, `"genre"`, `"artist"`, `"country"`, `"tracks"`} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("prompt is missing key %s", key)
		}
	}
}

func TestExtractMinimums(t *testing.T) {
	gen := &stubGenerator{content: `{"mood":"calmo"}`}
	NewExtractor(gen, quietLogger()).Extract(context.Background(), "x", 3)
	if !strings.Contains(gen.prompts[0], "at least 2 artists") || !strings.Contains(gen.prompts[0], "at least 5 songs") {
		t.Fatalf("unexpected minimums: %s", gen.prompts[0])
	}
}

func TestExtractDegrades(t *testing.T) {
	cases := map[string]*stubGenerator{
		"call error":  {err: errors.New("boom")},
		"not json":    {content: "I feel you are happy"},
		"null mood":   {content: `{"mood":null,"genre":null,"artist":null,"country":null,"tracks":[]}`},
		"wrong type":  {content: `{"mood":7}`},
		"bad tracks":  {content: `{"mood":"feliz","tracks":[1,2]}`},
		"bad artists": {content: `{"mood":"feliz","artist":{"name":"x"}}`},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewExtractor(gen, quietLogger()).Extract(context.Background(), "x", 10)
			if !p.Degraded || p.Mood != music.UnknownMood {
				t.Fatalf("expected degraded profile, got %+v", p)
			}
			if p.Genre != "" || p.Artists != nil || p.Country != "" || p.Tracks != nil {
				t.Fatalf("degraded profile must be empty: %+v", p)
			}
			if p.Usable() {
				t.Fatalf("degraded profile must not be usable")
			}
		})
	}
}

func TestParseProfileArtistList(t *testing.T) {
	p, err := ParseProfile(`{"mood":"triste","artist":["Adele","Sam%Smith, Lana Del Rey"]}`)
	if err != nil {
		t.Fatalf("ParseProfile: %v", err)
	}
	want := []string{"Adele", "Sam Smith", "Lana Del Rey"}
	if len(p.Artists) != len(want) {
		t.Fatalf("artists: %v", p.Artists)
	}
	for i := range want {
		if p.Artists[i] != want[i] {
			t.Fatalf("artists: %v", p.Artists)
		}
	}
}

func TestTitle(t *testing.T) {
	cases := []string{
		"Rock Feliz Demais Pra Ser Verdade\nsecond line\nthird",
		"\n\n\"Good Vibes Only\"\n",
		strings.Repeat("ação ", 30),
		"",
	}
	for _, raw := range cases {
		gen := &stubGenerator{content: raw}
		title := NewExtractor(gen, quietLogger()).Title(context.Background(), "feliz")
		if utf8.RuneCountInString(title) > 20 {
			t.Fatalf("title too long: %q", title)
		}
		if strings.Contains(title, "\n") {
			t.Fatalf("title has newline: %q", title)
		}
	}

	gen := &stubGenerator{content: "\"Good Vibes Only\"\nmore"}
	if got := NewExtractor(gen, quietLogger()).Title(context.Background(), "x"); got != "Good Vibes Only" {
		t.Fatalf("title: %q", got)
	}

	gen = &stubGenerator{err: errors.New("down")}
	if got := NewExtractor(gen, quietLogger()).Title(context.Background(), "x"); got != "" {
		t.Fatalf("expected empty title on failure, got %q", got)
	}
}
