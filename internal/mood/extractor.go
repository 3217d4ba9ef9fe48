package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/WictorCampos/playlist-inteligente/internal/ai"
	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

const maxTitleLen = 20

// Extractor reads a mood profile and a playlist title out of free text.
type Extractor struct {
	gen    ai.Generator
	logger *slog.Logger
}

func NewExtractor(gen ai.Generator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{gen: gen, logger: logger}
}

// Extract asks the model for a profile. Any failure yields
// music.DegradedProfile rather than an error.
func (e *Extractor) Extract(ctx context.Context, text string, targetCount int) music.Profile {
	minArtists := max(2, targetCount/5)
	minTracks := max(5, targetCount)

	resp, err := e.gen.Invoke(ctx, profilePrompt(text, minArtists, minTracks))
	if err != nil {
		e.logger.Warn("profile extraction failed", "err", err)
		return music.DegradedProfile()
	}
	profile, err := ParseProfile(resp.Content)
	if err != nil {
		e.logger.Warn("profile response unusable", "err", err)
		return music.DegradedProfile()
	}
	e.logger.Debug("profile extracted",
		"mood", profile.Mood, "genre", profile.Genre, "artists", profile.Artists,
		"country", profile.Country, "tracks", len(profile.Tracks))
	return profile
}

// Title asks the model for a short display title. It returns "" when the
// call fails.
func (e *Extractor) Title(ctx context.Context, text string) string {
	resp, err := e.gen.Invoke(ctx, titlePrompt(text))
	if err != nil {
		e.logger.Warn("title generation failed", "err", err)
		return ""
	}
	return CleanTitle(resp.Content)
}

// CleanTitle keeps the first line of raw, strips wrapping quotes and cuts it
// to maxTitleLen runes.
func CleanTitle(raw string) string {
	line := ai.FirstLine(raw)
	line = strings.Trim(line, "\"'`*“”")
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return strings.TrimSpace(string(runes))
}

// rawProfile is the exact shape the prompt asks for.
type rawProfile struct {
	Mood    *string    `json:"mood"`
	Genre   *string    `json:"genre"`
	Artist  artistList `json:"artist"`
	Country *string    `json:"country"`
	Tracks  []*string  `json:"tracks"`
}

// artistList accepts the prompt's comma separated string as well as an array.
type artistList []string

func (a *artistList) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != nil {
			*a = splitArtists(*s)
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("artist must be a string or a list of strings")
	}
	out := artistList{}
	for _, item := range list {
		out = append(out, splitArtists(item)...)
	}
	*a = out
	return nil
}

func splitArtists(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ReplaceAll(part, music.Delimiter, " "))
		part = strings.Join(strings.Fields(part), " ")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var errMissingMood = errors.New("profile has no mood")

// ParseProfile decodes model output into a profile. It fails on anything
// that does not match the requested shape.
func ParseProfile(content string) (music.Profile, error) {
	var raw rawProfile
	if err := ai.DecodeObject(content, &raw); err != nil {
		return music.Profile{}, err
	}
	if raw.Mood == nil || strings.TrimSpace(*raw.Mood) == "" {
		return music.Profile{}, errMissingMood
	}

	p := music.Profile{
		Mood:    strings.ToLower(strings.TrimSpace(*raw.Mood)),
		Genre:   strings.TrimSpace(deref(raw.Genre)),
		Artists: []string(raw.Artist),
		Country: strings.TrimSpace(deref(raw.Country)),
	}
	for _, t := range raw.Tracks {
		if t == nil {
			continue
		}
		name := strings.TrimSpace(*t)
		if name == "" {
			continue
		}
		p.Tracks = append(p.Tracks, music.TrackName(name))
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
