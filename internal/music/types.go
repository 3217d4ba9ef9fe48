package music

import "strings"

// Delimiter separates words inside a name-form track reference.
const Delimiter = "%"

// UnknownMood is the label a degraded extraction carries.
const UnknownMood = "unknown"

// TrackName is a name-form track reference: "<title>%<artist-words>".
// It must be looked up on the backend before it can be added to a playlist.
type TrackName string

// Query returns the search text for the reference, with every delimiter
// turned back into a space.
func (n TrackName) Query() string {
	return strings.Join(strings.Fields(strings.ReplaceAll(string(n), Delimiter, " ")), " ")
}

// NewTrackName builds a name-form reference from free text.
func NewTrackName(title, artist string) TrackName {
	words := strings.Fields(title + " " + artist)
	return TrackName(strings.Join(words, Delimiter))
}

// Profile is the structured reading of the user's text.
type Profile struct {
	Mood     string      `json:"mood"`
	Genre    string      `json:"genre,omitempty"`
	Artists  []string    `json:"artists,omitempty"`
	Country  string      `json:"country,omitempty"`
	Tracks   []TrackName `json:"tracks,omitempty"`
	Degraded bool        `json:"-"`
}

// DegradedProfile is returned whenever the model output cannot be used.
func DegradedProfile() Profile {
	return Profile{Mood: UnknownMood, Degraded: true}
}

// Usable reports whether the profile carries a resolved mood.
func (p Profile) Usable() bool {
	if p.Degraded {
		return false
	}
	m := strings.TrimSpace(strings.ToLower(p.Mood))
	return m != "" && m != UnknownMood
}

// Track is a backend-form reference returned by the catalog.
// URI is its identity.
type Track struct {
	ID         string   `json:"id"`
	URI        string   `json:"uri"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists,omitempty"`
	Popularity int      `json:"popularity"`
}

// Playlist is the published result.
type Playlist struct {
	ID     string  `json:"id"`
	Title  string  `json:"name"`
	URL    string  `json:"url"`
	Tracks []Track `json:"-"`
}

// URIs returns the track URIs in order.
func URIs(tracks []Track) []string {
	out := make([]string, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.URI)
	}
	return out
}

// Dedupe drops repeated URIs, keeping the first occurrence.
func Dedupe(tracks []Track) []Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.URI == "" {
			continue
		}
		if _, ok := seen[t.URI]; ok {
			continue
		}
		seen[t.URI] = struct{}{}
		out = append(out, t)
	}
	return out
}
