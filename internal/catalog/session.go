package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

// maxAddBatch is the most items Spotify accepts in one add request.
const maxAddBatch = 100

// Session is the process wide Spotify session. It is safe for concurrent use.
type Session struct {
	user *spotify.Client
	app  *spotify.Client
}

// NewSession wraps an authenticated user client. app, when not nil, is a
// client-credentials client used for catalog-only calls.
func NewSession(user, app *spotify.Client) *Session {
	return &Session{user: user, app: app}
}

func (s *Session) catalogClient() *spotify.Client {
	if s.app != nil {
		return s.app
	}
	return s.user
}

// SearchTracks runs a track search. market may be empty.
func (s *Session) SearchTracks(ctx context.Context, query string, limit int, market string) ([]music.Track, error) {
	client := s.catalogClient()
	if client == nil {
		return nil, errors.New("spotify session is not authenticated")
	}
	opts := []spotify.RequestOption{spotify.Limit(limit)}
	if market != "" {
		opts = append(opts, spotify.Market(market))
	}
	res, err := client.Search(ctx, query, spotify.SearchTypeTrack, opts...)
	if err != nil {
		return nil, classify(fmt.Errorf("search %q: %w", query, err))
	}
	if res.Tracks == nil {
		return []music.Track{}, nil
	}
	out := make([]music.Track, 0, len(res.Tracks.Tracks))
	for _, t := range res.Tracks.Tracks {
		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		out = append(out, music.Track{
			ID:         string(t.ID),
			URI:        string(t.URI),
			Name:       t.Name,
			Artists:    artists,
			Popularity: int(t.Popularity),
		})
	}
	return out, nil
}

func (s *Session) AvailableGenres(ctx context.Context) ([]string, error) {
	client := s.catalogClient()
	if client == nil {
		return nil, errors.New("spotify session is not authenticated")
	}
	genres, err := client.GetAvailableGenreSeeds(ctx)
	if err != nil {
		return nil, classify(fmt.Errorf("genre seeds: %w", err))
	}
	return genres, nil
}

func (s *Session) CurrentUserID(ctx context.Context) (string, error) {
	if s.user == nil {
		return "", errors.New("spotify session has no user, run `playlist login`")
	}
	user, err := s.user.CurrentUser(ctx)
	if err != nil {
		return "", classify(fmt.Errorf("error getting current user: %w", err))
	}
	return user.ID, nil
}

func (s *Session) CreatePlaylist(ctx context.Context, ownerID, name, description string, public bool) (music.Playlist, error) {
	if s.user == nil {
		return music.Playlist{}, errors.New("spotify session has no user, run `playlist login`")
	}
	p, err := s.user.CreatePlaylistForUser(ctx, ownerID, name, description, public, false)
	if err != nil {
		return music.Playlist{}, classify(fmt.Errorf("error creating playlist: %w", err))
	}
	return music.Playlist{
		ID:    string(p.ID),
		Title: p.Name,
		URL:   p.ExternalURLs["spotify"],
	}, nil
}

// AddTracks appends tracks in order, in as few requests as Spotify allows.
func (s *Session) AddTracks(ctx context.Context, playlistID string, tracks []music.Track) error {
	if s.user == nil {
		return errors.New("spotify session has no user, run `playlist login`")
	}
	ids := make([]spotify.ID, 0, len(tracks))
	for _, t := range tracks {
		if id := trackID(t); id != "" {
			ids = append(ids, spotify.ID(id))
		}
	}
	for start := 0; start < len(ids); start += maxAddBatch {
		end := min(start+maxAddBatch, len(ids))
		if _, err := s.user.AddTracksToPlaylist(ctx, spotify.ID(playlistID), ids[start:end]...); err != nil {
			return classify(fmt.Errorf("error adding tracks to playlist: %w", err))
		}
	}
	return nil
}

// trackID returns the bare id, taking it from a "spotify:track:<id>" URI when
// the id field is empty.
func trackID(t music.Track) string {
	if t.ID != "" {
		return t.ID
	}
	if i := strings.LastIndex(t.URI, ":"); i >= 0 {
		return t.URI[i+1:]
	}
	return t.URI
}
