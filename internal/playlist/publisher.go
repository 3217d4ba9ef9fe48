package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

// ErrNoTracks is returned when there is nothing to publish.
var ErrNoTracks = errors.New("no tracks to add to the playlist")

// Backend is the part of the music service the publisher writes to.
type Backend interface {
	CurrentUserID(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, ownerID, name, description string, public bool) (music.Playlist, error)
	AddTracks(ctx context.Context, playlistID string, tracks []music.Track) error
}

// PartialPublishError means the playlist exists but its tracks could not be
// added. The empty playlist is left in place.
type PartialPublishError struct {
	Playlist music.Playlist
	Err      error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("playlist %s created but tracks were not added: %v", e.Playlist.ID, e.Err)
}

func (e *PartialPublishError) Unwrap() error { return e.Err }

type Publisher struct {
	backend Backend
	logger  *slog.Logger
}

func NewPublisher(backend Backend, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{backend: backend, logger: logger}
}

// Publish creates a new public playlist named title holding tracks in order.
// Every call creates a new playlist.
func (p *Publisher) Publish(ctx context.Context, title, description string, tracks []music.Track) (music.Playlist, error) {
	if len(tracks) == 0 {
		return music.Playlist{}, ErrNoTracks
	}

	userID, err := p.backend.CurrentUserID(ctx)
	if err != nil {
		return music.Playlist{}, err
	}
	pl, err := p.backend.CreatePlaylist(ctx, userID, title, description, true)
	if err != nil {
		return music.Playlist{}, err
	}
	if pl.Title == "" {
		pl.Title = title
	}
	p.logger.Info("playlist created", "playlist_id", pl.ID, "owner", userID, "title", title)

	if err := p.backend.AddTracks(ctx, pl.ID, tracks); err != nil {
		p.logger.Error("adding tracks failed, playlist left empty", "playlist_id", pl.ID, "err", err)
		return music.Playlist{}, &PartialPublishError{Playlist: pl, Err: err}
	}
	pl.Tracks = tracks
	return pl, nil
}
