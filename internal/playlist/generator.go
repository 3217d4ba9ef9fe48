package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Stage is a step of the request pipeline.
type Stage string

const (
	StageStart            Stage = "start"
	StageProfileExtracted Stage = "profile_extracted"
	StageTracksResolved   Stage = "tracks_resolved"
	StagePublished        Stage = "published"
	StageDone             Stage = "done"
)

// Failure reasons reported to callers.
const (
	ReasonUnprocessable = "unprocessable"
	ReasonNoTracks      = "no_tracks"
	ReasonPublishFailed = "publish_failed"
)

// Failure is a terminal, user facing outcome of a request.
type Failure struct {
	Reason string
	Stage  Stage
	// PlaylistURL is set when a playlist was created but left empty.
	PlaylistURL string
	Err         error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s at %s: %v", f.Reason, f.Stage, f.Err)
	}
	return fmt.Sprintf("%s at %s", f.Reason, f.Stage)
}

func (f *Failure) Unwrap() error { return f.Err }

// Message is a human readable explanation of the failure.
func (f *Failure) Message() string {
	switch f.Reason {
	case ReasonUnprocessable:
		return "Could not understand the mood in the text. Try describing how you feel."
	case ReasonNoTracks:
		return "No songs were found for this mood."
	default:
		return "Could not create the playlist on Spotify."
	}
}

// Extractor produces the mood profile and title.
type Extractor interface {
	Extract(ctx context.Context, text string, targetCount int) music.Profile
	Title(ctx context.Context, text string) string
}

// Resolver produces playable tracks for a profile.
type Resolver interface {
	Resolve(ctx context.Context, profile music.Profile, targetCount int) []music.Track
}

// Sink publishes the playlist.
type Sink interface {
	Publish(ctx context.Context, title, description string, tracks []music.Track) (music.Playlist, error)
}

type PlaylistInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Response is the result of a successful request.
type Response struct {
	Mood       string       `json:"mood"`
	Title      string       `json:"title"`
	Playlist   PlaylistInfo `json:"playlist"`
	TrackCount int          `json:"trackCount"`
	Tracks     []string     `json:"tracks"`
}

// Generator runs text -> profile -> tracks -> playlist for one request at a
// time per call. It holds no per-request state and may be shared.
type Generator struct {
	extractor Extractor
	resolver  Resolver
	sink      Sink
	logger    *slog.Logger
}

func NewGenerator(extractor Extractor, resolver Resolver, sink Sink, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{extractor: extractor, resolver: resolver, sink: sink, logger: logger}
}

// NormalizeLimit applies the default and the upper bound.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// Handle runs the pipeline. Terminal outcomes are returned as *Failure.
func (g *Generator) Handle(ctx context.Context, text string, limit int) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, errors.New("text is required")
	}
	limit = NormalizeLimit(limit)
	log := g.logger.With("request_id", uuid.NewString())
	log.Info("request started", "limit", limit)

	profile := g.extractor.Extract(ctx, text, limit)
	if !profile.Usable() {
		return Response{}, g.fail(log, &Failure{Reason: ReasonUnprocessable, Stage: StageStart})
	}
	log.Info("stage", "stage", StageProfileExtracted, "mood", profile.Mood, "genre", profile.Genre)

	tracks := g.resolver.Resolve(ctx, profile, limit)
	if len(tracks) == 0 {
		return Response{}, g.fail(log, &Failure{Reason: ReasonNoTracks, Stage: StageProfileExtracted})
	}
	log.Info("stage", "stage", StageTracksResolved, "tracks", len(tracks))

	title := g.extractor.Title(ctx, text)
	if title == "" {
		title = placeholderTitle(profile.Mood)
	}

	pl, err := g.sink.Publish(ctx, title, "Playlist for the mood: "+profile.Mood, tracks)
	if err != nil {
		if errors.Is(err, ErrNoTracks) {
			return Response{}, g.fail(log, &Failure{Reason: ReasonNoTracks, Stage: StageTracksResolved, Err: err})
		}
		f := &Failure{Reason: ReasonPublishFailed, Stage: StageTracksResolved, Err: err}
		var partial *PartialPublishError
		if errors.As(err, &partial) {
			f.PlaylistURL = partial.Playlist.URL
		}
		return Response{}, g.fail(log, f)
	}
	log.Info("stage", "stage", StagePublished, "playlist_id", pl.ID, "url", pl.URL)

	resp := Response{
		Mood:       profile.Mood,
		Title:      title,
		Playlist:   PlaylistInfo{Name: title, URL: pl.URL},
		TrackCount: len(tracks),
		Tracks:     music.URIs(tracks),
	}
	log.Info("stage", "stage", StageDone)
	return resp, nil
}

func (g *Generator) fail(log *slog.Logger, f *Failure) error {
	log.Warn("request failed", "reason", f.Reason, "stage", f.Stage, "err", f.Err)
	return f
}

func placeholderTitle(mood string) string {
	runes := []rune("Vibe " + strings.TrimSpace(mood))
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return strings.TrimSpace(string(runes))
}
