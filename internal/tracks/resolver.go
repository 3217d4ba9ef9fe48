package tracks

import (
	"context"
	"log/slog"
	"time"

	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

// GenreMatcher maps a genre onto the catalog's vocabulary.
type GenreMatcher interface {
	Match(ctx context.Context, genre string) string
}

// Resolver turns a profile into playable catalog tracks.
type Resolver struct {
	searcher Searcher
	genres   GenreMatcher
	logger   *slog.Logger

	backoff  Backoff
	throttle time.Duration
}

type Option func(*Resolver)

// WithGenreMatcher reconciles the profile genre before the keyword search.
func WithGenreMatcher(g GenreMatcher) Option {
	return func(r *Resolver) { r.genres = g }
}

func WithBackoff(b Backoff) Option {
	return func(r *Resolver) { r.backoff = b }
}

// WithThrottle sets the pause between consecutive per-track lookups.
func WithThrottle(d time.Duration) Option {
	return func(r *Resolver) { r.throttle = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewResolver(s Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		searcher: s,
		logger:   slog.Default(),
		backoff:  DefaultBackoff,
		throttle: lookupThrottle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns at most targetCount unique tracks: the profile's suggested
// tracks first, then keyword search results when the suggestions fall short.
// An empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context, profile music.Profile, targetCount int) []music.Track {
	if targetCount <= 0 {
		return []music.Track{}
	}

	var fill []music.Track
	if missing := targetCount - len(profile.Tracks); missing > 0 {
		fill = Search(ctx, r.searcher, r.query(ctx, profile), missing, r.backoff, r.logger)
	}

	resolved := r.lookup(ctx, profile.Tracks)

	combined := make([]music.Track, 0, len(resolved)+len(fill))
	combined = append(combined, resolved...)
	combined = append(combined, fill...)
	out := music.Dedupe(combined)
	if len(out) > targetCount {
		out = out[:targetCount]
	}
	r.logger.Info("tracks resolved",
		"suggested", len(profile.Tracks), "found", len(resolved), "fill", len(fill), "final", len(out))
	return out
}

func (r *Resolver) query(ctx context.Context, p music.Profile) Query {
	q := Query{Mood: p.Mood, Genre: p.Genre, Country: p.Country}
	if len(p.Artists) > 0 {
		q.Artist = p.Artists[0]
	}
	if q.Genre != "" && r.genres != nil {
		q.Genre = r.genres.Match(ctx, q.Genre)
	}
	return q
}

// lookup resolves each name-form reference with a single-result search.
// Misses and errors drop the entry.
func (r *Resolver) lookup(ctx context.Context, names []music.TrackName) []music.Track {
	out := make([]music.Track, 0, len(names))
	for i, name := range names {
		if i > 0 {
			if err := sleep(ctx, r.throttle); err != nil {
				r.logger.Warn("track lookup interrupted", "err", err)
				break
			}
		}
		query := name.Query()
		if query == "" {
			continue
		}
		found, err := r.searcher.SearchTracks(ctx, query, 1, "")
		if err != nil {
			r.logger.Warn("track lookup failed", "track", string(name), "err", err)
			continue
		}
		if len(found) == 0 || found[0].URI == "" {
			r.logger.Warn("no track found", "track", string(name))
			continue
		}
		out = append(out, found[0])
	}
	return out
}
