package tracks

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/WictorCampos/playlist-inteligente/internal/catalog"
	"github.com/WictorCampos/playlist-inteligente/internal/music"
)

// Searcher runs a track search on the music catalog.
type Searcher interface {
	SearchTracks(ctx context.Context, query string, limit int, market string) ([]music.Track, error)
}

// Query holds the filter terms of a keyword search. Empty fields are left out.
type Query struct {
	Mood    string
	Genre   string
	Artist  string
	Country string
}

var marketCode = regexp.MustCompile(`^[A-Za-z]{2}$`)

// Text renders the conjunction of the present terms and the market to pass
// along, if the country is a two letter code.
func (q Query) Text() (text, market string) {
	parts := []string{}
	if m := strings.TrimSpace(q.Mood); m != "" {
		parts = append(parts, m)
	}
	if g := strings.TrimSpace(q.Genre); g != "" {
		parts = append(parts, fmt.Sprintf("genre:%q", g))
	}
	if a := strings.TrimSpace(q.Artist); a != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", a))
	}
	if c := strings.TrimSpace(q.Country); c != "" {
		if marketCode.MatchString(c) {
			market = strings.ToUpper(c)
		} else {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " "), market
}

// Search returns up to limit tracks for q, most popular first and unique by
// URI. Transient failures are retried per backoff; when every attempt fails,
// or the failure is permanent, it logs and returns an empty slice.
func Search(ctx context.Context, s Searcher, q Query, limit int, backoff Backoff, logger *slog.Logger) []music.Track {
	if limit <= 0 {
		return []music.Track{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	text, market := q.Text()
	if text == "" {
		logger.Debug("search skipped, no filter terms")
		return []music.Track{}
	}
	logger.Debug("searching catalog", "query", text, "market", market, "limit", limit)

	attempts := max(1, backoff.Attempts)
	for attempt := 1; attempt <= attempts; attempt++ {
		found, err := s.SearchTracks(ctx, text, limit, market)
		if err == nil {
			return rank(found, limit)
		}
		if !catalog.IsTransient(err) {
			logger.Warn("search failed", "query", text, "err", err)
			return []music.Track{}
		}
		logger.Warn("search attempt failed", "query", text, "attempt", attempt, "of", attempts, "err", err)
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, backoff.delay(attempt)); err != nil {
			break
		}
	}
	logger.Error("search gave up after retries, returning no tracks", "query", text)
	return []music.Track{}
}

// rank sorts by popularity, drops repeated URIs and truncates to limit.
func rank(found []music.Track, limit int) []music.Track {
	sorted := make([]music.Track, len(found))
	copy(sorted, found)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Popularity > sorted[j].Popularity
	})
	out := music.Dedupe(sorted)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
