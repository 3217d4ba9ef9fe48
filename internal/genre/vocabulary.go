package genre

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "playlist-inteligente:genres"
	cacheTTL = 24 * time.Hour
)

// Source lists the genres the music catalog accepts.
type Source interface {
	AvailableGenres(ctx context.Context) ([]string, error)
}

// Origin says where a vocabulary came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginCatalog  Origin = "catalog"
	OriginFallback Origin = "fallback"
)

// Vocabulary resolves the genre list: redis cache first, then the catalog,
// then the bundled Fallback list.
type Vocabulary struct {
	source Source
	rdb    *redis.Client
	logger *slog.Logger
}

// NewVocabulary builds a vocabulary. source and rdb may both be nil.
func NewVocabulary(source Source, rdb *redis.Client, logger *slog.Logger) *Vocabulary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vocabulary{source: source, rdb: rdb, logger: logger}
}

func (v *Vocabulary) Genres(ctx context.Context) []string {
	genres, _ := v.Lookup(ctx)
	return genres
}

// Lookup returns the genre list and its origin.
func (v *Vocabulary) Lookup(ctx context.Context) ([]string, Origin) {
	if v.rdb != nil {
		cached, err := v.rdb.SMembers(ctx, cacheKey).Result()
		if err != nil {
			v.logger.Warn("genre cache read failed", "err", err)
		} else if len(cached) > 0 {
			sort.Strings(cached)
			return cached, OriginCache
		}
	}

	if v.source != nil {
		genres, err := v.source.AvailableGenres(ctx)
		if err != nil {
			v.logger.Warn("catalog genres unavailable, using fallback", "err", err)
		} else if len(genres) > 0 {
			v.store(ctx, genres)
			return genres, OriginCatalog
		} else {
			v.logger.Warn("catalog returned no genres, using fallback")
		}
	}
	return Fallback, OriginFallback
}

func (v *Vocabulary) store(ctx context.Context, genres []string) {
	if v.rdb == nil {
		return
	}
	members := make([]any, 0, len(genres))
	for _, g := range genres {
		members = append(members, g)
	}
	_, err := v.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, cacheKey)
		pipe.SAdd(ctx, cacheKey, members...)
		pipe.Expire(ctx, cacheKey, cacheTTL)
		return nil
	})
	if err != nil {
		v.logger.Warn("genre cache write failed", "err", err)
	}
}
