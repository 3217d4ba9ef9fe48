package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/WictorCampos/playlist-inteligente/internal/ai"
	"github.com/WictorCampos/playlist-inteligente/internal/catalog"
	"github.com/WictorCampos/playlist-inteligente/internal/config"
	"github.com/WictorCampos/playlist-inteligente/internal/genre"
	"github.com/WictorCampos/playlist-inteligente/internal/mood"
	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
	"github.com/WictorCampos/playlist-inteligente/internal/storage"
	"github.com/WictorCampos/playlist-inteligente/internal/tracks"
)

// app is the wired pipeline shared by the one-shot command and the server.
type app struct {
	generator *playlist.Generator
	providers []string
	cached    bool
	rdb       *redis.Client
}

func (a *app) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

func spotifyCredentials(cfg config.Config) catalog.Credentials {
	return catalog.Credentials{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RedirectURI:  cfg.SpotifyRedirectURI,
	}
}

func openRedis(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opt), nil
}

func buildApp(ctx context.Context, cfg config.Config, opts cliOptions, logger *slog.Logger) (*app, error) {
	chain, err := ai.NewChain(ai.APIKeys{
		Anthropic: cfg.AnthropicAPIKey,
		OpenAI:    cfg.OpenAIAPIKey,
		Google:    cfg.GoogleAPIKey,
		XAI:       cfg.XAIAPIKey,
	}, opts.Provider, logger)
	if err != nil {
		return nil, err
	}

	if !cfg.HasSpotify() {
		return nil, errMissingSpotify
	}
	creds := spotifyCredentials(cfg)
	user, err := catalog.NewUserClient(ctx, creds, storage.NewTokenFile(""), logger)
	if err != nil {
		return nil, err
	}
	session := catalog.NewSession(user, catalog.NewAppClient(ctx, creds))

	rdb, err := openRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	vocab := genre.NewVocabulary(session, rdb, logger)
	matcher := genre.NewMatcher(vocab, genre.NewReconciler(chain, logger))
	resolver := tracks.NewResolver(session,
		tracks.WithGenreMatcher(matcher),
		tracks.WithLogger(logger),
	)

	return &app{
		generator: playlist.NewGenerator(
			mood.NewExtractor(chain, logger),
			resolver,
			playlist.NewPublisher(session, logger),
			logger,
		),
		providers: chain.Providers(),
		cached:    rdb != nil,
		rdb:       rdb,
	}, nil
}
