package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/WictorCampos/playlist-inteligente/internal/ai"
	"github.com/WictorCampos/playlist-inteligente/internal/catalog"
	"github.com/WictorCampos/playlist-inteligente/internal/config"
	"github.com/WictorCampos/playlist-inteligente/internal/genre"
	"github.com/WictorCampos/playlist-inteligente/internal/logging"
	"github.com/WictorCampos/playlist-inteligente/internal/output"
	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
	"github.com/WictorCampos/playlist-inteligente/internal/server"
	"github.com/WictorCampos/playlist-inteligente/internal/setup"
	"github.com/WictorCampos/playlist-inteligente/internal/storage"
)

func newServeCmd(cfg config.Config, opts *cliOptions) *cobra.Command {
	addr := cfg.ListenAddr
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (/recommend, /health)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateProvider(opts); err != nil {
				return err
			}
			out := opts.output()
			logger := logging.Setup(os.Stderr, logging.Level(slog.LevelInfo, opts.Verbose), logJSON)

			app, err := buildApp(cmd.Context(), cfg, *opts, logger)
			if err != nil {
				return reportSetupError(out, err)
			}
			defer app.Close()

			logger.Info("pipeline ready", "providers", app.providers, "genre_cache", app.cached)
			return server.NewServer(app.generator, logger,
				server.WithDefaultLimit(playlist.NormalizeLimit(cfg.DefaultLimit)),
			).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	return cmd
}

func newLoginCmd(cfg config.Config, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize access to your Spotify account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output()
			if !cfg.HasSpotify() {
				return errMissingSpotify
			}
			creds := spotifyCredentials(cfg)
			store := storage.NewTokenFile("")
			login := &setup.Login{
				Auth:        catalog.NewAuthenticator(creds),
				Store:       store,
				RedirectURI: creds.RedirectURI,
				Out:         out,
			}
			if err := login.Run(cmd.Context()); err != nil {
				return err
			}
			if opts.JSON {
				return out.EmitJSON(map[string]any{"status": "ok", "action": "login", "tokenFile": store.Path()})
			}
			out.Info(out.Gray("Token saved to " + store.Path()))
			return nil
		},
	}
}

func newGenresCmd(cfg config.Config, opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genre vocabulary used to reconcile suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.output()
			logger := logging.Setup(os.Stderr, logging.Level(slog.LevelWarn, opts.Verbose), false)

			var source genre.Source
			if cfg.HasSpotify() {
				source = catalog.NewSession(nil, catalog.NewAppClient(cmd.Context(), spotifyCredentials(cfg)))
			}
			rdb, err := openRedis(cfg.RedisURL)
			if err != nil {
				return err
			}
			if rdb != nil {
				defer rdb.Close()
			}

			genres, origin := genre.NewVocabulary(source, rdb, logger).Lookup(cmd.Context())
			if opts.JSON {
				return out.EmitJSON(map[string]any{"source": origin, "genres": genres})
			}
			out.Info(out.Gray("source: " + string(origin)))
			for _, g := range genres {
				out.Print(g)
			}
			return nil
		},
	}
}

var errMissingSpotify = errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")

func reportSetupError(out *output.Output, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNoToken):
		setup.PrintInstructions(out, err)
		return reportedError{err: err}
	case errors.Is(err, ai.ErrNoProviders):
		out.Error("No API keys configured.")
		out.Error("Set at least one of: GEMINI_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY, XAI_API_KEY")
		return reportedError{err: err}
	}
	return err
}
