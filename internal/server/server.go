package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
)

// Pipeline turns a mood description into a published playlist.
type Pipeline interface {
	Handle(ctx context.Context, text string, limit int) (playlist.Response, error)
}

type Server struct {
	pipeline     Pipeline
	logger       *slog.Logger
	defaultLimit int
}

type Option func(*Server)

// WithDefaultLimit sets the track count used when a request has no limit.
func WithDefaultLimit(n int) Option {
	return func(s *Server) { s.defaultLimit = n }
}

func NewServer(p Pipeline, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{pipeline: p, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.HandleHealth)
	r.Get("/recommend", s.HandleRecommend)
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "playlist-inteligente",
	})
}
