package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
)

const maxTextLen = 1000

func (s *Server) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(text) > maxTextLen {
		writeError(w, http.StatusBadRequest, "text is too long")
		return
	}

	limit := s.defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	// A playlist is created before its tracks are added; a client going away
	// must not stop the pipeline halfway. Outbound calls carry their own
	// timeouts.
	resp, err := s.pipeline.Handle(context.WithoutCancel(r.Context()), text, limit)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var f *playlist.Failure
	if !errors.As(err, &f) {
		s.logger.Error("recommend failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeError(w, failureStatus(f), f.Message())
}

func failureStatus(f *playlist.Failure) int {
	switch f.Reason {
	case playlist.ReasonUnprocessable:
		return http.StatusUnprocessableEntity
	case playlist.ReasonNoTracks:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
