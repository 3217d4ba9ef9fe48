package genre

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/WictorCampos/playlist-inteligente/internal/ai"
)

// Reconciler maps an arbitrary genre onto a closed vocabulary.
type Reconciler struct {
	gen    ai.Generator
	logger *slog.Logger
	pick   func(n int) int
}

func NewReconciler(gen ai.Generator, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{gen: gen, logger: logger, pick: rand.IntN}
}

// Reconcile always returns a member of available, unless available is empty
// in which case genre is returned as is.
func (r *Reconciler) Reconcile(ctx context.Context, genre string, available []string) string {
	if len(available) == 0 {
		return genre
	}
	if match, ok := lookup(genre, available); ok {
		return match
	}

	resp, err := r.gen.Invoke(ctx, reconcilePrompt(genre, available))
	if err != nil {
		choice := r.random(available)
		r.logger.Warn("genre reconciliation failed, picked at random", "genre", genre, "choice", choice, "err", err)
		return choice
	}
	answer := normalize(ai.FirstLine(resp.Content))
	if match, ok := lookup(answer, available); ok {
		r.logger.Debug("genre reconciled", "genre", genre, "choice", match)
		return match
	}
	choice := r.random(available)
	r.logger.Warn("model suggested unknown genre, picked at random", "genre", genre, "suggestion", answer, "choice", choice)
	return choice
}

func (r *Reconciler) random(available []string) string {
	return available[r.pick(len(available))]
}

func lookup(genre string, available []string) (string, bool) {
	want := normalize(genre)
	if want == "" {
		return "", false
	}
	for _, g := range available {
		if normalize(g) == want {
			return g, true
		}
	}
	return "", false
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`.*")
	return strings.ToLower(strings.TrimSpace(s))
}

func reconcilePrompt(genre string, available []string) string {
	return fmt.Sprintf(`These are the only genres the music catalog accepts:
%s

Which one of them is closest to %q?
Answer with exactly one genre from the list, written exactly as in the list, and nothing else.`,
		strings.Join(available, ", "), genre)
}

// Matcher reconciles genres against the live vocabulary.
type Matcher struct {
	vocab *Vocabulary
	rec   *Reconciler
}

func NewMatcher(vocab *Vocabulary, rec *Reconciler) *Matcher {
	return &Matcher{vocab: vocab, rec: rec}
}

func (m *Matcher) Match(ctx context.Context, genre string) string {
	return m.rec.Reconcile(ctx, genre, m.vocab.Genres(ctx))
}
