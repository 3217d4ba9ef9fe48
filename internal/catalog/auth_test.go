package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

type memTokenStore struct {
	tok   *oauth2.Token
	saves int
	err   error
}

func (m *memTokenStore) LoadToken() (*oauth2.Token, error) { return m.tok, nil }

func (m *memTokenStore) SaveToken(tok *oauth2.Token) error {
	m.saves++
	m.tok = tok
	return m.err
}

type sequenceSource struct {
	tokens []string
	err    error
}

func (s *sequenceSource) Token() (*oauth2.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	tok := &oauth2.Token{AccessToken: s.tokens[0]}
	if len(s.tokens) > 1 {
		s.tokens = s.tokens[1:]
	}
	return tok, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSavingTokenSourcePersistsRefreshes(t *testing.T) {
	store := &memTokenStore{}
	src := &savingTokenSource{
		base:   &sequenceSource{tokens: []string{"old", "old", "new"}},
		store:  store,
		last:   "old",
		logger: discard(),
	}

	for range 3 {
		if _, err := src.Token(); err != nil {
			t.Fatal(err)
		}
	}
	if store.saves != 1 || store.tok.AccessToken != "new" {
		t.Fatalf("saves=%d tok=%+v", store.saves, store.tok)
	}
}

func TestSavingTokenSourceIgnoresSaveErrors(t *testing.T) {
	src := &savingTokenSource{
		base:   &sequenceSource{tokens: []string{"new"}},
		store:  &memTokenStore{err: errors.New("read-only")},
		last:   "old",
		logger: discard(),
	}
	tok, err := src.Token()
	if err != nil || tok.AccessToken != "new" {
		t.Fatalf("tok=%v err=%v", tok, err)
	}
}

func TestSavingTokenSourceWrapsRefreshError(t *testing.T) {
	base := errors.New("invalid_grant")
	src := &savingTokenSource{base: &sequenceSource{err: base}, store: &memTokenStore{}, logger: discard()}
	if _, err := src.Token(); !errors.Is(err, base) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewUserClientWithoutToken(t *testing.T) {
	_, err := NewUserClient(context.Background(), Credentials{ClientID: "id"}, &memTokenStore{}, discard())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthenticatorURL(t *testing.T) {
	auth := NewAuthenticator(Credentials{ClientID: "id", ClientSecret: "s", RedirectURI: "http://127.0.0.1:8888/callback"})
	u := auth.AuthURL("xyz")
	for _, want := range []string{"client_id=id", "state=xyz", "playlist-modify-public"} {
		if !strings.Contains(u, want) {
			t.Fatalf("auth url %q missing %q", u, want)
		}
	}
}
