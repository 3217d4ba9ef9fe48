package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// RequestTimeout bounds every outbound Spotify call.
const RequestTimeout = 10 * time.Second

// Scopes needed to read the user id and write public playlists.
var Scopes = []string{spotifyauth.ScopeUserReadPrivate, spotifyauth.ScopePlaylistModifyPublic}

// ErrNoToken means nobody has logged in yet.
var ErrNoToken = errors.New("no spotify token stored, run `playlist login`")

type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// TokenStore persists the user's OAuth token between runs.
type TokenStore interface {
	LoadToken() (*oauth2.Token, error)
	SaveToken(tok *oauth2.Token) error
}

func NewAuthenticator(creds Credentials) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithRedirectURL(creds.RedirectURI),
		spotifyauth.WithScopes(Scopes...),
		spotifyauth.WithClientID(creds.ClientID),
		spotifyauth.WithClientSecret(creds.ClientSecret),
	)
}

func oauthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: spotifyauth.TokenURL,
		},
	}
}

func timeoutContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: RequestTimeout})
}

// NewUserClient builds the long lived user client from the stored token.
// Refreshed tokens are written back to the store.
func NewUserClient(ctx context.Context, creds Credentials, store TokenStore, logger *slog.Logger) (*spotify.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tok, err := store.LoadToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrNoToken
	}
	ctx = timeoutContext(ctx)
	src := &savingTokenSource{
		base:   oauthConfig(creds).TokenSource(ctx, tok),
		store:  store,
		last:   tok.AccessToken,
		logger: logger,
	}
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = RequestTimeout
	return spotify.New(hc), nil
}

// NewAppClient builds a client-credentials client. It can only read the
// public catalog.
func NewAppClient(ctx context.Context, creds Credentials) *spotify.Client {
	cfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	hc := cfg.Client(timeoutContext(ctx))
	hc.Timeout = RequestTimeout
	return spotify.New(hc)
}

type savingTokenSource struct {
	base   oauth2.TokenSource
	store  TokenStore
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh spotify token: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.store.SaveToken(tok); err != nil {
			s.logger.Warn("could not persist refreshed spotify token", "err", err)
		}
	}
	return tok, nil
}
