package setup

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/WictorCampos/playlist-inteligente/internal/catalog"
	"github.com/WictorCampos/playlist-inteligente/internal/output"
)

// Authenticator is the authorization-code half of spotifyauth.Authenticator.
type Authenticator interface {
	AuthURL(state string, opts ...oauth2.AuthCodeOption) string
	Token(ctx context.Context, state string, r *http.Request, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// Login runs the browser based authorization flow once and stores the token.
type Login struct {
	Auth        Authenticator
	Store       catalog.TokenStore
	RedirectURI string
	Out         *output.Output
	// Open launches the browser; OpenBrowser when nil.
	Open func(url string)
}

func (l *Login) Run(ctx context.Context) error {
	u, err := url.Parse(l.RedirectURI)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid redirect uri %q", l.RedirectURI)
	}
	ln, err := net.Listen("tcp", u.Host)
	if err != nil {
		return fmt.Errorf("listen for spotify callback on %s: %w", u.Host, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return l.serve(ctx, ln, path)
}

type callbackResult struct {
	tok *oauth2.Token
	err error
}

func (l *Login) serve(ctx context.Context, ln net.Listener, path string) error {
	state, err := generateState()
	if err != nil {
		return err
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if st := r.FormValue("state"); st != state {
			http.Error(w, "state mismatch", http.StatusForbidden)
			return
		}
		tok, err := l.Auth.Token(r.Context(), state, r)
		if err != nil {
			http.Error(w, "Couldn't get token", http.StatusForbidden)
		} else {
			fmt.Fprint(w, "Login completed! You can now close this window.")
		}
		select {
		case results <- callbackResult{tok: tok, err: err}:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := l.Auth.AuthURL(state)
	l.Out.Info("Log in to Spotify by visiting:")
	l.Out.Info("  " + authURL)
	open := l.Open
	if open == nil {
		open = OpenBrowser
	}
	open(authURL)

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return fmt.Errorf("spotify authorization: %w", res.err)
	}
	if err := l.Store.SaveToken(res.tok); err != nil {
		return err
	}
	l.Out.Success("Logged in to Spotify.")
	return nil
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// PrintInstructions explains how to recover from a missing or rejected
// Spotify login.
func PrintInstructions(out *output.Output, err error) {
	if errors.Is(err, catalog.ErrNoToken) {
		out.Error("You are not logged in to Spotify.")
	} else {
		out.Error("Could not connect to Spotify: " + err.Error())
	}
	out.Print("Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, then run:")
	out.Print("  playlist login")
}
