package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

var storageDir string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		storageDir = "."
		return
	}
	storageDir = filepath.Join(home, ".playlist-inteligente")
}

// TokenFile keeps the Spotify OAuth token as JSON on disk.
type TokenFile struct {
	path string
}

func NewTokenFile(path string) *TokenFile {
	if path == "" {
		path = filepath.Join(storageDir, "token.json")
	}
	return &TokenFile{path: path}
}

func (f *TokenFile) Path() string { return f.path }

// LoadToken returns nil, nil when no token was saved yet.
func (f *TokenFile) LoadToken() (*oauth2.Token, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file %s: %w", f.path, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, nil
	}
	return &tok, nil
}

func (f *TokenFile) SaveToken(tok *oauth2.Token) error {
	if tok == nil {
		return errors.New("nil token")
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "token-*.json")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, 0o600); err != nil {
		return err
	}
	return os.Rename(name, f.path)
}
