package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderGrok   Provider = "grok"
)

const (
	defaultRedirectURI = "http://127.0.0.1:8888/callback"
	defaultListenAddr  = ":8000"
	defaultLimit       = 10
)

type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	XAIAPIKey       string

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURI  string

	// RedisURL is optional; without it the genre vocabulary is not cached.
	RedisURL string

	ListenAddr      string
	DefaultProvider Provider
	DefaultLimit    int
}

type fileConfig struct {
	DefaultProvider Provider `json:"defaultProvider"`
	DefaultLimit    int      `json:"defaultLimit"`
	ListenAddr      string   `json:"listenAddr"`
	RedisURL        string   `json:"redisUrl"`
	RedirectURI     string   `json:"redirectUri"`
}

func init() {
	_ = godotenv.Load()
}

func Load() Config {
	return load(os.Getenv, filePath())
}

func load(getenv func(string) string, path string) Config {
	fc := readFileConfig(path)

	listen := firstNonEmpty(fc.ListenAddr, defaultListenAddr)
	if port := getenv("PORT"); port != "" {
		listen = ":" + port
	}

	provider := fc.DefaultProvider
	if provider == "" {
		provider = ProviderGemini
	}

	limit := fc.DefaultLimit
	if n, err := strconv.Atoi(getenv("PLAYLIST_DEFAULT_LIMIT")); err == nil && n > 0 {
		limit = n
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	return Config{
		AnthropicAPIKey:     getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:        getenv("OPENAI_API_KEY"),
		GoogleAPIKey:        firstNonEmpty(getenv("GEMINI_API_KEY"), getenv("GOOGLE_API_KEY")),
		XAIAPIKey:           firstNonEmpty(getenv("XAI_API_KEY"), getenv("GROK_API_KEY")),
		SpotifyClientID:     getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURI:  firstNonEmpty(getenv("SPOTIFY_REDIRECT_URI"), fc.RedirectURI, defaultRedirectURI),
		RedisURL:            firstNonEmpty(getenv("REDIS_URL"), fc.RedisURL),
		ListenAddr:          listen,
		DefaultProvider:     provider,
		DefaultLimit:        limit,
	}
}

// HasSpotify reports whether the Spotify application credentials are set.
func (c Config) HasSpotify() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

func filePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "playlist-inteligente", "config.json")
}

func readFileConfig(path string) fileConfig {
	if path == "" {
		return fileConfig{}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}
	}
	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return fileConfig{}
	}
	return fc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
