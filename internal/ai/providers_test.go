package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
)

func TestClaudeInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "k" {
			t.Fatalf("x-api-key: %q", got)
		}
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Messages) != 1 || body.Messages[0].Content != "hello" {
			t.Fatalf("unexpected body: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"hi "},{"type":"text","text":"there"}]}`)
	}))
	defer srv.Close()

	c := &Claude{apiKey: "k", model: "m", endpoint: srv.URL, http: resty.New()}
	resp, err := c.Invoke(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if resp.Content != "hi there" {
		t.Fatalf("content: %q", resp.Content)
	}
}

func TestGeminiInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "g" {
			t.Fatalf("key: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"mood\":\"feliz\"}"}]}}]}`)
	}))
	defer srv.Close()

	g := &Gemini{apiKey: "g", endpoint: srv.URL, http: resty.New()}
	resp, err := g.Invoke(context.Background(), "p")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if resp.Content != `{"mood":"feliz"}` {
		t.Fatalf("content: %q", resp.Content)
	}
}

func TestChatCompletionsErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer x" {
				t.Fatalf("auth: %q", got)
			}
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":"slow down"}`)
		}))
		defer srv.Close()

		c := &ChatCompletions{name: "xai", apiKey: "x", endpoint: srv.URL, http: resty.New()}
		_, err := c.Invoke(context.Background(), "p")
		if err == nil || !strings.Contains(err.Error(), "429") {
			t.Fatalf("expected status error, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"  "}}]}`)
		}))
		defer srv.Close()

		c := &ChatCompletions{name: "openai", apiKey: "x", endpoint: srv.URL, http: resty.New()}
		_, err := c.Invoke(context.Background(), "p")
		if err != ErrEmptyContent {
			t.Fatalf("expected ErrEmptyContent, got %v", err)
		}
	})
}
