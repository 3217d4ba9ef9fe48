package ai

import (
	"context"
	"errors"
	"testing"
)

func TestNewChainOrder(t *testing.T) {
	c, err := NewChain(APIKeys{Google: "g", Anthropic: "a", XAI: "x"}, "claude", nil)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	got := c.Providers()
	want := []string{"claude", "gemini", "grok"}
	if len(got) != len(want) {
		t.Fatalf("providers: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("providers: %v", got)
		}
	}

	if _, err := NewChain(APIKeys{}, "", nil); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestChainFailover(t *testing.T) {
	calls := 0
	failing := GeneratorFunc(func(ctx context.Context, prompt string) (Response, error) {
		calls++
		return Response{}, errors.New("down")
	})
	working := GeneratorFunc(func(ctx context.Context, prompt string) (Response, error) {
		calls++
		return Response{Content: "ok:" + prompt}, nil
	})

	c := &Chain{providers: []namedGenerator{{"a", failing}, {"b", working}}, logger: discardLogger()}
	resp, err := c.Invoke(context.Background(), "p")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if resp.Content != "ok:p" || calls != 2 {
		t.Fatalf("resp=%q calls=%d", resp.Content, calls)
	}

	c = &Chain{providers: []namedGenerator{{"a", failing}, {"b", failing}}, logger: discardLogger()}
	if _, err := c.Invoke(context.Background(), "p"); err == nil {
		t.Fatalf("expected joined error")
	}
}
