package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGrok   = "grok"
)

// ErrNoProviders means no API key is configured for any provider.
var ErrNoProviders = errors.New("no api keys configured")

type namedGenerator struct {
	name string
	gen  Generator
}

// Chain asks each configured provider in turn and returns the first usable
// answer.
type Chain struct {
	providers []namedGenerator
	logger    *slog.Logger
}

// NewChain builds a chain from the configured keys. The preferred provider,
// when it has a key, goes first.
func NewChain(keys APIKeys, preferred string, logger *slog.Logger) (*Chain, error) {
	if logger == nil {
		logger = slog.Default()
	}
	all := []namedGenerator{}
	if keys.Google != "" {
		all = append(all, namedGenerator{name: ProviderGemini, gen: NewGemini(keys.Google)})
	}
	if keys.Anthropic != "" {
		all = append(all, namedGenerator{name: ProviderClaude, gen: NewClaude(keys.Anthropic)})
	}
	if keys.OpenAI != "" {
		all = append(all, namedGenerator{name: ProviderOpenAI, gen: NewOpenAI(keys.OpenAI)})
	}
	if keys.XAI != "" {
		all = append(all, namedGenerator{name: ProviderGrok, gen: NewGrok(keys.XAI)})
	}
	if len(all) == 0 {
		return nil, ErrNoProviders
	}

	preferred = strings.ToLower(preferred)
	ordered := make([]namedGenerator, 0, len(all))
	for _, p := range all {
		if p.name == preferred {
			ordered = append(ordered, p)
		}
	}
	for _, p := range all {
		if p.name != preferred {
			ordered = append(ordered, p)
		}
	}
	return &Chain{providers: ordered, logger: logger}, nil
}

// Providers lists provider names in the order they are tried.
func (c *Chain) Providers() []string {
	out := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		out = append(out, p.name)
	}
	return out
}

func (c *Chain) Invoke(ctx context.Context, prompt string) (Response, error) {
	var errs []error
	for _, p := range c.providers {
		resp, err := p.gen.Invoke(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		c.logger.Warn("ai provider failed", "provider", p.name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
		if ctx.Err() != nil {
			break
		}
	}
	return Response{}, errors.Join(errs...)
}
