package ai

import (
	"context"
	"errors"
)

// ErrEmptyContent is returned when a provider answers without any text.
var ErrEmptyContent = errors.New("ai response has no text content")

// Response is the textual answer of a generative call.
type Response struct {
	Content string
}

// Generator turns a prompt into text.
type Generator interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (Response, error)

func (f GeneratorFunc) Invoke(ctx context.Context, prompt string) (Response, error) {
	return f(ctx, prompt)
}

type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
	XAI       string
}
