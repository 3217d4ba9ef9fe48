package ai

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

const (
	grokEndpoint   = "https://api.x.ai/v1/chat/completions"
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
)

// ChatCompletions speaks the OpenAI-compatible chat completions protocol,
// which both OpenAI and xAI expose.
type ChatCompletions struct {
	name     string
	apiKey   string
	model    string
	endpoint string
	http     *resty.Client
}

func NewGrok(apiKey string) *ChatCompletions {
	return &ChatCompletions{name: "xai", apiKey: apiKey, model: "grok-4-1-fast-reasoning", endpoint: grokEndpoint, http: apiHTTPClient}
}

func NewOpenAI(apiKey string) *ChatCompletions {
	return &ChatCompletions{name: "openai", apiKey: apiKey, model: "gpt-4o-mini", endpoint: openAIEndpoint, http: apiHTTPClient}
}

func (c *ChatCompletions) Invoke(ctx context.Context, prompt string) (Response, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": maxTokens,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return Response{}, err
	}
	if err := checkStatus(c.name, resp); err != nil {
		return Response{}, err
	}

	var data struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return Response{}, err
	}
	text := ""
	if len(data.Choices) > 0 {
		text = data.Choices[0].Message.Content
	}
	return textResponse(text)
}
