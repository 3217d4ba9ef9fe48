package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
)

const claudeEndpoint = "https://api.anthropic.com/v1/messages"

type Claude struct {
	apiKey   string
	model    string
	endpoint string
	http     *resty.Client
}

func NewClaude(apiKey string) *Claude {
	return &Claude{apiKey: apiKey, model: "claude-sonnet-4-5", endpoint: claudeEndpoint, http: apiHTTPClient}
}

func (c *Claude) Invoke(ctx context.Context, prompt string) (Response, error) {
	payload := map[string]any{
		"model":      c.model,
		"max_tokens": maxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return Response{}, err
	}
	if err := checkStatus("claude", resp); err != nil {
		return Response{}, err
	}

	var data struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return Response{}, err
	}
	parts := make([]string, 0, len(data.Content))
	for _, c := range data.Content {
		if c.Type == "" || c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	return textResponse(strings.Join(parts, ""))
}

func textResponse(text string) (Response, error) {
	if strings.TrimSpace(text) == "" {
		return Response{}, ErrEmptyContent
	}
	return Response{Content: text}, nil
}
