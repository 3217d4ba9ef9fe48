package ai

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type Gemini struct {
	apiKey   string
	endpoint string
	http     *resty.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey, endpoint: geminiEndpoint, http: apiHTTPClient}
}

func (g *Gemini) Invoke(ctx context.Context, prompt string) (Response, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]int{"maxOutputTokens": maxTokens},
	}
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(payload).
		Post(g.endpoint)
	if err != nil {
		return Response{}, err
	}
	if err := checkStatus("gemini", resp); err != nil {
		return Response{}, err
	}

	var data struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return Response{}, err
	}
	text := ""
	if len(data.Candidates) > 0 {
		for _, p := range data.Candidates[0].Content.Parts {
			text += p.Text
		}
	}
	return textResponse(text)
}
