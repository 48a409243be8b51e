// Package openai implements ports.OpsAdvisor with the OpenAI Chat Completions API in JSON mode.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"moving-presurvey-service/internal/platform/upstream"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"

	temperature = 0.2

	systemPrompt = `You are an expert access & operations assistant for a moving company in London.
Given JSON context (origin, destination, route, incidents, parking, building, safety, weather, datetime),
return STRICT JSON with actionable insights and clear recommendations.`
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Advisor struct {
	http    *upstream.Client
	apiKey  string
	model   string
	baseURL string
}

func NewAdvisor(apiKey, model string, opts upstream.Options) (*Advisor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is empty")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Advisor{http: upstream.New("openai", opts), apiKey: apiKey, model: model, baseURL: DefaultBaseURL}, nil
}

func (a *Advisor) WithBaseURL(u string) *Advisor {
	a.baseURL = strings.TrimRight(u, "/")
	return a
}

// Advise sends contextJSON as the user message and returns the model's
// JSON document. Content that is not valid JSON is reported as an
// *domain.UpstreamError with code "openai_bad_json" and the raw response.
func (a *Advisor) Advise(ctx context.Context, contextJSON []byte) (_ []byte, err error) {
	defer obs.Time(ctx, "openai.Advise")(&err)

	req := chatRequest{
		Model:       a.model,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(contextJSON)},
		},
	}
	req.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("openai advise: encode request: %w", err)
	}

	body, err := a.http.Fetch(ctx, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+a.apiKey)
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return nil, &domain.UpstreamError{Code: "openai_failed", Provider: "openai", Hint: fetchHint(err), Err: err}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil || len(decoded.Choices) == 0 {
		return nil, badJSON(body, err)
	}

	content := []byte(strings.TrimSpace(decoded.Choices[0].Message.Content))
	if !json.Valid(content) {
		return nil, badJSON(body, errors.New("completion content is not valid JSON"))
	}

	return content, nil
}

// fetchHint names the HTTP status without echoing the upstream body.
func fetchHint(err error) string {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP %d", se.Code)
	}
	return "UPSTREAM_ERROR"
}

func badJSON(raw []byte, cause error) error {
	var rawDoc any = string(raw)
	if json.Valid(raw) {
		rawDoc = json.RawMessage(raw)
	}
	if cause == nil {
		cause = errors.New("no completion choices")
	}
	return &domain.UpstreamError{Code: "openai_bad_json", Provider: "openai", Raw: rawDoc, Err: cause}
}
