package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const (
	openaiAPIPath          = "/v1/chat/completions"
	defaultOpenAIMaxTokens = 4096
)

// OpenAIProvider implements Provider for OpenAI-compatible chat APIs.
// This supports OpenAI, OpenRouter, DeepSeek, and other compatible
// endpoints. Each call is a single attempt: a failed completion ends the
// run, so there is no retry machinery here.
type OpenAIProvider struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	HTTPClient *http.Client
}

// NewOpenAIProvider creates an OpenAI-compatible completion provider.
func NewOpenAIProvider(cfg ProviderConfig) *OpenAIProvider {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultOpenAIMaxTokens
	}
	return &OpenAIProvider{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: maxTokens,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openaiResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int           `json:"index"`
		Message      openaiMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the
// first choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(p.BaseURL) == "" {
		return "", errors.New("OpenAI API base URL is empty")
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", errors.New("OpenAI API key is empty")
	}
	if strings.TrimSpace(p.Model) == "" {
		return "", errors.New("OpenAI API model is empty")
	}

	payload, err := json.Marshal(openaiRequest{
		Model:     p.Model,
		Messages:  []openaiMessage{{Role: "user", Content: prompt}},
		MaxTokens: p.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	respBody, status, err := p.doRequest(ctx, payload)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", wrapOpenAIAPIError(respBody, status)
	}

	return parseOpenAIResponse(respBody)
}

func (p *OpenAIProvider) doRequest(ctx context.Context, payload []byte) ([]byte, int, error) {
	base := strings.TrimRight(p.BaseURL, "/")
	// Avoid doubling the path if BaseURL already includes it
	if !strings.HasSuffix(base, openaiAPIPath) {
		base = base + openaiAPIPath
	}
	log.Printf("[openai-provider] POST %s", base)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode, nil
}

func parseOpenAIResponse(body []byte) (string, error) {
	if len(body) == 0 {
		return "", errors.New("API returned empty response body")
	}
	var resp openaiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func wrapOpenAIAPIError(body []byte, status int) error {
	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		return fmt.Errorf("OpenAI API error %d: %s - %s", status, errResp.Error.Type, errResp.Error.Message)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("OpenAI API error: %d %s", status, msg)
}
