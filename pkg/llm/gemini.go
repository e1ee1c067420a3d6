package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GenerativeClient defines the slice of the Gemini SDK the provider
// needs. The abstraction allows scripted clients in tests.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// sdkGeminiClient wraps the official SDK client to satisfy GenerativeClient.
type sdkGeminiClient struct {
	client *genai.Client
}

func (c *sdkGeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

// GeminiProvider implements Provider for the Gemini API.
type GeminiProvider struct {
	client GenerativeClient
	model  string
}

// NewGeminiProvider creates a Gemini completion provider from the
// configuration, constructing the SDK client.
func NewGeminiProvider(ctx context.Context, cfg ProviderConfig) (*GeminiProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("Gemini API key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: &sdkGeminiClient{client: client}, model: model}, nil
}

// NewGeminiProviderWithClient creates a provider around an existing
// client. Used by tests to inject scripted clients.
func NewGeminiProviderWithClient(client GenerativeClient, model string) *GeminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Complete sends the prompt as a single user turn and returns the
// response text.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("Gemini returned an empty response")
	}
	return text, nil
}
