// Package llm wraps text-completion providers behind a single interface
// and isolates their blocking calls from the agent loop.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider is the unified interface for text-completion backends.
type Provider interface {
	// Complete sends a prompt and returns the model's raw text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g. "gemini", "openai").
	Name() string
}

// ProviderType identifies the completion backend.
type ProviderType string

const (
	// ProviderGemini uses the Gemini API via the official SDK.
	ProviderGemini ProviderType = "gemini"

	// ProviderOpenAI uses OpenAI-compatible chat completion APIs
	// (OpenAI, OpenRouter, DeepSeek, etc.).
	ProviderOpenAI ProviderType = "openai"
)

// ProviderConfig contains configuration for creating a completion provider.
type ProviderConfig struct {
	// Type specifies which provider to use.
	Type ProviderType

	// BaseURL is the API base URL (OpenAI-compatible providers only).
	BaseURL string

	// APIKey is the API authentication key.
	APIKey string

	// Model is the model identifier.
	Model string

	// MaxTokens limits the response token count.
	MaxTokens int
}

// NewProvider creates a completion provider based on the configuration.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown completion provider type: %s", cfg.Type)
	}
}

// DefaultTimeout bounds a single completion call when the caller does not
// configure one.
const DefaultTimeout = 10 * time.Second
