package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"queryloop/pkg/llm"
)

// Config holds runtime configuration.
type Config struct {
	Provider          llm.ProviderType
	APIKey            string
	Model             string
	BaseURL           string
	MaxTokens         int
	CompletionTimeout time.Duration
	MaxIterations     int
	ServerConfigPath  string
	LogDir            string
	LogJSON           bool
}

const (
	defaultProvider         = string(llm.ProviderGemini)
	defaultTimeoutSeconds   = 10
	defaultMaxIterations    = 5
	defaultServerConfigPath = "capability-server.yaml"
	defaultLogDir           = "logs"
)

// Load loads configuration from environment variables.
func Load() (Config, error) {
	return LoadFromEnv(os.Getenv)
}

// LoadFromEnv loads configuration from a getenv-like function.
func LoadFromEnv(getenv func(string) string) (Config, error) {
	provider := llm.ProviderType(getOrDefault(getenv, "LLM_PROVIDER", defaultProvider))

	cfg := Config{
		Provider:          provider,
		APIKey:            apiKeyFor(getenv, provider),
		Model:             getenv("LLM_MODEL"),
		BaseURL:           getenv("LLM_BASE_URL"),
		MaxTokens:         getIntOrDefault(getenv, "LLM_MAX_TOKENS", 0),
		CompletionTimeout: time.Duration(getIntOrDefault(getenv, "COMPLETION_TIMEOUT_SECONDS", defaultTimeoutSeconds)) * time.Second,
		MaxIterations:     getIntOrDefault(getenv, "MAX_ITERATIONS", defaultMaxIterations),
		ServerConfigPath:  getOrDefault(getenv, "CAPABILITY_SERVER_CONFIG", defaultServerConfigPath),
		LogDir:            getOrDefault(getenv, "LOG_DIR", defaultLogDir),
		LogJSON:           getenv("LOG_JSON") == "true",
	}

	switch cfg.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		return Config{}, errors.New("LLM_PROVIDER must be gemini or openai")
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case llm.ProviderGemini:
			return Config{}, errors.New("GEMINI_API_KEY is required")
		default:
			return Config{}, errors.New("OPENAI_API_KEY is required")
		}
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = defaultTimeoutSeconds * time.Second
	}
	return cfg, nil
}

// ProviderConfig translates the runtime configuration into the
// completion provider's settings.
func (c Config) ProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Type:      c.Provider,
		APIKey:    c.APIKey,
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		MaxTokens: c.MaxTokens,
	}
}

// apiKeyFor picks the provider-specific key, falling back to the
// generic LLM_API_KEY.
func apiKeyFor(getenv func(string) string, provider llm.ProviderType) string {
	var key string
	switch provider {
	case llm.ProviderOpenAI:
		key = getenv("OPENAI_API_KEY")
	default:
		key = getenv("GEMINI_API_KEY")
	}
	if key == "" {
		key = getenv("LLM_API_KEY")
	}
	return key
}

func getOrDefault(getenv func(string) string, key, def string) string {
	val := getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getIntOrDefault(getenv func(string) string, key string, def int) int {
	val := getenv(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
