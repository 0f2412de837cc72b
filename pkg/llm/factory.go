package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/config"
)

// NewExtractionClient builds the LLM client for the configured extraction
// provider. The returned value is the LLMClient interface so callers can
// inject mocks.
func NewExtractionClient(cfg *config.ExtractionConfig, logger *zap.Logger) (LLMClient, error) {
	clientCfg := &Config{
		Endpoint: cfg.BaseURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}

	switch cfg.Provider {
	case "openai":
		client, err := NewClient(clientCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return client, nil
	case "anthropic":
		client, err := NewAnthropicClient(clientCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create anthropic client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported extraction provider %q", cfg.Provider)
	}
}
