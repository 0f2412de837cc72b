// Package llm provides clients for the extraction language model.
package llm

import (
	"context"
)

// LLMClient is the interface the extraction service depends on. Use it for
// dependency injection so tests can substitute a mock.
type LLMClient interface {
	// GenerateResponse generates a single chat completion.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure implementations satisfy LLMClient at compile time.
var (
	_ LLMClient = (*Client)(nil)
	_ LLMClient = (*AnthropicClient)(nil)
	_ LLMClient = (*MockLLMClient)(nil)
)
