package llm

import (
	"context"
	"fmt"
)

// StructuredRequest is a single schema-constrained generation call
type StructuredRequest struct {
	// SystemInstruction is sent as the model's system prompt
	SystemInstruction string
	// Prompt is the user turn
	Prompt string
	// Schema constrains the JSON response; nil requests free-form JSON
	Schema *Schema
	// Temperature of 0 is the most deterministic setting
	Temperature float32
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateStructured returns the JSON document produced for req, with any
	// markdown fences removed
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
	// Model returns the provider model name used for calls
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration. apiKey is only
// used by the Gemini provider.
func NewClient(ctx context.Context, config *Config, apiKey string, tier ModelTier) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	model := config.GetModel(tier)
	if model == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, apiKey, model)
	case ProviderVertex:
		return NewVertexClient(ctx, config.Project, config.Location, model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
