// Package llm provides centralized LLM configuration and client abstractions.
// Clients for the Gemini API and for Vertex AI share one interface so the
// extraction stage does not depend on a provider SDK.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap, fast calls
	TierLite ModelTier = "lite"
	// TierStandard is used for profile extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or difficult résumés
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Gemini API, authenticated with an API key
	ProviderGemini Provider = "gemini"
	// ProviderVertex is Vertex AI, authenticated with application default credentials
	ProviderVertex Provider = "vertex"
)

// Default retry policy values
const (
	DefaultTimeout    = 120 * time.Second
	DefaultMaxRetries = 2
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string

	// Vertex AI only
	Project  string
	Location string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Location: "us-central1",
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithProvider returns a new Config targeting provider. Vertex settings are
// only replaced when non-empty.
func (c *Config) WithProvider(provider Provider, project, location string) *Config {
	newConfig := c.clone()
	newConfig.Provider = provider
	if project != "" {
		newConfig.Project = project
	}
	if location != "" {
		newConfig.Location = location
	}
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)),
		Project:  c.Project,
		Location: c.Location,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return newConfig
}
