package extraction

import (
	"context"
	"time"

	"github.com/jonathan/profile-builder/internal/config"
	"github.com/jonathan/profile-builder/internal/llm"
)

// ClientOptions selects and authenticates the generator
type ClientOptions struct {
	Provider   llm.Provider
	Model      string
	APIKey     string // Takes precedence over APIKeyFile
	APIKeyFile string
	Project    string // Vertex AI only
	Location   string // Vertex AI only
	Timeout    time.Duration
	Retries    int
}

// ClientOptionsFromConfig maps CLI configuration to client options
func ClientOptionsFromConfig(cfg *config.Config) ClientOptions {
	return ClientOptions{
		Provider:   llm.Provider(cfg.Provider),
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		APIKeyFile: cfg.APIKeyFile,
		Project:    cfg.Project,
		Location:   cfg.Location,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		Retries:    cfg.Retries,
	}
}

// NewClient builds the generator client wrapped with the retry policy. Every
// failure here is a *ConfigError and happens before any network call.
func NewClient(ctx context.Context, opts ClientOptions) (llm.Client, error) {
	cfg := llm.DefaultConfig()
	if opts.Provider != "" {
		cfg = cfg.WithProvider(opts.Provider, opts.Project, opts.Location)
	}
	if opts.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, opts.Model)
	}

	var apiKey string
	if cfg.Provider != llm.ProviderVertex {
		key, err := config.LoadAPIKey(opts.APIKeyFile, opts.APIKey)
		if err != nil {
			return nil, &ConfigError{Message: "cannot load API key", Cause: err}
		}
		apiKey = key
	} else if cfg.Project == "" {
		return nil, &ConfigError{Message: "Vertex AI provider requires a project"}
	}

	client, err := llm.NewClient(ctx, cfg, apiKey, llm.TierStandard)
	if err != nil {
		return nil, &ConfigError{Message: "failed to create generator client", Cause: err}
	}

	policy := llm.DefaultRetryPolicy()
	policy.MaxRetries = opts.Retries
	if opts.Timeout > 0 {
		policy.Timeout = opts.Timeout
	}
	return llm.NewRetryingClient(client, policy), nil
}
