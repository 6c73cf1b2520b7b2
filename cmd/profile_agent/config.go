package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/config"
	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/validation"
)

// loadConfig reads --config (or the environment alone) and fills every unset
// value from the defaults. Command flags are applied by the caller.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if rootConfigPath != "" {
		cfg, err = config.LoadConfig(rootConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.FromEnv()
		if err != nil {
			return nil, err
		}
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if rootVerbose {
		merged.Verbose = true
	}
	return &merged, nil
}

// generatorFlags are shared by extract and run
type generatorFlags struct {
	apiKeyFile string
	provider   string
	model      string
	project    string
	location   string
	timeout    int
	retries    int
	strict     bool
}

func (g *generatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.apiKeyFile, "api-key-file", "", "File holding the Gemini API key (default api_key.txt; GEMINI_API_KEY overrides)")
	cmd.Flags().StringVar(&g.provider, "provider", "", "Generator provider: gemini or vertex")
	cmd.Flags().StringVar(&g.model, "model", "", "Model name (default gemini-2.5-flash)")
	cmd.Flags().StringVar(&g.project, "project", "", "Google Cloud project (vertex provider)")
	cmd.Flags().StringVar(&g.location, "location", "", "Google Cloud region (vertex provider)")
	cmd.Flags().IntVar(&g.timeout, "timeout", 0, "Per-attempt timeout in seconds (default 120)")
	cmd.Flags().IntVar(&g.retries, "retries", 0, "Retries on transient generator errors (default 2, 0 disables)")
	cmd.Flags().BoolVar(&g.strict, "strict", false, "Fail when the profile breaks a data-quality check")
}

func (g *generatorFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("api-key-file") {
		cfg.APIKeyFile = g.apiKeyFile
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = g.provider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = g.model
	}
	if cmd.Flags().Changed("project") {
		cfg.Project = g.project
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = g.location
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = g.timeout
	}
	if cmd.Flags().Changed("retries") {
		cfg.SetRetries(g.retries)
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = g.strict
	}
}

// validationOptions returns the data-quality settings from cfg
func validationOptions(cfg *config.Config) validation.Options {
	return validation.Options{
		Limits:           validation.DefaultLimits(),
		ForbiddenPhrases: cfg.ForbiddenPhrases,
	}
}

// newClient is replaced in tests
var newClient = extraction.NewClient
