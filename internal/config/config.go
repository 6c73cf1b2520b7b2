// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/profile-builder/internal/slide"
)

// PlaceholderAPIKey is the value shipped in the sample credential file
const PlaceholderAPIKey = "write_your_api_key_here"

var (
	// ErrMissingAPIKey is returned when the credential file does not exist
	ErrMissingAPIKey = errors.New("API key file not found")
	// ErrPlaceholderAPIKey is returned when the credential is empty or still the sample value
	ErrPlaceholderAPIKey = errors.New("API key is not set")
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
// Environment variables override values read from the file.
type Config struct {
	// Paths
	ResumePath   string `json:"resume_path,omitempty" env:"PROFILE_RESUME_PATH"`     // Résumé text, .pdf or .docx
	ProfilePath  string `json:"profile_path,omitempty" env:"PROFILE_JSON_PATH"`      // Extracted profile JSON
	TemplatePath string `json:"template_path,omitempty" env:"PROFILE_TEMPLATE_PATH"` // Slide template (.pptx)
	SlidePath    string `json:"slide_path,omitempty" env:"PROFILE_SLIDE_PATH"`       // Rendered slide output
	SQLPath      string `json:"sql_path,omitempty" env:"PROFILE_SQL_PATH"`           // Generated SQL script
	APIKeyFile   string `json:"api_key_file,omitempty" env:"PROFILE_API_KEY_FILE"`   // File holding the Gemini API key
	LogFile      string `json:"log_file,omitempty" env:"PROFILE_LOG_FILE"`           // Rotating log file

	// Generator
	APIKey         string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	Provider       string `json:"provider,omitempty" env:"PROFILE_PROVIDER" validate:"omitempty,oneof=gemini vertex"`
	Model          string `json:"model,omitempty" env:"PROFILE_MODEL"`
	Project        string `json:"project,omitempty" env:"PROFILE_VERTEX_PROJECT"`   // Vertex AI project
	Location       string `json:"location,omitempty" env:"PROFILE_VERTEX_LOCATION"` // Vertex AI region
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" env:"PROFILE_TIMEOUT_SECONDS" validate:"gte=0"`
	Retries        int    `json:"retries,omitempty" env:"PROFILE_RETRIES" validate:"gte=0,lte=10"` // 0 disables retries when set explicitly

	// Behavior
	Strict      bool   `json:"strict,omitempty" env:"PROFILE_STRICT"` // Fail on soft-invariant violations
	Verbose     bool   `json:"verbose,omitempty" env:"PROFILE_VERBOSE"`
	SlideIndex  int    `json:"slide_index,omitempty" env:"PROFILE_SLIDE_INDEX" validate:"gte=0"`
	ExecutiveID string `json:"executive_id,omitempty" env:"PROFILE_EXECUTIVE_ID" validate:"omitempty,numeric"`
	DatabaseURL string `json:"database_url,omitempty" env:"DATABASE_URL"` // PostgreSQL connection URL

	// Names that must not appear in a profile, e.g. former employers
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty" env:"PROFILE_FORBIDDEN_PHRASES" envSeparator:","`

	// Template shape names
	Layout slide.Layout `json:"layout"`

	retriesSet bool
}

// Defaults returns the configuration used when neither a file nor flags
// provide a value.
func Defaults() Config {
	return Config{
		ResumePath:     "cv_text.txt",
		ProfilePath:    "json_output.json",
		TemplatePath:   "template.pptx",
		SlidePath:      "profile.pptx",
		SQLPath:        "sql_output.sql",
		APIKeyFile:     "api_key.txt",
		Provider:       "gemini",
		Model:          "gemini-2.5-flash",
		Location:       "us-central1",
		TimeoutSeconds: 120,
		Retries:        2,
		Layout:         slide.DefaultLayout(),
	}
}

// SetRetries sets Retries and marks it explicit, so a zero survives
// MergeWithDefaults
func (c *Config) SetRetries(n int) {
	c.Retries = n
	c.retriesSet = true
}

// markExplicit records fields whose zero value was given on purpose
func (c *Config) markExplicit(data []byte) {
	if v, ok := os.LookupEnv("PROFILE_RETRIES"); ok && v != "" {
		c.retriesSet = true
		return
	}
	if data == nil {
		return
	}
	var present struct {
		Retries *int `json:"retries"`
	}
	if err := json.Unmarshal(data, &present); err == nil && present.Retries != nil {
		c.retriesSet = true
	}
}

// LoadConfig loads configuration from a JSON file and applies environment
// overrides. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	cfg.markExplicit(data)

	return &cfg, nil
}

// FromEnv builds a configuration from environment variables only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.markExplicit(nil)
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	// The renderer only understands OOXML presentations
	if c.TemplatePath != "" && filepath.Ext(c.TemplatePath) != ".pptx" {
		return fmt.Errorf("config error: template must be a .pptx file: %s", c.TemplatePath)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.ResumePath, defaults.ResumePath)
	fill(&result.ProfilePath, defaults.ProfilePath)
	fill(&result.TemplatePath, defaults.TemplatePath)
	fill(&result.SlidePath, defaults.SlidePath)
	fill(&result.SQLPath, defaults.SQLPath)
	fill(&result.APIKeyFile, defaults.APIKeyFile)
	fill(&result.LogFile, defaults.LogFile)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.Provider, defaults.Provider)
	fill(&result.Model, defaults.Model)
	fill(&result.Project, defaults.Project)
	fill(&result.Location, defaults.Location)
	fill(&result.ExecutiveID, defaults.ExecutiveID)
	fill(&result.DatabaseURL, defaults.DatabaseURL)

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Retries == 0 && !result.retriesSet {
		result.Retries = defaults.Retries
	}
	if result.SlideIndex == 0 {
		result.SlideIndex = defaults.SlideIndex
	}

	// Bool fields: true wins
	result.Strict = result.Strict || defaults.Strict
	result.Verbose = result.Verbose || defaults.Verbose

	if len(result.ForbiddenPhrases) == 0 {
		result.ForbiddenPhrases = defaults.ForbiddenPhrases
	}

	result.Layout = result.Layout.MergeWithDefaults()

	return result
}

// LoadAPIKey returns the Gemini API key. A non-empty envKey takes precedence;
// otherwise the trimmed content of path is used. A missing file yields
// ErrMissingAPIKey, an empty or sample value ErrPlaceholderAPIKey.
func LoadAPIKey(path, envKey string) (string, error) {
	if key := strings.TrimSpace(envKey); key != "" {
		if key == PlaceholderAPIKey {
			return "", fmt.Errorf("%w: GEMINI_API_KEY holds the placeholder value", ErrPlaceholderAPIKey)
		}
		return key, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: create %s containing your Gemini API key", ErrMissingAPIKey, path)
		}
		return "", fmt.Errorf("failed to read API key file %s: %w", path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" || key == PlaceholderAPIKey {
		return "", fmt.Errorf("%w: replace the contents of %s with your Gemini API key", ErrPlaceholderAPIKey, path)
	}
	return key, nil
}
