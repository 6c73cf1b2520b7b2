// Package extraction turns résumé text into a structured, anonymized Profile
// with one schema-constrained generator call.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/profile-builder/internal/llm"
	"github.com/jonathan/profile-builder/internal/prompts"
	"github.com/jonathan/profile-builder/internal/schemas"
	"github.com/jonathan/profile-builder/internal/types"
)

// Result is the outcome of a successful extraction
type Result struct {
	Profile *types.Profile
	// Raw is the JSON document exactly as returned by the generator, fences removed
	Raw []byte
	// Model is the model that produced the document
	Model string
}

// Extract sends resumeText to client and returns the parsed Profile. The call
// runs at temperature 0 with the fixed profile schema. A body that is not a
// JSON object yields *ParseError; one that does not match the profile schema
// yields *ValidationError. Nothing is written to disk.
func Extract(ctx context.Context, client llm.Client, resumeText string) (*Result, error) {
	if client == nil {
		return nil, &ConfigError{Message: "generator client is nil"}
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Message: "résumé text is empty"}
	}

	prompt, err := prompts.Render(promptFile, "extract-profile", map[string]string{
		"ResumeText": resumeText,
	})
	if err != nil {
		return nil, &ConfigError{Message: "failed to build prompt", Cause: err}
	}

	responseText, err := client.GenerateStructured(ctx, llm.StructuredRequest{
		SystemInstruction: SystemInstruction(),
		Prompt:            prompt,
		Schema:            ProfileSchema(),
		Temperature:       0,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to generate profile", Cause: err}
	}

	raw := []byte(llm.CleanJSONBlock(responseText))
	profile, err := parseProfile(raw)
	if err != nil {
		return nil, err
	}

	return &Result{Profile: profile, Raw: raw, Model: client.Model()}, nil
}

// parseProfile decodes a generator response. The document must be a single
// JSON object that satisfies the profile schema.
func parseProfile(raw []byte) (*types.Profile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ParseError{Message: "response body is empty"}
	}

	var doc any
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &ParseError{Message: "response is not a JSON object"}
	}

	if err := schemas.ValidateProfileJSON(trimmed); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			return nil, &ValidationError{
				Field:   schemaErr.Errors[0].Field,
				Message: schemaErr.Errors[0].Message,
				Cause:   err,
			}
		}
		return nil, &ValidationError{Message: "response does not match the profile schema", Cause: err}
	}

	var profile types.Profile
	if err := json.Unmarshal(trimmed, &profile); err != nil {
		return nil, &ParseError{Message: "failed to decode profile", Cause: err}
	}
	profile.Normalize()
	return &profile, nil
}
