package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/profile-builder/internal/artifacts"
	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/ingestion"
	"github.com/jonathan/profile-builder/internal/llm"
	"github.com/jonathan/profile-builder/internal/pptx"
	"github.com/jonathan/profile-builder/internal/slide"
	"github.com/jonathan/profile-builder/internal/sqlgen"
	"github.com/jonathan/profile-builder/internal/types"
	"github.com/jonathan/profile-builder/internal/validation"
)

// ExtractOptions controls the checks run before the profile is written
type ExtractOptions struct {
	// Strict refuses to write a profile with data-quality findings; the
	// document goes to artifacts.RejectedPath instead
	Strict     bool
	Validation validation.Options
}

// ExtractResult is the outcome of the extraction stage
type ExtractResult struct {
	*extraction.Result
	ResumeText string
	Metadata   *ingestion.Metadata
	// Violations is set when the checks ran (strict mode)
	Violations *types.Violations
	// Path is where the document was written
	Path string
}

// ExtractProfile reads the résumé at resumePath, extracts a profile with
// client and writes it to profilePath. The output file is only written after
// the response parsed and matched the schema and, in strict mode, passed the
// data-quality checks.
func ExtractProfile(ctx context.Context, client llm.Client, resumePath, profilePath string, opts ExtractOptions) (*ExtractResult, error) {
	text, meta, err := ingestion.ReadResume(resumePath)
	if err != nil {
		return nil, &extraction.InputError{Path: resumePath, Message: "cannot read résumé", Cause: err}
	}

	result, err := extraction.Extract(ctx, client, text)
	if err != nil {
		return nil, err
	}
	out := &ExtractResult{Result: result, ResumeText: text, Metadata: meta, Path: profilePath}

	var checkErr error
	if opts.Strict {
		out.Violations, checkErr = ValidateProfile(result.Profile, true, opts.Validation)
		if checkErr != nil {
			out.Path = artifacts.RejectedPath(profilePath)
		}
	}

	if err := artifacts.WriteJSON(out.Path, result.Raw); err != nil {
		return nil, fmt.Errorf("failed to write profile: %w", err)
	}
	return out, checkErr
}

// ValidateProfile runs the data-quality checks. In strict mode any finding is
// returned as a *validation.Error alongside the findings.
func ValidateProfile(p *types.Profile, strict bool, opts validation.Options) (*types.Violations, error) {
	violations := validation.CheckProfile(p, opts)
	return violations, validation.Enforce(violations, strict)
}

// RenderSlide fills the template slide at index with the profile at
// profilePath and saves the presentation to outPath. Edits are discarded if
// any step before the save fails.
func RenderSlide(profilePath, templatePath, outPath string, index int, layout slide.Layout) (*types.Profile, *slide.Report, error) {
	profile, _, err := artifacts.ReadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}
	report, err := RenderProfile(profile, templatePath, outPath, index, layout)
	if err != nil {
		return nil, nil, err
	}
	return profile, report, nil
}

// RenderProfile is RenderSlide for a profile already in memory
func RenderProfile(profile *types.Profile, templatePath, outPath string, index int, layout slide.Layout) (*slide.Report, error) {
	if err := artifacts.RequireFile("template", templatePath); err != nil {
		return nil, err
	}

	presentation, err := pptx.Open(templatePath)
	if err != nil {
		return nil, &slide.RenderError{Message: "failed to open template", Cause: err}
	}
	count, err := presentation.SlideCount()
	if err != nil {
		return nil, &slide.RenderError{Message: "failed to read template slides", Cause: err}
	}
	if index < 0 || index >= count {
		return nil, &slide.RenderError{Message: fmt.Sprintf("slide index %d is out of range: %s has %d slide(s), valid indexes are 0 to %d", index, templatePath, count, count-1)}
	}
	s, err := presentation.Slide(index)
	if err != nil {
		return nil, &slide.RenderError{Message: "failed to load template slide", Cause: err}
	}

	report, err := slide.Render(s, profile, layout.MergeWithDefaults())
	if err != nil {
		return nil, err
	}

	if err := presentation.Save(outPath); err != nil {
		return nil, &slide.RenderError{Message: "failed to save presentation", Cause: err}
	}
	return report, nil
}

// GenerateSQL writes the insert script for the profile at profilePath to
// outPath and returns the script.
func GenerateSQL(profilePath, outPath string, opts sqlgen.Options) (*types.Profile, string, error) {
	profile, _, err := artifacts.ReadProfile(profilePath)
	if err != nil {
		return nil, "", err
	}
	script, err := WriteSQL(profile, outPath, opts)
	if err != nil {
		return nil, "", err
	}
	return profile, script, nil
}

// WriteSQL is GenerateSQL for a profile already in memory
func WriteSQL(profile *types.Profile, outPath string, opts sqlgen.Options) (string, error) {
	script := sqlgen.Generate(profile, opts)
	if err := artifacts.WriteText(outPath, script); err != nil {
		return "", fmt.Errorf("failed to write SQL script: %w", err)
	}
	return script, nil
}

// IsInputError reports whether err was caused by a missing input file
func IsInputError(err error) bool {
	var notFound *artifacts.NotFoundError
	var inputErr *extraction.InputError
	return errors.As(err, &notFound) || errors.As(err, &inputErr) || errors.Is(err, os.ErrNotExist)
}
