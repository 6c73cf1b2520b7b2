// Package pipeline provides the high-level orchestration for turning a résumé
// into a profile JSON file, a slide and a SQL script.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/profile-builder/internal/artifacts"
	"github.com/jonathan/profile-builder/internal/db"
	"github.com/jonathan/profile-builder/internal/llm"
	"github.com/jonathan/profile-builder/internal/observability"
	"github.com/jonathan/profile-builder/internal/pipeline/steps"
	"github.com/jonathan/profile-builder/internal/slide"
	"github.com/jonathan/profile-builder/internal/sqlgen"
	"github.com/jonathan/profile-builder/internal/types"
	"github.com/jonathan/profile-builder/internal/validation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Label   string `json:"label"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Recorder persists runs and publishes profiles. *db.DB implements it.
type Recorder interface {
	CreateRun(ctx context.Context, runID uuid.UUID, source string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, runErr error) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error
	InsertProfile(ctx context.Context, p *types.Profile) (int64, error)
	LinkExecutive(ctx context.Context, runID uuid.UUID, executiveID int64) error
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath   string
	ProfilePath  string
	TemplatePath string
	SlidePath    string
	SQLPath      string
	SlideIndex   int
	Layout       slide.Layout

	// Client is required when the extract step runs
	Client     llm.Client
	Strict     bool
	Validation validation.Options
	SQL        sqlgen.Options

	// From resumes at a later step using artifacts already on disk
	From string
	// Publish inserts the profile through Recorder after the SQL step
	Publish bool

	// Recorder stores runs and artifacts; when nil and DatabaseURL is set a
	// connection is opened for the run
	Recorder    Recorder
	DatabaseURL string

	Verbose    bool
	Output     io.Writer // Progress and verbose output, defaults to os.Stdout
	OnProgress ProgressCallback
}

// RunResult holds what a run produced
type RunResult struct {
	RunID       uuid.UUID
	Profile     *types.Profile
	Violations  *types.Violations
	Report      *slide.Report
	SQL         string
	Statements  int
	ExecutiveID int64
}

type runner struct {
	opts     RunOptions
	out      io.Writer
	printer  *observability.Printer
	recorder Recorder
	result   *RunResult
	produced map[steps.Artifact]bool
}

// RunPipeline executes the planned steps sequentially. The first failing step
// ends the run; artifacts written by earlier steps are kept.
func RunPipeline(ctx context.Context, opts RunOptions) (*RunResult, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var with []string
	if opts.Publish {
		with = append(with, steps.StepPublish)
	}
	plan, err := steps.Plan(opts.From, with...)
	if err != nil {
		return nil, err
	}

	r := &runner{
		opts:     opts,
		out:      out,
		printer:  observability.NewPrinter(out),
		recorder: opts.Recorder,
		result:   &RunResult{RunID: uuid.New()},
		produced: make(map[steps.Artifact]bool),
	}

	// Initialize database connection if configured
	if r.recorder == nil && opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			if opts.Publish {
				return nil, fmt.Errorf("publish requested but database is unavailable: %w", err)
			}
			r.printf("Warning: Failed to connect to database: %v\n", err)
			r.printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			r.recorder = database
		}
	}
	if opts.Publish && r.recorder == nil {
		return nil, fmt.Errorf("publish requested but no database is configured")
	}

	log.Printf("[%s] run started from step %s", r.result.RunID, plan[0].Name)
	if r.recorder != nil {
		if err := r.recorder.CreateRun(ctx, r.result.RunID, opts.ResumePath); err != nil {
			r.printf("Warning: Failed to create database run: %v\n", err)
			r.recorder = nil
		}
	}

	runErr := r.execute(ctx, plan)

	if r.recorder != nil {
		if err := r.recorder.CompleteRun(ctx, r.result.RunID, runErr); err != nil {
			r.printf("Warning: Failed to complete database run: %v\n", err)
		}
	}
	if runErr != nil {
		log.Printf("[%s] run failed: %v", r.result.RunID, runErr)
		return r.result, runErr
	}
	log.Printf("[%s] run completed", r.result.RunID)
	return r.result, nil
}

func (r *runner) execute(ctx context.Context, plan []steps.StepDefinition) error {
	paths := map[steps.Artifact]string{
		steps.ArtifactResume:   r.opts.ResumePath,
		steps.ArtifactProfile:  r.opts.ProfilePath,
		steps.ArtifactTemplate: r.opts.TemplatePath,
	}

	for _, def := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := steps.ValidateDependencies(def, paths, r.produced); err != nil {
			return err
		}
		if r.result.Profile == nil && def.Name != steps.StepExtract {
			if err := r.loadProfile(); err != nil {
				return err
			}
		}

		var err error
		switch def.Name {
		case steps.StepExtract:
			err = r.extract(ctx, def)
		case steps.StepValidate:
			err = r.validate(ctx, def)
		case steps.StepRenderSlide:
			err = r.renderSlide(ctx, def)
		case steps.StepGenerateSQL:
			err = r.generateSQL(ctx, def)
		case steps.StepPublish:
			err = r.publish(ctx, def)
		default:
			err = fmt.Errorf("step %s has no implementation", def.Name)
		}
		if err != nil {
			return fmt.Errorf("%s failed: %w", def.Name, err)
		}
		for _, output := range def.Outputs {
			r.produced[output] = true
		}
	}
	return nil
}

func (r *runner) loadProfile() error {
	profile, _, err := artifacts.ReadProfile(r.opts.ProfilePath)
	if err != nil {
		return err
	}
	r.result.Profile = profile
	return nil
}

func (r *runner) extract(ctx context.Context, def steps.StepDefinition) error {
	r.printf("Step %s: Extracting profile from %s...\n", def.Label, r.opts.ResumePath)
	if r.opts.Client == nil {
		return fmt.Errorf("no generator client configured")
	}

	result, err := ExtractProfile(ctx, r.opts.Client, r.opts.ResumePath, r.opts.ProfilePath, ExtractOptions{})
	if err != nil {
		return err
	}
	r.result.Profile = result.Profile
	if r.opts.Verbose {
		r.printer.PrintProfile(result.Profile)
	}
	r.emit(def, fmt.Sprintf("Extracted profile with %s: %s", result.Model, result.Profile.Title), result.Profile)

	if r.recorder != nil {
		_ = r.recorder.SaveTextArtifact(ctx, r.result.RunID, db.StepResumeText, result.ResumeText)
		_ = r.recorder.SaveArtifact(ctx, r.result.RunID, db.StepResumeMeta, result.Metadata)
		_ = r.recorder.SaveArtifact(ctx, r.result.RunID, def.Record, result.Profile)
	}
	return nil
}

func (r *runner) validate(ctx context.Context, def steps.StepDefinition) error {
	r.printf("Step %s: Checking profile...\n", def.Label)

	violations, err := ValidateProfile(r.result.Profile, r.opts.Strict, r.opts.Validation)
	r.result.Violations = violations
	if r.opts.Verbose || len(violations.Violations) > 0 {
		r.printer.PrintViolations(violations)
	}
	if r.recorder != nil {
		_ = r.recorder.SaveArtifact(ctx, r.result.RunID, def.Record, violations)
	}
	r.emit(def, fmt.Sprintf("Found %d violation(s)", len(violations.Violations)), violations)
	return err
}

func (r *runner) renderSlide(ctx context.Context, def steps.StepDefinition) error {
	r.printf("Step %s: Rendering slide %s...\n", def.Label, r.opts.SlidePath)

	report, err := RenderProfile(r.result.Profile, r.opts.TemplatePath, r.opts.SlidePath, r.opts.SlideIndex, r.opts.Layout)
	if err != nil {
		return err
	}
	r.result.Report = report
	if r.opts.Verbose {
		r.printer.PrintRenderReport(report)
	}
	if r.recorder != nil {
		_ = r.recorder.SaveArtifact(ctx, r.result.RunID, def.Record, report)
	}
	r.emit(def, fmt.Sprintf("Filled %d placeholders", len(report.Filled)), report)
	return nil
}

func (r *runner) generateSQL(ctx context.Context, def steps.StepDefinition) error {
	r.printf("Step %s: Generating SQL %s...\n", def.Label, r.opts.SQLPath)

	script, err := WriteSQL(r.result.Profile, r.opts.SQLPath, r.opts.SQL)
	if err != nil {
		return err
	}
	r.result.SQL = script
	r.result.Statements = sqlgen.CountStatements(script)
	if r.opts.Verbose {
		r.printer.PrintSQLSummary(r.result.Statements, r.placeholder())
	}
	if r.recorder != nil {
		_ = r.recorder.SaveTextArtifact(ctx, r.result.RunID, def.Record, script)
	}
	r.emit(def, fmt.Sprintf("Generated %d statements", r.result.Statements), nil)
	return nil
}

func (r *runner) publish(ctx context.Context, def steps.StepDefinition) error {
	r.printf("Step %s: Publishing profile...\n", def.Label)

	id, err := r.recorder.InsertProfile(ctx, r.result.Profile)
	if err != nil {
		return err
	}
	r.result.ExecutiveID = id
	if err := r.recorder.LinkExecutive(ctx, r.result.RunID, id); err != nil {
		r.printf("Warning: Failed to link executive to run: %v\n", err)
	}
	r.emit(def, fmt.Sprintf("Published executive %d", id), id)
	return nil
}

// placeholder returns the foreign-key token left in the script, if any
func (r *runner) placeholder() string {
	if r.opts.SQL.ExecutiveID != "" {
		return ""
	}
	if r.opts.SQL.Placeholder != "" {
		return r.opts.SQL.Placeholder
	}
	return sqlgen.Placeholder
}

// emit calls the progress callback if configured
func (r *runner) emit(def steps.StepDefinition, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:    def.Name,
			Label:   def.Label,
			Message: message,
			RunID:   r.result.RunID.String(),
			Content: content,
		})
	}
}

//nolint:errcheck // progress output; errors are not recoverable
func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
