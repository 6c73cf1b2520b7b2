package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/observability"
	"github.com/jonathan/profile-builder/internal/pipeline"
	"github.com/jonathan/profile-builder/internal/validation"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract an anonymized profile from a résumé",
	Long: `Sends the résumé text to the generator with the profile schema and writes the
structured response, pretty-printed, to the output file. Plain text, .pdf and .docx
résumés are accepted. Nothing is written when the response does not match the schema. With --strict a
profile that fails the data-quality checks goes to <out>.rejected.json instead.`,
	RunE: runExtract,
}

var (
	extractInput  string
	extractOutput string
	extractGen    generatorFlags
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to the résumé (default cv_text.txt)")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to the profile JSON output (default json_output.json)")
	extractGen.register(extractCmd)

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.ResumePath = extractInput
	}
	if cmd.Flags().Changed("out") {
		cfg.ProfilePath = extractOutput
	}
	extractGen.apply(cmd, cfg)

	stderr := cmd.ErrOrStderr()
	ctx := context.Background()

	client, err := newClient(ctx, extraction.ClientOptionsFromConfig(cfg))
	if err != nil {
		printFailure(stderr, "Generator setup failed")
		return err
	}
	defer func() { _ = client.Close() }()

	printStep(stderr, "Extracting profile from %s with %s", cfg.ResumePath, client.Model())
	opts := pipeline.ExtractOptions{Strict: cfg.Strict, Validation: validationOptions(cfg)}
	result, err := pipeline.ExtractProfile(ctx, client, cfg.ResumePath, cfg.ProfilePath, opts)
	var validationErr *validation.Error
	if err != nil && !errors.As(err, &validationErr) {
		printFailure(stderr, "Extraction failed")
		return fmt.Errorf("extraction failed: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintProfile(result.Profile)
	}
	if validationErr != nil {
		printer.PrintViolations(result.Violations)
		printFailure(stderr, "Profile failed data-quality checks; kept at %s", result.Path)
		return err
	}
	printSuccess(stderr, "Profile written to %s", result.Path)

	violations := result.Violations
	if violations == nil {
		violations, _ = pipeline.ValidateProfile(result.Profile, false, validationOptions(cfg))
	}
	if n := len(violations.Violations); n > 0 {
		printWarning(stderr, "%d data-quality warning(s); run validate for details", n)
		if cfg.Verbose {
			printer.PrintViolations(violations)
		}
	}
	return nil
}
