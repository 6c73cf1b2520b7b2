package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/artifacts"
	"github.com/jonathan/profile-builder/internal/observability"
	"github.com/jonathan/profile-builder/internal/pipeline"
	"github.com/jonathan/profile-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a profile JSON file",
	Long: `Validates a profile JSON file against the profile schema, then runs the
data-quality checks: no dates, a short summary, the expected number of roles,
achievements and strengths, and no forbidden names. Findings are warnings unless
--strict is set.`,
	RunE: runValidate,
}

var (
	validateInput  string
	validateStrict bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to the profile JSON file (default json_output.json)")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail on any data-quality finding")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.ProfilePath = validateInput
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = validateStrict
	}

	stderr := cmd.ErrOrStderr()
	if err := artifacts.RequireFile("JSON", cfg.ProfilePath); err != nil {
		return err
	}
	if err := schemas.ValidateProfileFile(cfg.ProfilePath); err != nil {
		printFailure(stderr, "Validation failed: %s does not match the profile schema", cfg.ProfilePath)
		return err
	}

	profile, _, err := artifacts.ReadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	violations, err := pipeline.ValidateProfile(profile, cfg.Strict, validationOptions(cfg))
	observability.NewPrinter(cmd.OutOrStdout()).PrintViolations(violations)
	if err != nil {
		printFailure(stderr, "Validation failed")
		return err
	}
	printSuccess(stderr, "Validation passed (%d warning(s))", len(violations.Violations))
	return nil
}
