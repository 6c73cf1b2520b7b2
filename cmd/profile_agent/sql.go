package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/observability"
	"github.com/jonathan/profile-builder/internal/pipeline"
	"github.com/jonathan/profile-builder/internal/sqlgen"
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Generate SQL inserts for a profile",
	Long: `Writes INSERT statements for the executives, executive_highlights and
executive_strengths tables. The child rows reference the executive through a
placeholder token that must be replaced with the real id before the script runs,
unless --executive-id is given.`,
	RunE: runSQL,
}

var (
	sqlInput       string
	sqlOutput      string
	sqlExecutiveID string
	sqlPlaceholder string
)

func init() {
	sqlCmd.Flags().StringVarP(&sqlInput, "in", "i", "", "Path to the profile JSON file (default json_output.json)")
	sqlCmd.Flags().StringVarP(&sqlOutput, "out", "o", "", "Path to the SQL script (default sql_output.sql)")
	sqlCmd.Flags().StringVar(&sqlExecutiveID, "executive-id", "", "Known executive id to use instead of the placeholder")
	sqlCmd.Flags().StringVar(&sqlPlaceholder, "placeholder", sqlgen.Placeholder, "Token written where the executive id belongs")

	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.ProfilePath = sqlInput
	}
	if cmd.Flags().Changed("out") {
		cfg.SQLPath = sqlOutput
	}
	if cmd.Flags().Changed("executive-id") {
		cfg.ExecutiveID = sqlExecutiveID
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := sqlgen.Options{Placeholder: sqlPlaceholder, ExecutiveID: cfg.ExecutiveID}
	stderr := cmd.ErrOrStderr()
	printStep(stderr, "Generating SQL for %s", cfg.ProfilePath)

	_, script, err := pipeline.GenerateSQL(cfg.ProfilePath, cfg.SQLPath, opts)
	if err != nil {
		printFailure(stderr, "SQL generation failed")
		return fmt.Errorf("sql generation failed: %w", err)
	}

	statements := sqlgen.CountStatements(script)
	if cfg.Verbose {
		placeholder := ""
		if sqlgen.HasPlaceholder(script, opts.Placeholder) {
			placeholder = opts.Placeholder
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSQLSummary(statements, placeholder)
	}
	printSuccess(stderr, "%d statement(s) written to %s", statements, cfg.SQLPath)

	if cfg.ExecutiveID == "" {
		printWarning(stderr, "Action Required: replace %s in %s with the id of the inserted executive before running it", opts.Placeholder, cfg.SQLPath)
	}
	return nil
}
