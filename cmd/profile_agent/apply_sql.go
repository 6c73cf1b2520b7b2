package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/artifacts"
	"github.com/jonathan/profile-builder/internal/db"
)

var applySQLCmd = &cobra.Command{
	Use:   "apply-sql",
	Short: "Insert a profile into PostgreSQL",
	Long: `Inserts the profile and its highlights and strengths in one transaction and
prints the new executive id. This replaces running the generated SQL script by hand
and patching its placeholder.`,
	RunE: runApplySQL,
}

var (
	applyInput       string
	applyDatabaseURL string
	applyMigrate     bool
)

func init() {
	applySQLCmd.Flags().StringVarP(&applyInput, "in", "i", "", "Path to the profile JSON file (default json_output.json)")
	applySQLCmd.Flags().StringVar(&applyDatabaseURL, "db-url", "", "Database URL (default DATABASE_URL env var)")
	applySQLCmd.Flags().BoolVar(&applyMigrate, "migrate", false, "Create the tables if they do not exist")

	rootCmd.AddCommand(applySQLCmd)
}

func runApplySQL(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.ProfilePath = applyInput
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = applyDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set and --db-url not provided")
	}

	profile, _, err := artifacts.ReadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	stderr := cmd.ErrOrStderr()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		printFailure(stderr, "Database unavailable")
		return err
	}
	defer database.Close()

	if applyMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		printSuccess(stderr, "Schema is up to date")
	}

	id, err := database.InsertProfile(ctx, profile)
	if err != nil {
		printFailure(stderr, "Insert failed")
		return err
	}
	printSuccess(stderr, "Inserted executive %d with %d highlight(s) and %d strength(s)",
		id, len(profile.Experience), len(profile.CoreStrengths))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
