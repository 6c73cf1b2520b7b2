package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/artifacts"
	"github.com/jonathan/profile-builder/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	Long: `Lists the runs recorded by "run --db-url", newest first. With --id it shows one
run; adding --artifact prints what that run stored for a step (resume_text,
resume_metadata, profile, violations, render_report or sql).`,
	RunE: runRuns,
}

var (
	runsDatabaseURL string
	runsLimit       int
	runsID          string
	runsArtifact    string
)

func init() {
	runsCmd.Flags().StringVar(&runsDatabaseURL, "db-url", "", "Database URL (default DATABASE_URL env var)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Number of runs to list")
	runsCmd.Flags().StringVar(&runsID, "id", "", "Show a single run")
	runsCmd.Flags().StringVar(&runsArtifact, "artifact", "", "Print the artifact the run stored for this step (requires --id)")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runsDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set and --db-url not provided")
	}

	var runID uuid.UUID
	if runsID != "" {
		runID, err = uuid.Parse(runsID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", runsID, err)
		}
	} else if runsArtifact != "" {
		return fmt.Errorf("--artifact requires --id")
	}

	ctx := context.Background()
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		printFailure(stderr, "Database unavailable")
		return err
	}
	defer database.Close()

	if runsID == "" {
		runs, err := database.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			printWarning(stderr, "No runs recorded")
			return nil
		}
		for _, run := range runs {
			printRun(stdout, run)
		}
		return nil
	}

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	if runsArtifact == "" {
		printRun(stdout, *run)
		if run.Error != nil {
			_, _ = fmt.Fprintf(stdout, "  error: %s\n", *run.Error)
		}
		return nil
	}

	artifact, err := database.GetArtifact(ctx, runID, runsArtifact)
	if err != nil {
		return err
	}
	if artifact == nil {
		return fmt.Errorf("run %s has no %s artifact", runID, runsArtifact)
	}
	return printArtifact(stdout, artifact)
}

//nolint:errcheck // listing output; errors are not recoverable
func printRun(w io.Writer, run db.Run) {
	executive := "-"
	if run.ExecutiveID != nil {
		executive = fmt.Sprintf("%d", *run.ExecutiveID)
	}
	fmt.Fprintf(w, "%s  %-9s  %s  exec=%-6s %s\n",
		run.ID, run.Status, run.CreatedAt.Local().Format(time.DateTime), executive, run.Source)
}

// printArtifact writes text artifacts as stored and JSON ones indented
func printArtifact(w io.Writer, artifact *db.Artifact) error {
	if len(artifact.Content) == 0 {
		_, err := fmt.Fprint(w, artifact.TextContent)
		return err
	}
	var v any
	if err := json.Unmarshal(artifact.Content, &v); err != nil {
		return fmt.Errorf("artifact %s is not valid JSON: %w", artifact.Step, err)
	}
	out, err := json.MarshalIndent(v, "", artifacts.JSONIndent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
