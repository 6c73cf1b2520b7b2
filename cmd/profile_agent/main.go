// Package main provides the profile_agent CLI: résumé text in, an anonymized
// profile JSON file, a presentation slide and a SQL script out.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Résumé to anonymized profile slide and SQL",
	Long: `profile_agent turns a free-text résumé into an anonymized, structured profile with a
generative model, renders the profile into a presentation slide and emits SQL inserts
for the executives, executive_highlights and executive_strengths tables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	},
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootLogFile    string
	rootNoColor    bool

	logCloser io.Closer
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed summaries of each stage")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "Also write logs to this file, rotated by size")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable coloured status output")
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	if rootNoColor {
		color.NoColor = true
	}

	if logCloser != nil {
		_ = logCloser.Close()
	}

	logFile := rootLogFile
	if logFile == "" {
		logFile = os.Getenv("PROFILE_LOG_FILE")
	}
	closer, err := observability.SetupLogging(logFile, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logCloser = closer
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
