package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/pipeline"
	"github.com/jonathan/profile-builder/internal/pipeline/steps"
	"github.com/jonathan/profile-builder/internal/sqlgen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extraction, slide rendering and SQL generation",
	Long: `Runs the stages in order: extract the profile from the résumé, check it, fill the
slide template and write the SQL script. --from resumes at a later step using the
profile JSON already on disk. --publish also inserts the profile into PostgreSQL.`,
	RunE: runRun,
}

var (
	runResume      string
	runProfile     string
	runTemplate    string
	runSlidePath   string
	runSQLPath     string
	runSlide       int
	runExecutiveID string
	runFrom        string
	runPublish     bool
	runDatabaseURL string
	runGen         generatorFlags
)

func init() {
	runCmd.Flags().StringVarP(&runResume, "in", "i", "", "Path to the résumé (default cv_text.txt)")
	runCmd.Flags().StringVar(&runProfile, "profile", "", "Path to the profile JSON file (default json_output.json)")
	runCmd.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to the template presentation (default template.pptx)")
	runCmd.Flags().StringVar(&runSlidePath, "slide-out", "", "Path to the rendered presentation (default profile.pptx)")
	runCmd.Flags().StringVar(&runSQLPath, "sql-out", "", "Path to the SQL script (default sql_output.sql)")
	runCmd.Flags().IntVar(&runSlide, "slide", 0, "0-based index of the template slide to fill")
	runCmd.Flags().StringVar(&runExecutiveID, "executive-id", "", "Known executive id to use instead of the placeholder")
	runCmd.Flags().StringVar(&runFrom, "from", "", "Start at this step: extract, validate, render_slide or generate_sql")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "Insert the profile into the database after generating SQL")
	runCmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "Database URL for run history and --publish (default DATABASE_URL env var)")
	runGen.register(runCmd)

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("in") {
		cfg.ResumePath = runResume
	}
	if flags.Changed("profile") {
		cfg.ProfilePath = runProfile
	}
	if flags.Changed("template") {
		cfg.TemplatePath = runTemplate
	}
	if flags.Changed("slide-out") {
		cfg.SlidePath = runSlidePath
	}
	if flags.Changed("sql-out") {
		cfg.SQLPath = runSQLPath
	}
	if flags.Changed("slide") {
		cfg.SlideIndex = runSlide
	}
	if flags.Changed("executive-id") {
		cfg.ExecutiveID = runExecutiveID
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	runGen.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	stderr := cmd.ErrOrStderr()

	opts := pipeline.RunOptions{
		ResumePath:   cfg.ResumePath,
		ProfilePath:  cfg.ProfilePath,
		TemplatePath: cfg.TemplatePath,
		SlidePath:    cfg.SlidePath,
		SQLPath:      cfg.SQLPath,
		SlideIndex:   cfg.SlideIndex,
		Layout:       cfg.Layout,
		Strict:       cfg.Strict,
		Validation:   validationOptions(cfg),
		SQL:          sqlgen.Options{ExecutiveID: cfg.ExecutiveID},
		From:         runFrom,
		Publish:      runPublish,
		DatabaseURL:  cfg.DatabaseURL,
		Verbose:      cfg.Verbose,
		Output:       cmd.OutOrStdout(),
	}

	if runFrom == "" || runFrom == steps.StepExtract {
		client, err := newClient(ctx, extraction.ClientOptionsFromConfig(cfg))
		if err != nil {
			printFailure(stderr, "Generator setup failed")
			return err
		}
		defer func() { _ = client.Close() }()
		opts.Client = client
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		printFailure(stderr, "Pipeline failed")
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printSuccess(stderr, "Profile: %s", cfg.ProfilePath)
	if result.Report != nil {
		printSuccess(stderr, "Slide: %s", cfg.SlidePath)
	}
	printSuccess(stderr, "SQL: %s (%d statements)", cfg.SQLPath, result.Statements)
	switch {
	case result.ExecutiveID != 0:
		printSuccess(stderr, "Published executive %d (run %s)", result.ExecutiveID, result.RunID)
	case cfg.ExecutiveID == "":
		printWarning(stderr, "Action Required: replace %s in %s with the id of the inserted executive before running it", sqlgen.Placeholder, cfg.SQLPath)
	}
	return nil
}
