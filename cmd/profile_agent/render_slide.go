package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-builder/internal/observability"
	"github.com/jonathan/profile-builder/internal/pipeline"
)

var renderSlideCmd = &cobra.Command{
	Use:   "render-slide",
	Short: "Fill the profile slide template",
	Long: `Reads a profile JSON file and fills the named placeholder shapes of one slide
in the template presentation, then saves the result as a new presentation.
The template itself is never modified.`,
	RunE: runRenderSlide,
}

var (
	renderInput    string
	renderTemplate string
	renderOutput   string
	renderSlide    int
)

func init() {
	renderSlideCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to the profile JSON file (default json_output.json)")
	renderSlideCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Path to the template presentation (default template.pptx)")
	renderSlideCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to the rendered presentation (default profile.pptx)")
	renderSlideCmd.Flags().IntVar(&renderSlide, "slide", 0, "0-based index of the template slide to fill")

	rootCmd.AddCommand(renderSlideCmd)
}

func runRenderSlide(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.ProfilePath = renderInput
	}
	if cmd.Flags().Changed("template") {
		cfg.TemplatePath = renderTemplate
	}
	if cmd.Flags().Changed("out") {
		cfg.SlidePath = renderOutput
	}
	if cmd.Flags().Changed("slide") {
		cfg.SlideIndex = renderSlide
	}
	if cfg.SlideIndex < 0 {
		return fmt.Errorf("--slide must not be negative: %d", cfg.SlideIndex)
	}

	stderr := cmd.ErrOrStderr()
	printStep(stderr, "Rendering %s into slide %d of %s", cfg.ProfilePath, cfg.SlideIndex, cfg.TemplatePath)

	profile, report, err := pipeline.RenderSlide(cfg.ProfilePath, cfg.TemplatePath, cfg.SlidePath, cfg.SlideIndex, cfg.Layout)
	if err != nil {
		printFailure(stderr, "Rendering failed")
		return fmt.Errorf("render failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintProfile(profile)
		printer.PrintRenderReport(report)
	}
	for _, name := range report.Missing {
		printWarning(stderr, "Template has no shape named %s", name)
	}
	if report.RolesDropped > 0 {
		printWarning(stderr, "%d role(s) did not fit the template and were left out", report.RolesDropped)
	}
	printSuccess(stderr, "Slide saved to %s", cfg.SlidePath)
	return nil
}
