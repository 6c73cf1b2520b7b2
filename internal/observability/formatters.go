// Package observability provides formatted output utilities for verbose CLI
// mode and log file setup.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-builder/internal/slide"
	"github.com/jonathan/profile-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:     %s\n", profile.Title))
	sb.WriteString(fmt.Sprintf("Gender:    %s\n", profile.Gender))
	sb.WriteString(fmt.Sprintf("Summary:   %s\n", profile.ExperienceSummary))
	sb.WriteString(fmt.Sprintf("Sectors:   %s\n", profile.SectorFocus))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", profile.Location))
	sb.WriteString("\n")

	if len(profile.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d roles):\n", len(profile.Experience)))
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			role := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", role.JobTitle))
			if n := len(role.Achievements); n > 0 {
				sb.WriteString(fmt.Sprintf(" (%d achievements)", n))
			}
			sb.WriteString("\n")
		}
		if len(profile.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.CoreStrengths) > 0 {
		sb.WriteString("Core Strengths:\n")
		for _, s := range profile.CoreStrengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRenderReport outputs which placeholders a slide render filled.
func (p *Printer) PrintRenderReport(report *slide.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Accent:    #%s (%d shapes)\n", report.Accent.Hex(), report.AccentFilled))
	sb.WriteString(fmt.Sprintf("Filled:    %d placeholders\n", len(report.Filled)))
	sb.WriteString(fmt.Sprintf("Roles:     %d rendered", report.RolesRendered))
	if report.RolesDropped > 0 {
		sb.WriteString(fmt.Sprintf(", %d without a slot", report.RolesDropped))
	}
	sb.WriteString("\n")

	if len(report.Missing) > 0 {
		sb.WriteString("\nMissing shapes:\n")
		count := min(len(report.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.Missing[i]))
		}
		if len(report.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Missing)-maxItemsToShow))
		}
	}

	p.printBox("SLIDE RENDER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSQLSummary outputs the statement count of a generated script.
func (p *Printer) PrintSQLSummary(statements int, placeholder string) {
	content := fmt.Sprintf("Statements: %d", statements)
	if placeholder != "" {
		content += fmt.Sprintf("\nForeign key: %s", placeholder)
	}
	p.printBox("SQL SCRIPT", content)
}

// PrintViolations outputs any data-quality findings.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO VIOLATIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", v.Type, v.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 45)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PROFILE VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
