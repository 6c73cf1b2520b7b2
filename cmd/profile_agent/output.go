package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	failureMark = color.New(color.FgRed).SprintFunc()
	stepMark    = color.New(color.FgCyan).SprintFunc()
	warnMark    = color.New(color.FgYellow).SprintFunc()
)

//nolint:errcheck // status output; errors are not recoverable
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successMark("✓"), fmt.Sprintf(format, args...))
}

//nolint:errcheck // status output; errors are not recoverable
func printFailure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", failureMark("✗"), fmt.Sprintf(format, args...))
}

//nolint:errcheck // status output; errors are not recoverable
func printStep(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", stepMark("→"), fmt.Sprintf(format, args...))
}

//nolint:errcheck // status output; errors are not recoverable
func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnMark("⚠"), fmt.Sprintf(format, args...))
}
