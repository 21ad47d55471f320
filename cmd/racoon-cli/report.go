package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/tu10ng/racoon/internal/driver"
	"github.com/tu10ng/racoon/internal/errors"
)

// reportResults prints the warnings and errors of every result in input
// order and returns how many files failed.
func reportResults(w io.Writer, results []driver.FileResult) int {
	failed := 0
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		reporter := errors.NewErrorReporter(r.Path, r.Source)
		fmt.Fprint(w, reporter.FormatErrors(r.Warnings))
		fmt.Fprint(w, reporter.FormatErrors(r.Errors))
		if r.Failed() {
			failed++
		}
	}
	return failed
}

func summarize(w io.Writer, files, failed int, elapsed time.Duration) error {
	formattedDuration := formatDuration(elapsed)
	if failed > 0 {
		fmt.Fprintln(w, color.RedString("Compilation failed for %d of %d files after %s", failed, files, formattedDuration))
		return errCompilationFailed
	}
	fmt.Fprintln(w, color.GreenString("Successfully processed %d files in %s", files, formattedDuration))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
