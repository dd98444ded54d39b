package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/kotlint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// unresolved is the number of violations format mode could not fix.
func unresolved(stats runner.Stats) int {
	return stats.ViolationsTotal - stats.ViolationsCorrected
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files, 4 corrected in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	remaining := unresolved(stats)
	if remaining == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))))
	} else {
		var severityParts []string
		if n := stats.ViolationsBySeverity["error"]; n > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
		}
		if n := stats.ViolationsBySeverity["warning"]; n > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
		}
		if n := stats.ViolationsBySeverity["info"]; n > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		main := fmt.Sprintf("%d %s", remaining, plural(remaining, "issue", "issues"))
		if len(severityParts) > 0 {
			main += " (" + strings.Join(severityParts, ", ") + ")"
		}
		main += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))
		parts = append(parts, main)
	}

	if stats.ViolationsCorrected > 0 {
		changed := max(stats.FilesModified, stats.FilesChanged)
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
			stats.ViolationsCorrected, changed, plural(changed, wordFile, wordFiles))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	if stats.FilesNotConverged > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s did not converge",
			stats.FilesNotConverged, plural(stats.FilesNotConverged, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files formatted:   " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(unresolved(stats))) + "\n")

	if n := stats.ViolationsBySeverity["error"]; n > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.ViolationsBySeverity["warning"]; n > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(n)) + "\n")
	}
	if n := stats.ViolationsBySeverity["info"]; n > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(n)) + "\n")
	}
	if stats.ViolationsCorrected > 0 {
		builder.WriteString("  Corrected:         " +
			s.Success.Render(strconv.Itoa(stats.ViolationsCorrected)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.ViolationsBySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Lint failed"))
	case unresolved(stats) > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
