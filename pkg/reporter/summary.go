package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/kotlint/internal/ui/pretty"
	"github.com/yaklabco/kotlint/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth         = 90 // Width of table separators (same for both tables).
	ruleColWidth       = 36 // Width of the rule ID column.
	fileColWidth       = 44 // Width of the file path column.
	numColWidth        = 7  // Width of numeric columns.
	warnColWidth       = 9  // Width of warnings column.
	correctedColWidth  = 10 // Width of corrected column.
	maxRuleIDLength    = 34 // Maximum characters for a rule ID before truncation.
	maxFilePathLength  = 42 // Maximum characters for file path before truncation.
	totalPartsCapacity = 3  // Expected number of parts in total summary line.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 && report.Totals.Corrected == 0 && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	r.renderRuleTable(report.ByRule)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Corrected", correctedColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, rule := range rules {
		ruleID := rule.RuleID
		if len(ruleID) > maxRuleIDLength {
			ruleID = ruleID[:maxRuleIDLength] + "…"
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.styleRow(padRight(ruleID, ruleColWidth), rule.Errors, rule.Warnings),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			r.styleCorrected(rule.Corrected),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Corrected", correctedColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.styleRow(padRight(path, fileColWidth), file.Errors, file.Warnings),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			r.styleCorrected(file.Corrected),
		)
	}
}

// styleRow colors an already padded first column by the worst severity.
func (r *SummaryRenderer) styleRow(padded string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func (r *SummaryRenderer) styleCorrected(n int) string {
	if n == 0 {
		return padLeft("", correctedColWidth)
	}
	return r.styles.Success.Render(padLeft(strconv.Itoa(n), correctedColWidth))
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := make([]string, 0, totalPartsCapacity)

	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	parts = append(parts, fmt.Sprintf("%d %s", totals.Issues, issueWord))

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(countNoun(totals.Errors, "error")))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(countNoun(totals.Warnings, "warning")))
	}
	if len(severityParts) > 0 {
		parts[0] = fmt.Sprintf("%d %s (%s)", totals.Issues, issueWord, strings.Join(severityParts, ", "))
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("in %d %s", totals.FilesWithIssues, fileWord))

	line := strings.Join(parts, " ")
	if totals.Corrected > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d corrected", totals.Corrected))
	}
	if totals.FilesErrored > 0 {
		line += ", " + r.styles.Failure.Render(fmt.Sprintf("%d failed to parse", totals.FilesErrored))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

// countNoun formats n with a naive English plural of noun.
func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
