package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/kotlint/internal/ui/pretty"
	"github.com/yaklabco/kotlint/pkg/analysis"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/runner"
)

// PlainReporter prints one "path:line:col: message (rule)" line per
// violation, optionally grouped under a header per file.
type PlainReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewPlainReporter creates a new plain reporter.
func NewPlainReporter(opts Options) *PlainReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &PlainReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PlainReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
				r.styles.Warning.Render("skipped: "+file.Result.SkipReason))
		}

		total += r.reportFile(path, file.Result.FileResult)
	}

	if r.opts.ShowSummary {
		if total > 0 && !r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's violations and returns the unresolved count.
func (r *PlainReporter) reportFile(path string, fr *lint.FileResult) int {
	var shown []lint.Violation
	for _, v := range fr.Violations {
		if !v.Corrected || r.opts.ShowCorrected {
			shown = append(shown, v)
		}
	}
	if len(shown) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, fr.UnresolvedCount()))
	}

	// Violations carry positions in the original text, so source context is
	// only available while the tree still holds that text.
	withContext := r.opts.ShowContext && !fr.Changed && fr.Tree != nil

	entryPath := path
	if r.opts.GroupByFile {
		entryPath = ""
	}

	for _, v := range shown {
		entry := analysis.ViolationEntry{
			FilePath:  entryPath,
			RuleID:    v.RuleID,
			Severity:  string(v.Severity),
			Message:   v.Message,
			Line:      v.Line,
			Column:    v.Column,
			Corrected: v.Corrected,
		}
		var sourceLine string
		if withContext {
			sourceLine = fr.Tree.Line(v.Line)
		}

		if r.opts.GroupByFile {
			fmt.Fprint(r.bw, "  ")
		}
		fmt.Fprint(r.bw, r.styles.FormatViolation(entry, withContext, sourceLine))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return fr.UnresolvedCount()
}
