package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/kotlint/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the offending source line under each violation.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowCorrected also lists violations format mode fixed.
	ShowCorrected bool

	// GroupByFile prints one header per file instead of a path on every line.
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatPlain,
		Color:       "auto",
		ShowSummary: true,
		SortBy:      analysis.SortByCount,
	}
}

// displayPath makes path relative to the working directory when one is set.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// analysisOptions derives the analysis settings every renderer shares.
func (o Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.IncludeCorrected = o.ShowCorrected
	opts.WorkingDir = o.WorkingDir
	if o.SortBy.IsValid() {
		opts.SortBy = o.SortBy
	}
	return opts
}
