package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"file"`
	Violations []JSONViolation `json:"errors"`
	Modified   bool            `json:"modified,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation represents a single violation.
type JSONViolation struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Corrected bool   `json:"corrected,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Corrected       int            `json:"corrected"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       r.opts.displayPath(file.Path),
			Violations: make([]JSONViolation, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		unresolved := 0
		if file.Result != nil && file.Result.FileResult != nil {
			fileResult.Modified = file.Result.Written

			for _, v := range file.Result.Violations {
				if v.Corrected {
					output.Summary.Corrected++
					if !r.opts.ShowCorrected {
						continue
					}
				}

				severity := v.Severity
				if severity == "" {
					severity = config.SeverityError
				}
				fileResult.Violations = append(fileResult.Violations, JSONViolation{
					Line:      v.Line,
					Column:    v.Column,
					Message:   v.Message,
					Rule:      v.RuleID,
					Severity:  string(severity),
					Corrected: v.Corrected,
				})

				if !v.Corrected {
					unresolved++
					output.Summary.BySeverity[string(severity)]++
				}
			}
		}

		output.Summary.TotalIssues += unresolved
		if unresolved > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
