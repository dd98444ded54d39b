package runner

import (
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// ViolationsTotal is the number of violations across all files,
	// corrected ones included.
	ViolationsTotal int

	// ViolationsCorrected is the number of violations format mode fixed.
	ViolationsCorrected int

	// ViolationsBySeverity counts unresolved violations per severity.
	ViolationsBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one unresolved violation.
	FilesWithIssues int

	// FilesModified is the number of files written back to disk.
	FilesModified int

	// FilesChanged is the number of files whose formatted text differs,
	// written or not.
	FilesChanged int

	// FilesNotConverged is the number of files that hit the format
	// iteration limit.
	FilesNotConverged int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any unresolved violation has error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any unresolved violations remain.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal-r.Stats.ViolationsCorrected > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ViolationsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesModified++
	}

	if outcome.Result.Modified {
		r.Stats.FilesChanged++
	}

	fr := outcome.Result.FileResult
	if fr == nil {
		return
	}

	if !fr.Converged {
		r.Stats.FilesNotConverged++
	}

	r.Stats.ViolationsTotal += fr.IssueCount()
	r.Stats.ViolationsCorrected += fr.CorrectedCount()

	if fr.UnresolvedCount() > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, v := range fr.Violations {
		if v.Corrected {
			continue
		}
		severity := string(v.Severity)
		if severity == "" {
			severity = string(config.SeverityError)
		}
		r.Stats.ViolationsBySeverity[severity]++
	}
}
