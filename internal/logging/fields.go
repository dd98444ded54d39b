// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig       = "config"
	FieldMode         = "mode"
	FieldDryRun       = "dry_run"
	FieldJobs         = "jobs"
	FieldExperimental = "experimental"
	FieldProperty     = "property"

	// Engine fields.
	FieldRule       = "rule"
	FieldRules      = "rules"
	FieldIteration  = "iteration"
	FieldIterations = "iterations"
	FieldConverged  = "converged"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldViolations      = "violations"
	FieldFilesFormatted  = "files_formatted"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule metadata fields.
	FieldSeverity    = "severity"
	FieldAutocorrect = "autocorrect"
	FieldDescription = "description"
)
