package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Violations is the flat list for detailed output, in file order.
	Violations []ViolationEntry `json:"violations,omitempty"`

	// ByFile groups violations by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups violations by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Errors lists files that could not be processed.
	Errors []FileError `json:"errors,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// ViolationEntry represents a single violation in the report.
type ViolationEntry struct {
	FilePath  string `json:"file"`
	RuleID    string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Corrected bool   `json:"corrected,omitempty"`
}

// FileError records a file that failed to parse or could not be read.
type FileError struct {
	FilePath string `json:"file"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Corrected       int `json:"corrected"`
}

// HasIssues returns true if there are any unresolved violations.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any error-severity violations.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path      string   `json:"path"`
	Issues    int      `json:"issues"`
	Errors    int      `json:"errors"`
	Warnings  int      `json:"warnings"`
	Infos     int      `json:"infos"`
	Corrected int      `json:"corrected"`
	Rules     []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID    string   `json:"ruleId"`
	Issues    int      `json:"issues"`
	Errors    int      `json:"errors"`
	Warnings  int      `json:"warnings"`
	Infos     int      `json:"infos"`
	Corrected int      `json:"corrected"`
	Files     []string `json:"files,omitempty"`
}
