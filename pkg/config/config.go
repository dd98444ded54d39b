// Package config defines core configuration types for kotlint.
// These types are pure data structures; loading them from disk is the job
// of internal/configloader and per-file property resolution lives in
// pkg/editorconfig.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	Options  map[string]any `yaml:"options"`
}

// OutputFormat specifies the reporter used for diagnostics.
type OutputFormat string

const (
	FormatPlain      OutputFormat = "plain"
	FormatJSON       OutputFormat = "json"
	FormatCheckstyle OutputFormat = "checkstyle"
	FormatSummary    OutputFormat = "summary"
)

// IsValid reports whether f names a known reporter.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatPlain, FormatJSON, FormatCheckstyle, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for kotlint.
type Config struct {
	// Rules contains per-rule configuration keyed by rule ID
	// ("standard:final-newline").
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Experimental enables rules marked as experimental.
	Experimental bool `yaml:"experimental"`

	// CodeStyle names a built-in style pack ("ktlint_official") whose rule
	// and property defaults apply underneath this configuration.
	CodeStyle string `yaml:"code_style,omitempty"`

	// EditorConfig holds property overrides that win over any .editorconfig
	// file, keyed by property name ("max_line_length").
	EditorConfig map[string]string `yaml:"editorconfig"`

	// CLI-level options (not persisted to config files).

	// Format enables format mode: rules rewrite files until they converge.
	Format bool `yaml:"-"`

	// DryRun shows what format mode would change without writing files.
	DryRun bool `yaml:"-"`

	// Reporter specifies the output format.
	Reporter OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// Relative prints file paths relative to the working directory.
	Relative bool `yaml:"-"`

	// Strict turns rule programming errors, such as edits of removed
	// nodes, into file failures.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:        make(map[string]RuleConfig),
		EditorConfig: make(map[string]string),
		Reporter:     FormatPlain,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}
