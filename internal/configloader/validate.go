package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/lint/rules"
)

// ValidationError represents a configuration validation finding.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.standard:no-semi.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rule ids.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against the rules in registry. A nil registry skips
// the rule id checks.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.CodeStyle != "" && rules.PackByName(cfg.CodeStyle) == nil {
		result.errorf("code_style", cfg.CodeStyle, "unknown code style %q; must be one of: %s",
			cfg.CodeStyle, strings.Join(rules.PackNames(), ", "))
	}
	if cfg.Reporter != "" && !cfg.Reporter.IsValid() {
		result.errorf("reporter", cfg.Reporter, "invalid reporter %q; must be one of: plain, json, checkstyle, summary",
			cfg.Reporter)
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)
	validateEditorConfig(cfg, registry, result)

	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, ruleID := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[ruleID]
		if registry != nil {
			if _, ok := registry.Get(ruleID); !ok {
				result.warnf("rules."+ruleID, ruleID, "unknown rule %q; it will be ignored", ruleID)
			}
		}
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.errorf("rules."+ruleID+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}
	}

	if registry == nil {
		return
	}
	for _, id := range cfg.EnableRules {
		if _, ok := registry.Resolve(id); !ok {
			result.warnf("enable", id, "unknown rule %q", id)
		}
	}
	for _, id := range cfg.DisableRules {
		if _, ok := registry.Resolve(id); !ok {
			result.warnf("disable", id, "unknown rule %q", id)
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// validateEditorConfig coerces each override of a known property so a typo
// fails at load time rather than once per file.
func validateEditorConfig(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	if len(cfg.EditorConfig) == 0 {
		return
	}

	known := make(map[string]config.Property)
	for _, p := range config.CoreProperties() {
		known[p.Name] = p
	}
	if registry != nil {
		for _, rule := range registry.Rules() {
			for _, p := range rule.Properties() {
				known[p.Name] = p
			}
		}
	}

	for _, key := range sortedKeys(cfg.EditorConfig) {
		prop, ok := known[key]
		if !ok {
			continue
		}
		if _, err := prop.Parse(cfg.EditorConfig[key]); err != nil {
			result.errorf("editorconfig."+key, cfg.EditorConfig[key], "%v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes the file path in
// every finding.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
