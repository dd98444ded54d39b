package lint

import (
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
)

// BaseRule provides common metadata and no-op hooks for rules.
// Rule implementations embed it and override the hooks they need.
type BaseRule struct {
	id           string
	description  string
	autocorrect  bool
	experimental bool
	disabled     bool
	severity     config.Severity
	constraints  []Constraint
	properties   []config.Property
	skipScripts  bool
}

// RuleOption configures a BaseRule.
type RuleOption func(*BaseRule)

// WithAutocorrect marks the rule as able to fix its violations.
func WithAutocorrect() RuleOption {
	return func(b *BaseRule) { b.autocorrect = true }
}

// WithExperimental marks the rule as experimental.
func WithExperimental() RuleOption {
	return func(b *BaseRule) { b.experimental = true }
}

// WithDisabledByDefault makes the rule opt-in.
func WithDisabledByDefault() RuleOption {
	return func(b *BaseRule) { b.disabled = true }
}

// WithSeverity overrides the default severity (error).
func WithSeverity(s config.Severity) RuleOption {
	return func(b *BaseRule) { b.severity = s }
}

// WithRunAfter orders the rule after another rule.
func WithRunAfter(ruleID string, required bool) RuleOption {
	return func(b *BaseRule) {
		b.constraints = append(b.constraints, Constraint{Kind: RunAfter, RuleID: ruleID, Required: required})
	}
}

// WithRunBefore orders the rule before another rule.
func WithRunBefore(ruleID string) RuleOption {
	return func(b *BaseRule) {
		b.constraints = append(b.constraints, Constraint{Kind: RunBefore, RuleID: ruleID})
	}
}

// WithProperties declares the editorconfig properties the rule reads.
func WithProperties(props ...config.Property) RuleOption {
	return func(b *BaseRule) { b.properties = append(b.properties, props...) }
}

// WithoutScripts skips .kts files.
func WithoutScripts() RuleOption {
	return func(b *BaseRule) { b.skipScripts = true }
}

// NewBaseRule creates a BaseRule with the given metadata.
func NewBaseRule(id, description string, opts ...RuleOption) BaseRule {
	b := BaseRule{
		id:          id,
		description: description,
		severity:    config.SeverityError,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// ID returns the rule's qualified id.
func (b *BaseRule) ID() string { return b.id }

// Description returns the rule's description.
func (b *BaseRule) Description() string { return b.description }

// DefaultEnabled returns whether the rule is enabled by default.
func (b *BaseRule) DefaultEnabled() bool { return !b.disabled }

// DefaultSeverity returns the rule's default severity.
func (b *BaseRule) DefaultSeverity() config.Severity { return b.severity }

// Experimental returns whether the rule is experimental.
func (b *BaseRule) Experimental() bool { return b.experimental }

// CanAutocorrect returns whether the rule can fix violations.
func (b *BaseRule) CanAutocorrect() bool { return b.autocorrect }

// Constraints returns the rule's ordering constraints.
func (b *BaseRule) Constraints() []Constraint { return b.constraints }

// Properties returns the editorconfig properties the rule reads.
func (b *BaseRule) Properties() []config.Property { return b.properties }

// AppliesTo reports whether the rule runs on file.
func (b *BaseRule) AppliesTo(file File) bool {
	return !b.skipScripts || !file.IsScript()
}

// BeforeFirstNode does nothing.
func (b *BaseRule) BeforeFirstNode(*RuleContext) {}

// EnterNode does nothing.
func (b *BaseRule) EnterNode(*RuleContext, cst.Node) {}

// LeaveNode does nothing.
func (b *BaseRule) LeaveNode(*RuleContext, cst.Node) {}

// AfterLastNode does nothing.
func (b *BaseRule) AfterLastNode(*RuleContext) {}
