// Package lint provides the rule contract, registry, and fix-point engine for kotlint.
package lint

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
)

// Violation is a single rule non-compliance found in a file.
type Violation struct {
	// FilePath is the path of the file containing the violation.
	FilePath string

	// Line is the 1-based line of the violation at detection time.
	Line int

	// Column is the 1-based column, counted in characters.
	Column int

	// RuleID is the qualified id of the rule, e.g. "standard:no-semi".
	RuleID string

	// Message describes the problem.
	Message string

	// Corrected is true when format mode fixed the violation.
	Corrected bool

	// Severity is the configured importance of the violation.
	Severity config.Severity
}

// Mode selects between reporting and rewriting.
type Mode int

const (
	// ModeLint reports violations and never mutates the tree.
	ModeLint Mode = iota

	// ModeFormat lets autocorrecting rules mutate the tree.
	ModeFormat
)

func (m Mode) String() string {
	if m == ModeFormat {
		return "format"
	}
	return "lint"
}

// ConstraintKind is the direction of an ordering constraint.
type ConstraintKind int

const (
	// RunAfter requires the rule to run after the named rule.
	RunAfter ConstraintKind = iota

	// RunBefore requires the rule to run before the named rule.
	RunBefore
)

// Constraint orders a rule relative to another rule.
type Constraint struct {
	Kind   ConstraintKind
	RuleID string

	// Required rules must be registered; when one is disabled, the
	// constrained rule is disabled too. Only meaningful for RunAfter.
	Required bool
}

// File describes the source being processed.
type File struct {
	// Path is the file path, or a placeholder such as "<stdin>".
	Path string

	// Content is the raw source.
	Content []byte
}

// IsScript reports whether the file is a Kotlin script.
func (f File) IsScript() bool {
	return strings.HasSuffix(f.Path, ".kts")
}

// Rule defines the interface that all lint rules must implement.
//
// A rule visits the tree through four hooks. The engine calls
// BeforeFirstNode once per pass, EnterNode and LeaveNode for every node in
// document order, then AfterLastNode. A fresh instance is created for every
// file and reused across the passes of that file, so rules holding state
// in their fields reset it in BeforeFirstNode.
type Rule interface {
	// ID returns the qualified rule id, e.g. "standard:final-newline".
	ID() string

	// Description returns a short explanation of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule runs without explicit opt-in.
	DefaultEnabled() bool

	// DefaultSeverity returns the severity used when none is configured.
	DefaultSeverity() config.Severity

	// Experimental rules only run when experimental rules are enabled.
	Experimental() bool

	// CanAutocorrect reports whether the rule can fix what it finds.
	CanAutocorrect() bool

	// Constraints returns the rule's ordering constraints.
	Constraints() []Constraint

	// Properties returns the editorconfig properties the rule reads.
	Properties() []config.Property

	// AppliesTo reports whether the rule should run on the file.
	AppliesTo(file File) bool

	BeforeFirstNode(ctx *RuleContext)
	EnterNode(ctx *RuleContext, node cst.Node)
	LeaveNode(ctx *RuleContext, node cst.Node)
	AfterLastNode(ctx *RuleContext)
}

// Provider creates a fresh rule instance.
type Provider func() Rule
