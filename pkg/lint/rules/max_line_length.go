package rules

import (
	"fmt"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// IgnoreBackTickedIdentifierProperty exempts lines holding a backticked
// identifier, typically a descriptive test name, from the length limit.
var IgnoreBackTickedIdentifierProperty = config.Property{
	Name:        "ktlint_ignore_back_ticked_identifier",
	Type:        config.TypeBool,
	Default:     "false",
	Description: "Ignore lines containing an identifier in backticks when checking the line length",
}

// MaxLineLengthRule reports lines longer than max_line_length. It runs
// after argument-list-wrapping so lines that rule can shorten are not
// reported in format mode.
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule creates a new max line length rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"standard:max-line-length",
			"Lines do not exceed max_line_length",
			lint.WithRunAfter("standard:argument-list-wrapping", false),
			lint.WithProperties(config.MaxLineLengthProperty, IgnoreBackTickedIdentifierProperty),
		),
	}
}

// AfterLastNode checks every line of the final text of the pass.
func (r *MaxLineLengthRule) AfterLastNode(ctx *lint.RuleContext) {
	limit, ok := maxLineLength(ctx.Properties)
	if !ok {
		return
	}
	ignoreBackTicks, _ := ctx.Properties.Bool(IgnoreBackTickedIdentifierProperty)

	for line := 1; line <= ctx.Tree.LineCount(); line++ {
		if ctx.Cancelled() {
			return
		}
		text := ctx.Tree.Line(line)
		if columns(text) <= limit {
			continue
		}
		start := ctx.Tree.OffsetAt(cst.Position{Line: line, Column: 1})
		if start < 0 || exemptLine(ctx, start) {
			continue
		}
		if ignoreBackTicks && ctx.Suppressions.HasBacktickIdentifier(line) {
			continue
		}
		ctx.EmitAt(start, fmt.Sprintf("Exceeded max line length (%d)", limit), false)
	}
}

// exemptLine reports whether the line starting at offset is a package or
// import header, or lies inside a multiline raw string.
func exemptLine(ctx *lint.RuleContext, offset int) bool {
	leaf := ctx.Tree.LeafAt(offset)
	if !leaf.Valid() {
		return false
	}
	if leaf.Ancestor(cst.KindPackageDirective).Valid() || leaf.Ancestor(cst.KindImportDirective).Valid() {
		return true
	}
	if leaf.Is(cst.KindWhitespace) {
		next := leaf.NextLeaf()
		if next.Ancestor(cst.KindPackageDirective).Valid() || next.Ancestor(cst.KindImportDirective).Valid() {
			return true
		}
	}
	if !leaf.Is(cst.KindStringContent, cst.KindTemplateEntry) {
		return false
	}
	tmpl := leaf.Ancestor(cst.KindStringTemplate)
	return tmpl.FirstChild().Text() == `"""`
}
