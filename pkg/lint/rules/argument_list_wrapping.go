package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// ArgumentListWrappingRule puts every argument of a call on its own line
// once the arguments no longer fit on one line, or once the list is already
// partly wrapped.
type ArgumentListWrappingRule struct {
	lint.BaseRule
}

// NewArgumentListWrappingRule creates a new argument list wrapping rule.
func NewArgumentListWrappingRule() *ArgumentListWrappingRule {
	return &ArgumentListWrappingRule{
		BaseRule: lint.NewBaseRule(
			"standard:argument-list-wrapping",
			"Arguments are either all on one line or each on a separate line",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects the argument lists of calls.
func (r *ArgumentListWrappingRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindValueArgumentList) || !n.Parent().Is(cst.KindCallExpression) {
		return
	}

	var args []cst.Node
	wrapped := false
	for _, child := range n.Children() {
		switch {
		case child.Is(cst.KindValueArgument):
			args = append(args, child)
		case child.Kind().IsTrivia() && strings.Contains(child.Text(), "\n"):
			wrapped = true
		}
	}
	if len(args) == 0 || (!wrapped && !overflows(ctx, n)) {
		return
	}

	closing := n.LastChild()
	var targets []cst.Node
	for _, arg := range args {
		if !startsOnNewLine(arg) {
			targets = append(targets, arg)
		}
	}
	closeMissing := closing.Is(cst.KindRParen) && !startsOnNewLine(closing)
	if len(targets) == 0 && !closeMissing {
		return
	}

	base := lineIndent(ctx.Tree, lineOf(n))
	argIndent := base + indentUnit(ctx.Properties)

	// Report everything first so positions refer to the unchanged text.
	var fix []cst.Node
	for _, arg := range targets {
		if ctx.Emit(arg, "Argument should be on a separate line (unless all arguments can fit a single line)", true) {
			fix = append(fix, arg)
		}
	}
	fixClose := closeMissing && ctx.Emit(closing, `Missing newline before ")"`, true)

	if !ctx.CanMutate() {
		return
	}
	for _, arg := range fix {
		breakBefore(ctx, arg, argIndent)
	}
	if fixClose {
		breakBefore(ctx, closing, base)
	}
}

// overflows reports whether the line holding a single-line list is longer
// than max_line_length.
func overflows(ctx *lint.RuleContext, n cst.Node) bool {
	limit, ok := maxLineLength(ctx.Properties)
	if !ok || strings.Contains(n.Text(), "\n") {
		return false
	}
	return columns(ctx.Tree.Line(lineOf(n))) > limit
}

// breakBefore makes n start a new line with the given indentation, reusing
// the whitespace in front of it when there is some.
func breakBefore(ctx *lint.RuleContext, n cst.Node, indent string) {
	if ws := precedingWhitespace(n); ws.Valid() {
		_ = ctx.ReplaceText(ws, "\n"+indent)
		return
	}
	_ = ctx.InsertBefore(n, ctx.NewLeaf(cst.KindWhitespace, "\n"+indent))
}
