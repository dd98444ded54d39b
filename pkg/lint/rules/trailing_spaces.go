package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

const trailingSpacesMessage = "Trailing space(s)"

// NoTrailingSpacesRule removes spaces and tabs at the end of lines, both in
// code and inside comments.
type NoTrailingSpacesRule struct {
	lint.BaseRule
}

// NewNoTrailingSpacesRule creates a new trailing spaces rule.
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-trailing-spaces",
			"Lines do not end with spaces or tabs",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects whitespace and comment leaves.
func (r *NoTrailingSpacesRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	switch n.Kind() {
	case cst.KindWhitespace:
		r.checkWhitespace(ctx, n)
	case cst.KindEOLComment:
		r.checkEOLComment(ctx, n)
	case cst.KindBlockComment, cst.KindKDoc:
		r.checkBlockComment(ctx, n)
	}
}

// checkWhitespace looks at every line a whitespace leaf ends. The last
// segment is the indentation of the next line, unless nothing follows.
func (r *NoTrailingSpacesRule) checkWhitespace(ctx *lint.RuleContext, n cst.Node) {
	lines := strings.Split(n.Text(), "\n")
	checked := len(lines) - 1
	if n.NextLeaf().IsZero() {
		checked = len(lines)
	}

	offset := n.Offset()
	fixed := false
	for i := range checked {
		width := len(lines[i])
		if width > 0 && ctx.EmitAt(offset, trailingSpacesMessage, true) && ctx.CanMutate() {
			lines[i] = ""
			fixed = true
		}
		offset += width + 1
	}
	if fixed {
		_ = ctx.ReplaceText(n, strings.Join(lines, "\n"))
	}
}

func (r *NoTrailingSpacesRule) checkEOLComment(ctx *lint.RuleContext, n cst.Node) {
	text := n.Text()
	trimmed := strings.TrimRight(text, " \t")
	if trimmed == text {
		return
	}
	if ctx.EmitAt(n.Offset()+len(trimmed), trailingSpacesMessage, true) && ctx.CanMutate() {
		_ = ctx.ReplaceText(n, trimmed)
	}
}

func (r *NoTrailingSpacesRule) checkBlockComment(ctx *lint.RuleContext, n cst.Node) {
	lines := strings.Split(n.Text(), "\n")
	offset := n.Offset()
	fixed := false
	for i := range len(lines) - 1 {
		width := len(lines[i])
		trimmed := strings.TrimRight(lines[i], " \t")
		if len(trimmed) != width && ctx.EmitAt(offset+len(trimmed), trailingSpacesMessage, true) && ctx.CanMutate() {
			lines[i] = trimmed
			fixed = true
		}
		offset += width + 1
	}
	if fixed {
		_ = ctx.ReplaceText(n, strings.Join(lines, "\n"))
	}
}
