package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// NoSemiRule removes semicolons that do not separate statements on one line.
type NoSemiRule struct {
	lint.BaseRule
}

// NewNoSemiRule creates a new semicolon rule.
func NewNoSemiRule() *NoSemiRule {
	return &NoSemiRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-semi",
			"No unnecessary semicolons",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects semicolon leaves.
func (r *NoSemiRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindSemicolon) || !endsStatementLine(n) || separatesEnumEntries(n) {
		return
	}
	if !ctx.Emit(n, "Unnecessary semicolon", true) || !ctx.CanMutate() {
		return
	}

	// Spaces in front of a semicolon that ends the line would become
	// trailing spaces.
	prev := n.Prev()
	next := n.NextLeaf()
	if prev.Is(cst.KindWhitespace) && !strings.Contains(prev.Text(), "\n") &&
		(next.IsZero() || (next.Is(cst.KindWhitespace) && strings.Contains(next.Text(), "\n"))) {
		_ = ctx.Remove(prev)
	}
	_ = ctx.Remove(n)
}

// endsStatementLine reports whether nothing but comments follows the
// semicolon on its line, or the enclosing block closes right after it.
func endsStatementLine(n cst.Node) bool {
	for leaf := n.NextLeaf(); ; leaf = leaf.NextLeaf() {
		switch {
		case leaf.IsZero():
			return true
		case leaf.Is(cst.KindWhitespace):
			if strings.Contains(leaf.Text(), "\n") {
				return true
			}
		case leaf.Is(cst.KindEOLComment):
			return true
		case leaf.Is(cst.KindBlockComment, cst.KindKDoc):
			// Block comments do not end the line.
		case leaf.Is(cst.KindRBrace):
			return true
		default:
			return false
		}
	}
}

// separatesEnumEntries reports whether the semicolon ends the entry list of
// an enum class that declares members after it.
func separatesEnumEntries(n cst.Node) bool {
	body := n.Parent()
	if !body.Is(cst.KindClassBody) {
		return false
	}
	mods := body.Parent().ChildOfKind(cst.KindModifierList)
	isEnum := false
	for _, m := range mods.Children() {
		if m.Is(cst.KindKeyword) && m.Text() == "enum" {
			isEnum = true
		}
	}
	return isEnum && !n.NextCodeSibling().Is(cst.KindRBrace)
}
