package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// IndentRule checks the continuation indent of wrapped argument and
// parameter lists: one level deeper than the line opening the list for the
// elements, and level with it for the closing parenthesis.
type IndentRule struct {
	lint.BaseRule
}

// NewIndentRule creates a new indentation rule.
func NewIndentRule() *IndentRule {
	return &IndentRule{
		BaseRule: lint.NewBaseRule(
			"standard:indent",
			"Wrapped argument and parameter lists use a consistent continuation indent",
			lint.WithAutocorrect(),
			lint.WithExperimental(),
			lint.WithRunAfter("standard:argument-list-wrapping", false),
			lint.WithProperties(config.IndentSizeProperty, config.IndentStyleProperty),
		),
	}
}

// EnterNode inspects wrapped lists.
func (r *IndentRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindValueArgumentList, cst.KindParameterList) {
		return
	}

	base := lineIndent(ctx.Tree, lineOf(n))
	inner := base + indentUnit(ctx.Properties)

	for _, ws := range n.Children() {
		if !ws.Is(cst.KindWhitespace) || !strings.Contains(ws.Text(), "\n") {
			continue
		}
		next := ws.Next()
		if next.IsZero() {
			continue
		}

		want := inner
		if next.Is(cst.KindRParen) {
			want = base
		}
		text := ws.Text()
		got := lastLineOf(text)
		if got == want {
			continue
		}

		offset := ws.Offset() + len(text) - len(got)
		message := fmt.Sprintf("Unexpected indentation (%d) (should be %d)", columns(got), columns(want))
		if ctx.EmitAt(offset, message, true) && ctx.CanMutate() {
			_ = ctx.ReplaceText(ws, text[:len(text)-len(got)]+want)
		}
	}
}
