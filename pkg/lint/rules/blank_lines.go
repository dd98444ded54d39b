package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// NoConsecutiveBlankLinesRule collapses runs of blank lines to one.
type NoConsecutiveBlankLinesRule struct {
	lint.BaseRule
}

// NewNoConsecutiveBlankLinesRule creates a new consecutive blank lines rule.
func NewNoConsecutiveBlankLinesRule() *NoConsecutiveBlankLinesRule {
	return &NoConsecutiveBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-consecutive-blank-lines",
			"No more than one blank line in a row, and none at the end of the file",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects whitespace leaves.
func (r *NoConsecutiveBlankLinesRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindWhitespace) {
		return
	}
	text := n.Text()
	lines := strings.Split(text, "\n")
	eof := n.NextLeaf().IsZero()

	// Three line feeds make two blank lines. At the end of the file a
	// single blank line is already one too many.
	if len(lines) <= 3 && !(eof && len(lines) > 2) {
		return
	}

	// The second blank line starts after the second line feed.
	offset := n.Offset() + len(lines[0]) + len(lines[1]) + 2
	if !ctx.EmitAt(offset, "Needless blank line(s)", true) || !ctx.CanMutate() {
		return
	}

	replacement := lines[0] + "\n\n" + lines[len(lines)-1]
	if eof {
		replacement = lines[0] + "\n" + lines[len(lines)-1]
	}
	_ = ctx.ReplaceText(n, replacement)
}

// NoBlankLineBeforeRbraceRule removes blank lines before a closing brace.
type NoBlankLineBeforeRbraceRule struct {
	lint.BaseRule
}

// NewNoBlankLineBeforeRbraceRule creates a new blank line before rbrace rule.
func NewNoBlankLineBeforeRbraceRule() *NoBlankLineBeforeRbraceRule {
	return &NoBlankLineBeforeRbraceRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-blank-line-before-rbrace",
			"No blank lines before a closing brace",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects whitespace directly before a closing brace.
func (r *NoBlankLineBeforeRbraceRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindWhitespace) || !n.Next().Is(cst.KindRBrace) {
		return
	}
	text := n.Text()
	if newlineCount(text) < 2 {
		return
	}

	first, _, _ := strings.Cut(text, "\n")
	offset := n.Offset() + len(first) + 1
	if !ctx.EmitAt(offset, `Unexpected blank line(s) before "}"`, true) || !ctx.CanMutate() {
		return
	}
	_ = ctx.ReplaceText(n, first+"\n"+lastLineOf(text))
}
