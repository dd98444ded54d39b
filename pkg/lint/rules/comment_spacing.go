package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// CommentSpacingRule requires a space before and after the "//" of an
// end-of-line comment.
type CommentSpacingRule struct {
	lint.BaseRule
}

// NewCommentSpacingRule creates a new comment spacing rule.
func NewCommentSpacingRule() *CommentSpacingRule {
	return &CommentSpacingRule{
		BaseRule: lint.NewBaseRule(
			"standard:comment-spacing",
			"End-of-line comments are separated from code and start with a space",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects end-of-line comments.
func (r *CommentSpacingRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindEOLComment) {
		return
	}

	text := n.Text()
	prev := n.PrevLeaf()
	before := prev.Valid() && !prev.Is(cst.KindWhitespace) &&
		ctx.Emit(n, "Missing space before //", true)
	after := needsSpaceAfterSlashes(text) &&
		ctx.Emit(n, "Missing space after //", true)

	if !ctx.CanMutate() {
		return
	}
	if after {
		_ = ctx.ReplaceText(n, "// "+strings.TrimPrefix(text, "//"))
	}
	if before {
		_ = ctx.InsertBefore(n, ctx.NewLeaf(cst.KindWhitespace, " "))
	}
}

// needsSpaceAfterSlashes exempts empty comments, "///" doc-style comments and
// IDE markers such as "//region" and "//noinspection".
func needsSpaceAfterSlashes(text string) bool {
	body := strings.TrimPrefix(text, "//")
	switch {
	case body == "":
		return false
	case strings.HasPrefix(body, " "), strings.HasPrefix(body, "\t"):
		return false
	case strings.HasPrefix(body, "/"):
		return false
	case strings.HasPrefix(body, "region"), strings.HasPrefix(body, "endregion"),
		strings.HasPrefix(body, "noinspection"):
		return false
	default:
		return true
	}
}
