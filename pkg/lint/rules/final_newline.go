package rules

import (
	"strings"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// FinalNewlineRule enforces insert_final_newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates a new final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"standard:final-newline",
			"Files end with a newline, or without one when insert_final_newline is false",
			lint.WithAutocorrect(),
			lint.WithProperties(config.InsertFinalNewlineProperty),
		),
	}
}

// AfterLastNode checks the end of the file once the tree is complete.
func (r *FinalNewlineRule) AfterLastNode(ctx *lint.RuleContext) {
	root := ctx.Tree.Root()
	text := root.Text()
	if text == "" {
		return
	}

	insert, ok := ctx.Properties.Bool(config.InsertFinalNewlineProperty)
	if !ok {
		return
	}
	last := root.LastLeaf()

	if insert {
		if strings.HasSuffix(text, "\n") {
			return
		}
		if !ctx.EmitAt(0, `File must end with a newline (\n)`, true) || !ctx.CanMutate() {
			return
		}
		if last.Is(cst.KindWhitespace) {
			_ = ctx.ReplaceText(last, last.Text()+"\n")
			return
		}
		_ = ctx.AppendChild(root, ctx.NewLeaf(cst.KindWhitespace, "\n"))
		return
	}

	if !last.Is(cst.KindWhitespace) || !strings.HasSuffix(last.Text(), "\n") {
		return
	}
	if !ctx.Emit(last, `Redundant newline (\n) at the end of file`, true) || !ctx.CanMutate() {
		return
	}
	trimmed := strings.TrimRight(last.Text(), " \t\n")
	if trimmed == "" {
		_ = ctx.Remove(last)
		return
	}
	_ = ctx.ReplaceText(last, trimmed)
}
