package rules

import (
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
)

// AnnotationSpacingRule requires annotations to sit directly on the
// construct they annotate, without blank lines or comments in between.
type AnnotationSpacingRule struct {
	lint.BaseRule
}

// NewAnnotationSpacingRule creates a new annotation spacing rule.
func NewAnnotationSpacingRule() *AnnotationSpacingRule {
	return &AnnotationSpacingRule{
		BaseRule: lint.NewBaseRule(
			"standard:annotation-spacing",
			"Annotations occur immediately before the annotated construct",
			lint.WithAutocorrect(),
		),
	}
}

// EnterNode inspects the modifier list of a declaration.
func (r *AnnotationSpacingRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindModifierList) {
		return
	}

	var last cst.Node
	for _, child := range n.Children() {
		if child.Is(cst.KindAnnotation) {
			last = child
		}
	}
	if !last.Valid() {
		return
	}

	// Trivia between the annotations and up to the annotated construct.
	// Trivia nested in annotation arguments is not considered.
	var blank []cst.Node
	comment := false
	line := lineOf(last)
	decl := n.Parent()
	for leaf := n.FirstLeaf(); leaf.Valid(); leaf = leaf.NextLeaf() {
		if !leaf.Kind().IsTrivia() {
			if n.Contains(leaf) {
				continue
			}
			break
		}
		if parent := leaf.Parent(); parent != n && parent != decl {
			continue
		}
		switch {
		case leaf.Is(cst.KindWhitespace) && newlineCount(leaf.Text()) > 1:
			blank = append(blank, leaf)
		case leaf.Kind().IsComment() && lineOf(leaf) > line:
			comment = true
		}
	}
	if len(blank) == 0 && !comment {
		return
	}

	// Comments cannot be moved safely, so only blank lines are fixed.
	message := "Annotations should occur immediately before the annotated construct"
	if !ctx.EmitAt(last.EndOffset(), message, !comment) || comment || !ctx.CanMutate() {
		return
	}
	for _, ws := range blank {
		_ = ctx.ReplaceText(ws, "\n"+lastLineOf(ws.Text()))
	}
}
