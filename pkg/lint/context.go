package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/kotlint/internal/logging"
	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/suppress"
)

// ErrMutationNotAllowed is returned by RuleContext mutations in lint mode,
// for rules that cannot autocorrect, and inside suppressed regions.
var ErrMutationNotAllowed = errors.New("tree mutation not allowed")

// RuleContext is what a rule sees while it visits one file.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing it
// to every hook. It lives for a single pass of a single rule.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the file being processed.
	File File

	// Tree is the file's syntax tree.
	Tree *cst.Tree

	// Config is the run configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Properties holds the file's resolved editorconfig properties.
	Properties *config.Snapshot

	// Suppressions answers whether the rule is disabled at a location.
	Suppressions *suppress.Index

	rule      ResolvedRule
	mode      Mode
	node      cst.Node
	pass      *passState
	iteration int

	// pending indexes this rule's violations in pass.violations that were
	// emitted as corrected and have not yet been followed by an edit.
	pending []int
}

// passState is shared by all rule contexts of one pass.
type passState struct {
	violations []Violation
	stale      []error
}

func newRuleContext(ctx context.Context, run *runState, rr ResolvedRule, pass *passState) *RuleContext {
	return &RuleContext{
		Ctx:          ctx,
		File:         run.file,
		Tree:         run.tree,
		Config:       run.cfg,
		RuleConfig:   rr.Config,
		Properties:   run.props,
		Suppressions: run.suppressions,
		rule:         rr,
		mode:         run.mode,
		pass:         pass,
		iteration:    run.iteration,
	}
}

// RuleID returns the id of the rule this context belongs to.
func (rc *RuleContext) RuleID() string {
	return rc.rule.Rule.ID()
}

// Mode returns whether the engine is linting or formatting.
func (rc *RuleContext) Mode() Mode {
	return rc.mode
}

// Iteration returns the zero-based fix-point iteration.
func (rc *RuleContext) Iteration() int {
	return rc.iteration
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// CanMutate reports whether the rule may change the tree at the node being
// visited.
func (rc *RuleContext) CanMutate() bool {
	if rc.mode != ModeFormat || !rc.rule.Rule.CanAutocorrect() {
		return false
	}
	if rc.node.Valid() && rc.Suppressions.IsSuppressed(rc.node, rc.RuleID()) {
		return false
	}
	return true
}

// Emit reports a violation at the start of node. It returns false when the
// violation is suppressed, in which case the rule must not fix it.
func (rc *RuleContext) Emit(node cst.Node, message string, canAutocorrect bool) bool {
	off := node.Offset()
	if off < 0 {
		return false
	}
	return rc.EmitAt(off, message, canAutocorrect)
}

// EmitAt reports a violation at a byte offset in the current text.
//
// In format mode a violation emitted with canAutocorrect is reported as
// corrected unless the rule's next edit fails.
func (rc *RuleContext) EmitAt(offset int, message string, canAutocorrect bool) bool {
	if rc.Suppressions.IsSuppressedAt(offset, rc.RuleID()) {
		return false
	}
	pos := rc.Tree.PositionAt(offset)
	corrected := canAutocorrect && rc.CanMutate()
	if corrected {
		rc.pending = append(rc.pending, len(rc.pass.violations))
	}
	rc.pass.violations = append(rc.pass.violations, Violation{
		FilePath:  rc.File.Path,
		Line:      pos.Line,
		Column:    pos.Column,
		RuleID:    rc.RuleID(),
		Message:   message,
		Corrected: corrected,
		Severity:  rc.rule.Severity,
	})
	return true
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML parsing
	if items, ok := v.([]any); ok {
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// NewLeaf creates a detached leaf in the file's tree.
func (rc *RuleContext) NewLeaf(kind cst.Kind, text string) cst.Node {
	return rc.Tree.NewLeaf(kind, text)
}

// NewComposite creates a detached composite in the file's tree.
func (rc *RuleContext) NewComposite(kind cst.Kind, children ...cst.Node) cst.Node {
	return rc.Tree.NewComposite(kind, children...)
}

// InsertBefore attaches n as the previous sibling of anchor.
func (rc *RuleContext) InsertBefore(anchor, n cst.Node) error {
	return rc.mutate("insert before", func() error { return rc.Tree.InsertBefore(anchor, n) })
}

// InsertAfter attaches n as the next sibling of anchor.
func (rc *RuleContext) InsertAfter(anchor, n cst.Node) error {
	return rc.mutate("insert after", func() error { return rc.Tree.InsertAfter(anchor, n) })
}

// AppendChild attaches n as the last child of parent.
func (rc *RuleContext) AppendChild(parent, n cst.Node) error {
	return rc.mutate("append child", func() error { return rc.Tree.AppendChild(parent, n) })
}

// Remove detaches n. Handles to n and its descendants become stale.
func (rc *RuleContext) Remove(n cst.Node) error {
	return rc.mutate("remove", func() error { return rc.Tree.Remove(n) })
}

// Replace puts replacement where old was and removes old.
func (rc *RuleContext) Replace(old, replacement cst.Node) error {
	return rc.mutate("replace", func() error { return rc.Tree.Replace(old, replacement) })
}

// ReplaceText changes the text of a leaf.
func (rc *RuleContext) ReplaceText(leaf cst.Node, text string) error {
	return rc.mutate("replace text", func() error { return rc.Tree.ReplaceText(leaf, text) })
}

// SplitWhitespace splits a whitespace leaf at a byte offset into its text.
func (rc *RuleContext) SplitWhitespace(leaf cst.Node, offset int) (cst.Node, cst.Node, error) {
	var first, second cst.Node
	err := rc.mutate("split whitespace", func() error {
		var err error
		first, second, err = rc.Tree.SplitWhitespace(leaf, offset)
		return err
	})
	return first, second, err
}

// MergeWhitespace joins two adjacent whitespace leaves.
func (rc *RuleContext) MergeWhitespace(first, second cst.Node) (cst.Node, error) {
	var merged cst.Node
	err := rc.mutate("merge whitespace", func() error {
		var err error
		merged, err = rc.Tree.MergeWhitespace(first, second)
		return err
	})
	return merged, err
}

func (rc *RuleContext) mutate(op string, fn func() error) error {
	if !rc.CanMutate() {
		rc.settlePending(false)
		return fmt.Errorf("%w: %s by %s", ErrMutationNotAllowed, op, rc.RuleID())
	}
	err := fn()
	rc.settlePending(err == nil)
	if err == nil {
		return nil
	}
	if cst.IsStale(err) {
		rc.pass.stale = append(rc.pass.stale, fmt.Errorf("%s: %w", rc.RuleID(), err))
		logging.FromContext(rc.Ctx).Debug("stale node edit skipped", logging.FieldError, err)
	}
	return err
}

// settlePending resolves the corrected violations emitted since the last
// edit. A failed edit leaves them uncorrected.
func (rc *RuleContext) settlePending(ok bool) {
	if !ok {
		for _, i := range rc.pending {
			rc.pass.violations[i].Corrected = false
		}
	}
	rc.pending = rc.pending[:0]
}
