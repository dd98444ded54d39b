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

// DefaultMaxIterations bounds the format fix-point loop. Rules that keep
// undoing each other stop here instead of looping forever.
const DefaultMaxIterations = 10

// ConfigRuleID is the rule id attached to configuration diagnostics.
const ConfigRuleID = "kotlint:config"

// PropertyResolver resolves editorconfig-style properties for a file.
type PropertyResolver interface {
	ResolveFile(path string, props []config.Property) (*config.Snapshot, error)
}

// FileResult contains the results of processing a single file.
type FileResult struct {
	// Path is the processed file path.
	Path string

	// Tree is the tree in its final state.
	Tree *cst.Tree

	// Violations are the corrected and unresolved violations, sorted.
	Violations []Violation

	// Output is the reconstructed text. In lint mode it equals the input.
	Output []byte

	// Changed is true when format mode altered the text.
	Changed bool

	// Iterations is the number of RUN passes performed.
	Iterations int

	// Converged is false when format mode hit the iteration limit while
	// rules were still editing.
	Converged bool

	// StaleEdits lists edits that failed on detached nodes.
	StaleEdits []error

	// ConfigWarnings lists editorconfig values that failed to coerce.
	ConfigWarnings []*config.CoercionError
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// CorrectedCount returns the number of violations fixed by format mode.
func (fr *FileResult) CorrectedCount() int {
	count := 0
	for _, v := range fr.Violations {
		if v.Corrected {
			count++
		}
	}
	return count
}

// UnresolvedCount returns the number of violations left in the output.
func (fr *FileResult) UnresolvedCount() int {
	return fr.IssueCount() - fr.CorrectedCount()
}

// Engine coordinates parsing, property resolution, and rule execution.
type Engine struct {
	// Parser parses source files into trees.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry

	// Resolver supplies per-file properties. Nil means defaults only.
	Resolver PropertyResolver

	// MaxIterations bounds format mode. Zero means DefaultMaxIterations.
	MaxIterations int
}

// NewEngine creates a new Engine with the given parser, registry, and
// property resolver.
func NewEngine(parser Parser, registry *Registry, resolver PropertyResolver) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
		Resolver: resolver,
	}
}

// Lint checks a file without modifying it.
func (e *Engine) Lint(ctx context.Context, file File, cfg *config.Config) (*FileResult, error) {
	rules, err := ResolveRules(e.Registry, cfg)
	if err != nil {
		return nil, err
	}
	return e.Process(ctx, rules, file, cfg, ModeLint)
}

// Format checks a file and applies autocorrections until a fixed point.
func (e *Engine) Format(ctx context.Context, file File, cfg *config.Config) (*FileResult, error) {
	rules, err := ResolveRules(e.Registry, cfg)
	if err != nil {
		return nil, err
	}
	return e.Process(ctx, rules, file, cfg, ModeFormat)
}

type engineState int

const (
	stateParse engineState = iota
	stateRun
	stateDone
)

// runState is the per-file state of one Process call.
type runState struct {
	file         File
	cfg          *config.Config
	mode         Mode
	tree         *cst.Tree
	props        *config.Snapshot
	suppressions *suppress.Index
	rules        []ResolvedRule
	instances    []Rule
	iteration    int
}

// Process runs the PARSE, RUN, DONE state machine over one file.
//
// Lint mode performs exactly one RUN pass. Format mode repeats RUN on the
// mutated tree until a pass makes no edit or MaxIterations passes ran.
// Violations corrected in any pass are reported with Corrected set; the
// uncorrected violations come from the last pass only. When format mode
// stops at the limit, the last pass is a lint pass over the final tree, so
// whatever the rules still find there is reported as not corrected.
func (e *Engine) Process(
	ctx context.Context,
	rules *RuleSet,
	file File,
	cfg *config.Config,
	mode Mode,
) (*FileResult, error) {
	ctx = logging.WithFile(ctx, file.Path)
	logger := logging.FromContext(ctx)
	if cfg == nil {
		cfg = config.NewConfig()
	}
	maxIterations := e.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	run := &runState{file: file, cfg: cfg, mode: mode}
	result := &FileResult{Path: file.Path, Converged: true}
	corrected := NewCollector()
	var last []Violation

	state := stateParse
	for state != stateDone {
		switch state {
		case stateParse:
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			}
			if err := e.parse(ctx, run, rules); err != nil {
				return nil, err
			}
			result.ConfigWarnings = run.props.Warnings()
			for _, w := range result.ConfigWarnings {
				logger.Warn("invalid editorconfig value", logging.FieldProperty, w.Property, logging.FieldError, w.Reason)
			}
			state = stateRun

		case stateRun:
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			}

			pass, edited, err := e.runPass(ctx, run)
			if err != nil {
				return nil, err
			}
			run.iteration++
			result.StaleEdits = append(result.StaleEdits, pass.stale...)

			last = last[:0]
			for _, v := range pass.violations {
				if v.Corrected {
					corrected.Add(v)
				} else {
					last = append(last, v)
				}
			}

			switch {
			case mode == ModeLint || !edited:
				state = stateDone
			case run.iteration >= maxIterations:
				result.Converged = false
				logger.Warn("format did not converge", logging.FieldIterations, run.iteration)
				remaining, err := e.lintFinalTree(ctx, run)
				if err != nil {
					return nil, err
				}
				last = remaining
				state = stateDone
			}
		}
	}

	final := NewCollector()
	for _, v := range corrected.Finalize() {
		final.Add(v)
	}
	for _, v := range last {
		final.Add(v)
	}
	for _, w := range result.ConfigWarnings {
		final.Add(Violation{
			FilePath: file.Path,
			Line:     1,
			Column:   1,
			RuleID:   ConfigRuleID,
			Message:  w.Error(),
			Severity: config.SeverityInfo,
		})
	}

	output := run.tree.Text()
	result.Tree = run.tree
	result.Violations = final.Finalize()
	result.Iterations = run.iteration
	result.Output = []byte(output)
	result.Changed = output != string(file.Content)

	logger.Debug("file processed",
		logging.FieldMode, mode,
		logging.FieldIterations, result.Iterations,
		logging.FieldViolations, len(result.Violations),
		logging.FieldConverged, result.Converged,
	)
	return result, nil
}

// parse builds the tree, the property snapshot, the suppression index, and
// the file's active rules.
func (e *Engine) parse(ctx context.Context, run *runState, rules *RuleSet) error {
	tree, err := e.Parser.Parse(ctx, run.file.Path, run.file.Content)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	run.tree = tree

	run.props = config.NewSnapshot(rules.Properties(), run.cfg.EditorConfig)
	if e.Resolver != nil {
		props, err := e.Resolver.ResolveFile(run.file.Path, rules.Properties())
		if err != nil {
			return fmt.Errorf("resolve properties: %w", err)
		}
		run.props = props
	}

	run.suppressions = suppress.Build(tree)
	run.rules = rules.ForFile(run.file, run.props)

	instances := make([]Rule, 0, len(run.rules))
	for _, rr := range run.rules {
		rule, err := rules.Instantiate(rr)
		if err != nil {
			return err
		}
		instances = append(instances, rule)
	}
	run.instances = instances
	return nil
}

// lintFinalTree runs one lint pass over the tree format mode left behind.
// It does not count as an iteration.
func (e *Engine) lintFinalTree(ctx context.Context, run *runState) ([]Violation, error) {
	run.mode = ModeLint
	defer func() { run.mode = ModeFormat }()

	pass, _, err := e.runPass(ctx, run)
	if err != nil {
		return nil, err
	}
	return pass.violations, nil
}

// runPass runs every active rule once over the tree, in rule order. Each
// rule sees a full traversal before the next rule starts.
func (e *Engine) runPass(ctx context.Context, run *runState) (*passState, bool, error) {
	pass := &passState{}
	before := run.tree.Revision()

	for i, rr := range run.rules {
		rule := run.instances[i]
		rc := newRuleContext(logging.WithRule(ctx, rr.Rule.ID()), run, rr, pass)

		rule.BeforeFirstNode(rc)
		err := cst.WalkWithContext(run.tree.Root(),
			func(n cst.Node) error {
				rc.node = n
				rule.EnterNode(rc, n)
				return nil
			},
			func(n cst.Node) error {
				rc.node = n
				rule.LeaveNode(rc, n)
				return nil
			},
		)
		if err != nil {
			return nil, false, fmt.Errorf("rule %s: %w", rr.Rule.ID(), err)
		}
		rc.node = cst.Node{}
		rule.AfterLastNode(rc)

		if run.cfg.Strict && len(pass.stale) > 0 {
			return nil, false, fmt.Errorf("strict mode: %w", errors.Join(pass.stale...))
		}
	}

	return pass, run.tree.Revision() != before, nil
}
