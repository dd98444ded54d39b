// Package suppress answers whether a rule is switched off at a place in a
// file.
//
// Three forms are recognized:
//   - Line:       foo() // ktlint-disable rule-a, rule-b
//   - Block:      /* ktlint-disable rule-a */ ... /* ktlint-enable rule-a */
//   - Annotation: @Suppress("ktlint:standard:rule-a") on a declaration
//
// A directive without rule ids applies to every rule. A block disable
// without a matching enable runs to the end of the file; an enable that
// matches no open disable is ignored.
package suppress

import (
	"slices"
	"strings"

	"github.com/yaklabco/kotlint/pkg/cst"
)

const (
	disableKeyword = "ktlint-disable"
	enableKeyword  = "ktlint-enable"

	// DefaultRuleSet is assumed for rule ids written without a rule set.
	DefaultRuleSet = "standard"
)

// DirectiveType indicates the scope of a directive.
type DirectiveType int

const (
	TypeLine DirectiveType = iota
	TypeBlockDisable
	TypeBlockEnable
	TypeAnnotation
)

// String returns a human-readable name for the directive type.
func (t DirectiveType) String() string {
	switch t {
	case TypeLine:
		return "line"
	case TypeBlockDisable:
		return "block-disable"
	case TypeBlockEnable:
		return "block-enable"
	case TypeAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// Directive is one suppression found in the source.
type Directive struct {
	Type DirectiveType

	// Rules holds normalized rule ids. Empty means all rules.
	Rules []string

	// Node is the comment or annotation carrying the directive.
	Node cst.Node
}

// suppresses reports whether the directive covers ruleID.
func (d *Directive) suppresses(ruleID string) bool {
	return len(d.Rules) == 0 || slices.Contains(d.Rules, NormalizeRuleID(ruleID))
}

// region covers the text between two nodes. A zero end runs to the end of
// the file. When inclusive is set the start node itself is covered.
type region struct {
	directive *Directive
	start     cst.Node
	end       cst.Node
	inclusive bool
}

// Index is the per-file suppression table. Positions are derived from the
// directive nodes on every query, so the answers stay correct while the
// tree is being rewritten.
type Index struct {
	tree       *cst.Tree
	directives []*Directive
	lines      []*Directive
	regions    []region
}

// Build scans the comments and annotations of a tree once.
func Build(tree *cst.Tree) *Index {
	ix := &Index{tree: tree}
	var open []region

	//nolint:errcheck // the callback never fails
	cst.Walk(tree.Root(), func(n cst.Node) error {
		switch n.Kind() {
		case cst.KindEOLComment:
			body := strings.TrimSpace(strings.TrimPrefix(n.Text(), "//"))
			if rules, ok := parseDirective(body, disableKeyword); ok {
				d := ix.add(TypeLine, rules, n)
				ix.lines = append(ix.lines, d)
			}

		case cst.KindBlockComment:
			body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(n.Text(), "/*"), "*/"))
			if rules, ok := parseDirective(body, disableKeyword); ok {
				open = append(open, region{directive: ix.add(TypeBlockDisable, rules, n), start: n})
			} else if rules, ok := parseDirective(body, enableKeyword); ok {
				ix.add(TypeBlockEnable, rules, n)
				for i := len(open) - 1; i >= 0; i-- {
					if slices.Equal(open[i].directive.Rules, rules) {
						open[i].end = n
						ix.regions = append(ix.regions, open[i])
						open = slices.Delete(open, i, i+1)
						break
					}
				}
			}

		case cst.KindAnnotation:
			if rules, ok := suppressAnnotation(n); ok {
				d := ix.add(TypeAnnotation, rules, n)
				ix.regions = append(ix.regions, region{directive: d, start: annotatedNode(n), inclusive: true})
			}
			return cst.ErrSkipChildren
		}
		return nil
	})

	ix.regions = append(ix.regions, open...)
	return ix
}

func (ix *Index) add(typ DirectiveType, rules []string, n cst.Node) *Directive {
	d := &Directive{Type: typ, Rules: rules, Node: n}
	ix.directives = append(ix.directives, d)
	return d
}

// Directives returns every directive in document order.
func (ix *Index) Directives() []*Directive {
	return ix.directives
}

// IsSuppressed reports whether ruleID is disabled where n starts.
func (ix *Index) IsSuppressed(n cst.Node, ruleID string) bool {
	off := n.Offset()
	if off < 0 {
		return false
	}
	return ix.IsSuppressedAt(off, ruleID)
}

// IsSuppressedAt reports whether ruleID is disabled at the byte offset.
func (ix *Index) IsSuppressedAt(offset int, ruleID string) bool {
	if ix == nil {
		return false
	}

	line := ix.tree.PositionAt(offset).Line
	for _, d := range ix.lines {
		if d.Node.Valid() && d.Node.Position().Line == line && d.suppresses(ruleID) {
			return true
		}
	}

	for _, r := range ix.regions {
		if !r.start.Valid() || !r.directive.suppresses(ruleID) {
			continue
		}
		start := r.start.EndOffset()
		if r.inclusive {
			start = r.start.Offset()
		}
		end := len(ix.tree.Text())
		switch {
		case r.inclusive:
			end = r.start.EndOffset()
		case r.end.Valid():
			end = r.end.Offset()
		}
		if offset >= start && offset < end {
			return true
		}
	}
	return false
}

// NormalizeRuleID qualifies a bare rule id with the default rule set.
func NormalizeRuleID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return DefaultRuleSet + ":" + id
}

// parseDirective recognizes "<keyword> [id[, id...]]" and returns the
// normalized, sorted ids.
func parseDirective(body, keyword string) ([]string, bool) {
	rest, ok := strings.CutPrefix(body, keyword)
	if !ok {
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ',' {
		return nil, false
	}

	var rules []string
	for _, field := range strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		rules = append(rules, NormalizeRuleID(field))
	}
	slices.Sort(rules)
	return slices.Compact(rules), true
}

// suppressAnnotation recognizes @Suppress("ktlint") and
// @Suppress("ktlint:<rule set>:<rule>") arguments.
func suppressAnnotation(ann cst.Node) ([]string, bool) {
	name := ""
	for c := ann.FirstChild(); !c.IsZero(); c = c.Next() {
		if c.Kind() == cst.KindIdentifier {
			name = c.Text()
		}
		if c.Kind() == cst.KindColon {
			name = ""
		}
	}
	if name != "Suppress" && name != "SuppressWarnings" {
		return nil, false
	}

	args := ann.ChildOfKind(cst.KindValueArgumentList)
	if args.IsZero() {
		return nil, false
	}

	var rules []string
	found := false
	for _, s := range cst.FindByKind(args, cst.KindStringContent) {
		value := s.Text()
		switch {
		case value == "ktlint":
			return nil, true
		case strings.HasPrefix(value, "ktlint:"):
			found = true
			rules = append(rules, NormalizeRuleID(strings.TrimPrefix(value, "ktlint:")))
		}
	}
	slices.Sort(rules)
	return slices.Compact(rules), found
}

// annotatedNode returns the element an annotation applies to: the
// declaration owning its modifier list, the whole file for file
// annotations, or the enclosing expression.
func annotatedNode(ann cst.Node) cst.Node {
	parent := ann.Parent()
	switch parent.Kind() {
	case cst.KindModifierList:
		return parent.Parent()
	case cst.KindFile:
		return parent
	default:
		if parent.IsZero() {
			return ann
		}
		return parent
	}
}

// IsBacktickIdentifier reports whether n is an identifier written in
// backticks.
func IsBacktickIdentifier(n cst.Node) bool {
	text := n.Text()
	return n.Kind() == cst.KindIdentifier && len(text) >= 2 && text[0] == '`' && text[len(text)-1] == '`'
}

// Unquote strips the backticks of an escaped identifier.
func Unquote(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		return name[1 : len(name)-1]
	}
	return name
}

// HasBacktickIdentifier reports whether the 1-based line contains an
// identifier written in backticks, the exemption used for long test names.
func (ix *Index) HasBacktickIdentifier(line int) bool {
	if ix == nil {
		return false
	}
	text := ix.tree.Line(line)
	if !strings.Contains(text, "`") {
		return false
	}
	start := ix.tree.OffsetAt(cst.Position{Line: line, Column: 1})
	if start < 0 {
		return false
	}
	end := start + len(text)
	for off := start; off < end; {
		leaf := ix.tree.LeafAt(off)
		if leaf.IsZero() {
			return false
		}
		if IsBacktickIdentifier(leaf) {
			return true
		}
		off = leaf.EndOffset()
	}
	return false
}
