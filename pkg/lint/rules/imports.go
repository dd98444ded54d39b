package rules

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/suppress"
)

// PackagesToUseImportOnDemandProperty lists the packages for which
// wildcard imports are allowed. A trailing ".*" allows the package itself,
// a trailing ".**" also allows its subpackages.
var PackagesToUseImportOnDemandProperty = config.Property{
	Name:        "ij_kotlin_packages_to_use_import_on_demand",
	Type:        config.TypeList,
	Default:     "java.util.*,kotlinx.android.synthetic.**",
	Description: "Packages that may be imported with a wildcard",
}

// importInfo is the parsed form of an import directive.
type importInfo struct {
	path  []string
	alias string
	star  bool
}

// name returns the name the import brings into scope.
func (i importInfo) name() string {
	if i.alias != "" {
		return i.alias
	}
	if len(i.path) == 0 {
		return ""
	}
	return i.path[len(i.path)-1]
}

// key identifies an import for duplicate detection.
func (i importInfo) key() string {
	key := strings.Join(i.path, ".")
	if i.star {
		key += ".*"
	}
	if i.alias != "" {
		key += " as " + i.alias
	}
	return key
}

func parseImport(n cst.Node) importInfo {
	var info importInfo
	for _, child := range n.Children() {
		switch {
		case child.Is(cst.KindIdentifier):
			info.path = append(info.path, suppress.Unquote(child.Text()))
		case child.Is(cst.KindOperator) && child.Text() == "*":
			info.star = true
		case child.Is(cst.KindImportAlias):
			if id := child.ChildOfKind(cst.KindIdentifier); id.Valid() {
				info.alias = suppress.Unquote(id.Text())
			}
		}
	}
	return info
}

// operatorNames are functions that are called through operator syntax,
// property delegation or destructuring rather than by name.
var operatorNames = map[string]bool{
	"unaryPlus": true, "unaryMinus": true, "not": true, "inc": true, "dec": true,
	"plus": true, "minus": true, "times": true, "div": true, "rem": true, "mod": true,
	"rangeTo": true, "rangeUntil": true, "contains": true, "get": true, "set": true,
	"invoke": true, "plusAssign": true, "minusAssign": true, "timesAssign": true,
	"divAssign": true, "remAssign": true, "modAssign": true, "equals": true,
	"compareTo": true, "iterator": true, "getValue": true, "setValue": true,
	"provideDelegate": true,
}

var (
	componentN   = regexp.MustCompile(`^component\d+$`)
	identifierRe = regexp.MustCompile("[A-Za-z_][A-Za-z0-9_]*|`[^`]+`")
	kdocLinkRe   = regexp.MustCompile(`\[([^\[\]\s]+)\]`)
	kdocTagRe    = regexp.MustCompile(`@(?:see|throws|exception|sample)\s+([\w.` + "`" + `]+)`)
)

// NoUnusedImportsRule removes imports that nothing in the file refers to.
type NoUnusedImportsRule struct {
	lint.BaseRule
}

// NewNoUnusedImportsRule creates a new unused imports rule.
func NewNoUnusedImportsRule() *NoUnusedImportsRule {
	return &NoUnusedImportsRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-unused-imports",
			"Imports are referenced in the file",
			lint.WithAutocorrect(),
		),
	}
}

// AfterLastNode checks the imports against every reference in the file.
func (r *NoUnusedImportsRule) AfterLastNode(ctx *lint.RuleContext) {
	root := ctx.Tree.Root()
	list := root.ChildOfKind(cst.KindImportList)
	if !list.Valid() {
		return
	}

	refs := collectReferences(root)
	seen := make(map[string]bool)
	var unused []cst.Node

	for _, directive := range list.Children() {
		if !directive.Is(cst.KindImportDirective) {
			continue
		}
		info := parseImport(directive)
		key := info.key()
		duplicate := seen[key]
		seen[key] = true

		name := info.name()
		used := info.star || refs[name] ||
			(info.alias == "" && (operatorNames[name] || componentN.MatchString(name)))
		if used && !duplicate {
			continue
		}
		if ctx.Emit(directive, "Unused import", true) && ctx.CanMutate() {
			unused = append(unused, directive)
		}
	}

	for _, directive := range unused {
		removeImport(ctx, directive)
	}
}

// collectReferences gathers every name used outside the package and import
// headers, including names inside string templates and KDoc links.
func collectReferences(root cst.Node) map[string]bool {
	refs := make(map[string]bool)
	add := func(name string) {
		refs[suppress.Unquote(name)] = true
	}

	//nolint:errcheck // the callback never fails
	cst.Walk(root, func(n cst.Node) error {
		switch n.Kind() {
		case cst.KindImportList, cst.KindPackageDirective:
			return cst.ErrSkipChildren
		case cst.KindIdentifier:
			add(n.Text())
		case cst.KindTemplateEntry:
			for _, name := range identifierRe.FindAllString(strings.TrimPrefix(n.Text(), "$"), -1) {
				add(name)
			}
		case cst.KindKDoc:
			for _, re := range []*regexp.Regexp{kdocLinkRe, kdocTagRe} {
				for _, m := range re.FindAllStringSubmatch(n.Text(), -1) {
					for _, part := range strings.Split(m[1], ".") {
						add(part)
					}
				}
			}
		}
		return nil
	})
	return refs
}

// removeImport deletes an import directive together with the line break
// that separated it from its neighbour. Removing the last import also drops
// the blank line that followed the import list.
func removeImport(ctx *lint.RuleContext, directive cst.Node) {
	list := directive.Parent()
	next, prev := directive.Next(), directive.Prev()

	switch {
	case next.Is(cst.KindWhitespace) && next.Next().Valid():
		_ = ctx.Remove(next)
	case prev.Is(cst.KindWhitespace):
		_ = ctx.Remove(prev)
	case next.Is(cst.KindWhitespace):
		_ = ctx.Remove(next)
	}
	if err := ctx.Remove(directive); err != nil {
		return
	}

	if list.ChildCount() == 0 {
		if after := list.Next(); after.Is(cst.KindWhitespace) {
			_ = ctx.Remove(after)
		}
	}
}

// NoWildcardImportsRule reports wildcard imports outside the allowed
// packages.
type NoWildcardImportsRule struct {
	lint.BaseRule
}

// NewNoWildcardImportsRule creates a new wildcard imports rule.
func NewNoWildcardImportsRule() *NoWildcardImportsRule {
	return &NoWildcardImportsRule{
		BaseRule: lint.NewBaseRule(
			"standard:no-wildcard-imports",
			"No wildcard imports except for configured packages",
			lint.WithProperties(PackagesToUseImportOnDemandProperty),
		),
	}
}

// EnterNode inspects import directives.
func (r *NoWildcardImportsRule) EnterNode(ctx *lint.RuleContext, n cst.Node) {
	if !n.Is(cst.KindImportDirective) {
		return
	}
	info := parseImport(n)
	if !info.star {
		return
	}
	if allowedWildcard(strings.Join(info.path, "."), ctx.Properties.List(PackagesToUseImportOnDemandProperty)) {
		return
	}
	ctx.Emit(n, "Wildcard import", false)
}

// allowedWildcard matches a package against the import-on-demand patterns.
// Package names are compared as slash separated paths so that "**" spans
// subpackages.
func allowedWildcard(pkg string, patterns []string) bool {
	name := strings.ReplaceAll(pkg, ".", "/")
	for _, pattern := range patterns {
		switch {
		case strings.HasSuffix(pattern, ".**"):
			base := strings.TrimSuffix(pattern, ".**")
			if base == pkg {
				return true
			}
			if ok, err := doublestar.Match(strings.ReplaceAll(pattern, ".", "/"), name); err == nil && ok {
				return true
			}
		case strings.HasSuffix(pattern, ".*"):
			if strings.TrimSuffix(pattern, ".*") == pkg {
				return true
			}
		}
	}
	return false
}
