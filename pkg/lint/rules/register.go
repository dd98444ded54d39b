package rules

import "github.com/yaklabco/kotlint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Whitespace and layout
	registry.Register(func() lint.Rule { return NewFinalNewlineRule() })
	registry.Register(func() lint.Rule { return NewNoConsecutiveBlankLinesRule() })
	registry.Register(func() lint.Rule { return NewNoTrailingSpacesRule() })
	registry.Register(func() lint.Rule { return NewNoBlankLineBeforeRbraceRule() })
	registry.Register(func() lint.Rule { return NewNoSemiRule() })
	registry.Register(func() lint.Rule { return NewCommentSpacingRule() })

	// Declarations
	registry.Register(func() lint.Rule { return NewAnnotationSpacingRule() })

	// Imports
	registry.Register(func() lint.Rule { return NewNoUnusedImportsRule() })
	registry.Register(func() lint.Rule { return NewNoWildcardImportsRule() })

	// Wrapping and length
	registry.Register(func() lint.Rule { return NewArgumentListWrappingRule() })
	registry.Register(func() lint.Rule { return NewMaxLineLengthRule() })
	registry.Register(func() lint.Rule { return NewIndentRule() })
}

// RegisterLegacyAliases registers the ids some rules had while they lived in
// the experimental rule set, so older suppressions and configuration keep
// working.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("experimental:annotation-spacing", "standard:annotation-spacing")
	registry.RegisterAlias("experimental:argument-list-wrapping", "standard:argument-list-wrapping")
	registry.RegisterAlias("experimental:comment-spacing", "standard:comment-spacing")
	registry.RegisterAlias("experimental:indent", "standard:indent")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
