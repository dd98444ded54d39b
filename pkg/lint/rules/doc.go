// Package rules provides the built-in standard rule set for kotlint.
//
// # Rules
//
//   - Whitespace and layout:
//
//   - standard:final-newline - Files end with a newline (insert_final_newline)
//
//   - standard:no-consecutive-blank-lines - At most one blank line in a row
//
//   - standard:no-trailing-spaces - Lines do not end with spaces or tabs
//
//   - standard:no-blank-line-before-rbrace - No blank lines before "}"
//
//   - standard:no-semi - No semicolons at the end of a line
//
//   - standard:comment-spacing - "// comment", separated from code
//
//   - Declarations:
//
//   - standard:annotation-spacing - Annotations sit directly on their target
//
//   - Imports:
//
//   - standard:no-unused-imports - Every import is referenced
//
//   - standard:no-wildcard-imports - No "*" imports outside allowed packages (lint only)
//
//   - Wrapping and length:
//
//   - standard:argument-list-wrapping - One argument per line once wrapped
//
//   - standard:max-line-length - Lines fit max_line_length (lint only)
//
//   - standard:indent - Continuation indent of wrapped lists (experimental)
//
// # Registration
//
// Rules register with lint.DefaultRegistry on import. Each registration is a
// provider, so every file gets fresh rule instances:
//
//	import _ "github.com/yaklabco/kotlint/pkg/lint/rules"
//
// # Properties
//
// Rules read their settings from the per-file property snapshot:
// insert_final_newline, max_line_length, indent_size, indent_style,
// ktlint_ignore_back_ticked_identifier and
// ij_kotlin_packages_to_use_import_on_demand.
package rules
