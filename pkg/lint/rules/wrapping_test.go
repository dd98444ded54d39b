package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	argumentMessage = "Argument should be on a separate line (unless all arguments can fit a single line)"
	rparenMessage   = `Missing newline before ")"`
)

func TestArgumentListWrappingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, provider(NewArgumentListWrappingRule), []ruleCase{
		{
			name:  "partly wrapped",
			input: "val x = foo(a,\n    b)\n",
			want: []finding{
				{1, 13, argumentMessage},
				{2, 6, rparenMessage},
			},
			output: "val x = foo(\n    a,\n    b\n)\n",
		},
		{
			name:  "too long for one line",
			input: "fun f() {\n    foo(aaaa, bbbb, cccc)\n}\n",
			props: map[string]string{"max_line_length": "20"},
			want: []finding{
				{2, 9, argumentMessage},
				{2, 15, argumentMessage},
				{2, 21, argumentMessage},
				{2, 25, rparenMessage},
			},
			output: "fun f() {\n    foo(\n        aaaa,\n        bbbb,\n        cccc\n    )\n}\n",
		},
		{
			name:  "fits on one line",
			input: "fun f() {\n    foo(aaaa, bbbb, cccc)\n}\n",
			props: map[string]string{"max_line_length": "40"},
		},
		{
			name:  "no limit",
			input: "fun f() {\n    foo(aaaa, bbbb, cccc)\n}\n",
		},
		{
			name:  "already one per line",
			input: "val x = foo(\n    a,\n    b,\n)\n",
		},
		{
			name:  "empty argument list",
			input: "val x = foo(\n)\n",
		},
	})
}

func TestMaxLineLengthRule(t *testing.T) {
	t.Parallel()

	props := map[string]string{"max_line_length": "10"}

	runRuleCases(t, provider(NewMaxLineLengthRule), []ruleCase{
		{
			name:  "long line",
			input: "val abc = 12345\n",
			props: props,
			want:  []finding{{1, 1, "Exceeded max line length (10)"}},
		},
		{
			name:  "exact length",
			input: "val a = 12\n",
			props: props,
		},
		{
			name:  "characters not bytes",
			input: "val ää = 1\n",
			props: props,
		},
		{
			name:  "import and package headers",
			input: "package com.example.app\n\nimport com.example.Thing\n\nval t = 1\n",
			props: props,
		},
		{
			name:  "multiline raw string",
			input: "val s = \"\"\"\nsome long raw text\n\"\"\"\n",
			props: props,
			want:  []finding{{1, 1, "Exceeded max line length (10)"}},
		},
		{
			name:  "backticked identifier ignored",
			input: "fun `a very long test name`() {}\n",
			props: map[string]string{"max_line_length": "10", "ktlint_ignore_back_ticked_identifier": "true"},
		},
		{
			name:  "backticked identifier counted by default",
			input: "fun `a very long test name`() {}\n",
			props: props,
			want:  []finding{{1, 1, "Exceeded max line length (10)"}},
		},
		{
			name:  "suppressed line",
			input: "val abc = 12345 // ktlint-disable max-line-length\n",
			props: props,
		},
		{
			name:  "limit turned off",
			input: "val abc = 12345\n",
			props: map[string]string{"max_line_length": "off"},
		},
	})
}

func TestMaxLineLengthRuleIsNotCorrected(t *testing.T) {
	t.Parallel()

	engine := newEngine(provider(NewMaxLineLengthRule))
	result := formatSource(t, engine, "val abc = 12345\n", map[string]string{"max_line_length": "10"})

	require.Len(t, result.Violations, 1)
	assert.False(t, result.Violations[0].Corrected)
	assert.False(t, result.Changed)
}

func TestIndentRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, provider(NewIndentRule), []ruleCase{
		{
			name:  "shallow continuation",
			input: "val x = foo(\n  a,\n  b\n  )\n",
			want: []finding{
				{2, 1, "Unexpected indentation (2) (should be 4)"},
				{3, 1, "Unexpected indentation (2) (should be 4)"},
				{4, 1, "Unexpected indentation (2) (should be 0)"},
			},
			output: "val x = foo(\n    a,\n    b\n)\n",
		},
		{
			name:  "nested in a block",
			input: "fun f() {\n    foo(\n    a\n    )\n}\n",
			want:  []finding{{3, 1, "Unexpected indentation (4) (should be 8)"}},
			output: "fun f() {\n    foo(\n        a\n    )\n}\n",
		},
		{
			name:   "tab style",
			input:  "val x = foo(\n    a\n)\n",
			props:  map[string]string{"indent_style": "tab"},
			want:   []finding{{2, 1, "Unexpected indentation (4) (should be 1)"}},
			output: "val x = foo(\n\ta\n)\n",
		},
		{
			name:  "indent size two",
			input: "fun f(\n  a: Int,\n  b: Int,\n) {}\n",
			props: map[string]string{"indent_size": "2"},
		},
		{
			name:  "single line",
			input: "val x = foo(a, b)\n",
		},
	})
}
