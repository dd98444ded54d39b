package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/parser/kotlin"
)

// finding is the part of a violation the rule tests compare.
type finding struct {
	Line    int
	Column  int
	Message string
}

func findings(vs []lint.Violation) []finding {
	out := make([]finding, 0, len(vs))
	for _, v := range vs {
		out = append(out, finding{Line: v.Line, Column: v.Column, Message: v.Message})
	}
	return out
}

// ruleCase is one input for a single rule, checked in both modes.
type ruleCase struct {
	name   string
	input  string
	props  map[string]string
	want   []finding
	output string // formatted text; empty means unchanged
}

func newEngine(providers ...lint.Provider) *lint.Engine {
	registry := lint.NewRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return lint.NewEngine(kotlin.New(), registry, nil)
}

func newConfig(props map[string]string) *config.Config {
	cfg := config.NewConfig()
	cfg.Experimental = true
	for k, v := range props {
		cfg.EditorConfig[k] = v
	}
	return cfg
}

func lintSource(t *testing.T, engine *lint.Engine, src string, props map[string]string) *lint.FileResult {
	t.Helper()
	result, err := engine.Lint(context.Background(), lint.File{Path: "Test.kt", Content: []byte(src)}, newConfig(props))
	require.NoError(t, err)
	return result
}

func formatSource(t *testing.T, engine *lint.Engine, src string, props map[string]string) *lint.FileResult {
	t.Helper()
	result, err := engine.Format(context.Background(), lint.File{Path: "Test.kt", Content: []byte(src)}, newConfig(props))
	require.NoError(t, err)
	return result
}

// runRuleCases checks lint findings, the formatted output, and that
// formatting the output again changes nothing.
func runRuleCases(t *testing.T, provider lint.Provider, tests []ruleCase) {
	t.Helper()
	engine := newEngine(provider)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linted := lintSource(t, engine, tt.input, tt.props)
			want := tt.want
			if want == nil {
				want = []finding{}
			}
			require.Equal(t, want, findings(linted.Violations))

			output := tt.output
			if output == "" {
				output = tt.input
			}
			formatted := formatSource(t, engine, tt.input, tt.props)
			require.Equal(t, output, string(formatted.Output))

			again := formatSource(t, engine, output, tt.props)
			require.Equal(t, output, string(again.Output), "formatting is not idempotent")
		})
	}
}

func provider[R lint.Rule](ctor func() R) lint.Provider {
	return func() lint.Rule { return ctor() }
}
