package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/config"
)

func TestPropertyParse(t *testing.T) {
	t.Parallel()

	enum := config.Property{Name: "style", Type: config.TypeEnum, Values: []string{"a", "b"}, Default: "a"}

	tests := []struct {
		name    string
		prop    config.Property
		raw     string
		want    config.Value
		wantErr bool
	}{
		{"int", config.IndentSizeProperty, "2", config.Value{Type: config.TypeInt, Int: 2}, false},
		{"int with spaces", config.IndentSizeProperty, " 8 ", config.Value{Type: config.TypeInt, Int: 8}, false},
		{"int invalid", config.IndentSizeProperty, "wide", config.Value{}, true},
		{"unset", config.IndentSizeProperty, "unset", config.Value{Type: config.TypeInt, Unset: true}, false},
		{"unset any case", config.IndentSizeProperty, "UNSET", config.Value{Type: config.TypeInt, Unset: true}, false},
		{"off is unset", config.MaxLineLengthProperty, "off", config.Value{Type: config.TypeInt, Unset: true}, false},
		{"off is an error elsewhere", config.IndentSizeProperty, "off", config.Value{}, true},
		{"bool", config.InsertFinalNewlineProperty, "FALSE", config.Value{Type: config.TypeBool}, false},
		{"bool invalid", config.InsertFinalNewlineProperty, "maybe", config.Value{}, true},
		{"enum", enum, "B", config.Value{Type: config.TypeEnum, Str: "b"}, false},
		{"enum invalid", enum, "c", config.Value{}, true},
		{"indent style", config.IndentStyleProperty, "tab", config.Value{Type: config.TypeIndentStyle, Str: "tab"}, false},
		{"indent style invalid", config.IndentStyleProperty, "both", config.Value{}, true},
		{"list", config.DisabledRulesProperty, " a, b ,,c ", config.Value{Type: config.TypeList, List: []string{"a", "b", "c"}}, false},
		{"empty list", config.DisabledRulesProperty, "", config.Value{Type: config.TypeList}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.prop.Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("defaults when absent", func(t *testing.T) {
		t.Parallel()

		snap := config.NewSnapshot(config.CoreProperties(), nil)
		size, ok := snap.Int(config.IndentSizeProperty)
		assert.True(t, ok)
		assert.Equal(t, 4, size)

		_, ok = snap.Int(config.MaxLineLengthProperty)
		assert.False(t, ok, "max_line_length is unset by default")
		assert.Empty(t, snap.Warnings())
	})

	t.Run("coercion failure falls back to default with warning", func(t *testing.T) {
		t.Parallel()

		snap := config.NewSnapshot(config.CoreProperties(), map[string]string{
			"indent_size":          "x",
			"insert_final_newline": "nope",
		})
		size, ok := snap.Int(config.IndentSizeProperty)
		assert.True(t, ok)
		assert.Equal(t, 4, size)

		warnings := snap.Warnings()
		require.Len(t, warnings, 2)
		assert.Equal(t, "indent_size", warnings[0].Property)
		assert.Equal(t, "insert_final_newline", warnings[1].Property)
		assert.Contains(t, warnings[0].Error(), `invalid value "x" for indent_size`)
	})

	t.Run("unset is distinct from default", func(t *testing.T) {
		t.Parallel()

		snap := config.NewSnapshot(config.CoreProperties(), map[string]string{"insert_final_newline": "unset"})
		_, ok := snap.Bool(config.InsertFinalNewlineProperty)
		assert.False(t, ok)
	})

	t.Run("undeclared property resolves to default", func(t *testing.T) {
		t.Parallel()

		extra := config.Property{Name: "extra", Type: config.TypeInt, Default: "7"}
		snap := config.NewSnapshot(nil, map[string]string{"extra": "9"})
		n, ok := snap.Int(extra)
		assert.True(t, ok)
		assert.Equal(t, 7, n)
	})

	t.Run("rule toggles", func(t *testing.T) {
		t.Parallel()

		snap := config.NewSnapshot(nil, map[string]string{
			"ktlint_standard_no-semi":       "disabled",
			"KTLINT_STANDARD_indent":        "enabled",
			"ktlint_standard_final-newline": "sometimes",
		})
		assert.Equal(t, config.RuleStateDisabled, snap.RuleState("standard:no-semi"))
		assert.Equal(t, config.RuleStateEnabled, snap.RuleState("standard:indent"))
		assert.Equal(t, config.RuleStateDefault, snap.RuleState("standard:final-newline"))
		assert.Equal(t, config.RuleStateDefault, snap.RuleState("standard:max-line-length"))
	})
}
