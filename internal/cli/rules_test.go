package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/lint"
	"github.com/yaklabco/kotlint/pkg/lint/rules"
)

func testRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return registry
}

func TestCollectRules(t *testing.T) {
	t.Parallel()

	infos, err := collectRules(testRegistry(), &rulesFlags{})
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	byID := make(map[string]ruleInfo, len(infos))
	for i, info := range infos {
		if i > 0 {
			assert.Less(t, infos[i-1].ID, info.ID, "rules must be sorted")
		}
		assert.False(t, info.Experimental, "experimental rules are hidden by default")
		byID[info.ID] = info
	}

	semi, ok := byID["standard:no-semi"]
	require.True(t, ok)
	assert.True(t, semi.CanAutocorrect)
	assert.Equal(t, string(config.SeverityError), semi.Severity)

	maxLen, ok := byID["standard:max-line-length"]
	require.True(t, ok)
	assert.Contains(t, maxLen.Properties, "max_line_length")
}

func TestCollectRules_CodeStyle(t *testing.T) {
	t.Parallel()

	_, err := collectRules(testRegistry(), &rulesFlags{codeStyle: "eclipse"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)

	pack := rules.PackByName("android_studio")
	require.NotNil(t, pack)

	infos, err := collectRules(testRegistry(), &rulesFlags{codeStyle: pack.Name})
	require.NoError(t, err)
	for _, info := range infos {
		rc, ok := pack.Rules[info.ID]
		if !ok || rc.Enabled == nil {
			continue
		}
		assert.Equal(t, *rc.Enabled, info.Enabled, info.ID)
	}
}

func TestOutputRulesJSON_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTemplateRules(t *testing.T) {
	t.Parallel()

	registry := testRegistry()
	infos := templateRules(registry)
	assert.Len(t, infos, len(registry.Rules()))
}

func TestSelectReporter_DryRunDefaultsToDiff(t *testing.T) {
	t.Parallel()

	cmd := newFormatCommand()
	cfg := config.NewConfig()
	cfg.Format = true
	cfg.DryRun = true

	format, grouped, err := selectReporter(cmd, &lintFlags{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "diff", string(format))
	assert.False(t, grouped)

	require.NoError(t, cmd.Flags().Set("reporter", "plain?group_by_file"))
	flags := &lintFlags{reporter: "plain?group_by_file"}
	format, grouped, err = selectReporter(cmd, flags, cfg)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(format))
	assert.True(t, grouped)
}
