package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/config"
)

func newTestPipeline(t *testing.T, providers ...Provider) *Pipeline {
	t.Helper()
	p, err := NewPipeline(newTestEngine(providers...), nil)
	require.NoError(t, err)
	return p
}

func formatOptions(dryRun bool) PipelineOptions {
	opts := DefaultPipelineOptions()
	opts.Mode = ModeFormat
	opts.DryRun = dryRun
	return opts
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t, semiProvider)

	t.Run("lint leaves content alone", func(t *testing.T) {
		t.Parallel()

		result, err := p.ProcessContent(context.Background(), "A.kt", []byte("val a = 1;\n"), nil, DefaultPipelineOptions())
		require.NoError(t, err)
		assert.False(t, result.Modified)
		assert.Nil(t, result.ModifiedContent)
		assert.Equal(t, "issues found", result.Summary())
	})

	t.Run("dry run produces a diff", func(t *testing.T) {
		t.Parallel()

		result, err := p.ProcessContent(context.Background(), "A.kt", []byte("val a = 1;\n"), nil, formatOptions(true))
		require.NoError(t, err)
		assert.True(t, result.Modified)
		assert.Equal(t, "val a = 1\n", string(result.ModifiedContent))
		require.NotNil(t, result.Diff)
		assert.Contains(t, result.Diff.String(), "-val a = 1;")
		assert.Equal(t, "changes pending", result.Summary())
	})

	t.Run("clean file", func(t *testing.T) {
		t.Parallel()

		result, err := p.ProcessContent(context.Background(), "A.kt", []byte("val a = 1\n"), nil, formatOptions(false))
		require.NoError(t, err)
		assert.False(t, result.Modified)
		assert.Equal(t, "ok", result.Summary())
	})
}

func TestPipeline_ProcessFile(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t, semiProvider)

	t.Run("format writes the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.kt")
		require.NoError(t, os.WriteFile(path, []byte("val a = 1;\n"), 0o600))

		result, err := p.ProcessFile(context.Background(), path, nil, formatOptions(false))
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.Equal(t, "formatted", result.Summary())

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "val a = 1\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("dry run does not write", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.kt")
		require.NoError(t, os.WriteFile(path, []byte("val a = 1;\n"), 0o644))

		result, err := p.ProcessFile(context.Background(), path, nil, formatOptions(true))
		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.NotNil(t, result.Diff)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "val a = 1;\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.kt"), nil, DefaultPipelineOptions())
		require.ErrorIs(t, err, ErrFileNotFound)
		assert.True(t, IsPipelineError(err))
	})

	t.Run("parse failure", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Bad.kt")
		require.NoError(t, os.WriteFile(path, []byte("val s = \"abc\n"), 0o644))

		_, err := p.ProcessFile(context.Background(), path, nil, DefaultPipelineOptions())
		require.ErrorIs(t, err, ErrParseFailure)
	})
}

func TestNewPipeline_CycleIsFatal(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(
		provide("test:x", WithRunAfter("test:y", false)),
		provide("test:y", WithRunAfter("test:x", false)),
	)
	_, err := NewPipeline(engine, nil)
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Format = true
	cfg.DryRun = true

	opts := PipelineOptionsFromConfig(cfg)
	assert.Equal(t, ModeFormat, opts.Mode)
	assert.True(t, opts.DryRun)
	assert.Equal(t, ModeLint, PipelineOptionsFromConfig(nil).Mode)
}
