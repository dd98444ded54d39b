package editorconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/editorconfig"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".editorconfig"), `root = true

[*]
indent_size = 2
insert_final_newline = true

[*.{kt,kts}]
max_line_length = 100
`)
	writeFile(t, filepath.Join(root, "sub", ".editorconfig"), `[*.kt]
max_line_length = 80
indent_size = lots
`)
	writeFile(t, filepath.Join(root, "off", ".editorconfig"), `[*.kt]
max_line_length = off
`)
	return root
}

func TestResolver_ResolveFile(t *testing.T) {
	t.Parallel()

	root := setupTree(t)
	props := config.CoreProperties()

	t.Run("root section applies", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(nil)
		snap, err := r.ResolveFile(filepath.Join(root, "Main.kt"), props)
		require.NoError(t, err)

		n, ok := snap.Int(config.MaxLineLengthProperty)
		assert.True(t, ok)
		assert.Equal(t, 100, n)

		size, _ := snap.Int(config.IndentSizeProperty)
		assert.Equal(t, 2, size)
	})

	t.Run("nearest directory wins", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(nil)
		snap, err := r.ResolveFile(filepath.Join(root, "sub", "Main.kt"), props)
		require.NoError(t, err)

		n, _ := snap.Int(config.MaxLineLengthProperty)
		assert.Equal(t, 80, n)
	})

	t.Run("malformed value falls back to default", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(nil)
		snap, err := r.ResolveFile(filepath.Join(root, "sub", "Main.kt"), props)
		require.NoError(t, err)

		size, ok := snap.Int(config.IndentSizeProperty)
		assert.True(t, ok)
		assert.Equal(t, 4, size)
		require.Len(t, snap.Warnings(), 1)
		assert.Equal(t, "indent_size", snap.Warnings()[0].Property)
	})

	t.Run("explicit override wins over files", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(map[string]string{"MAX_LINE_LENGTH": "120"})
		snap, err := r.ResolveFile(filepath.Join(root, "sub", "Main.kt"), props)
		require.NoError(t, err)

		n, _ := snap.Int(config.MaxLineLengthProperty)
		assert.Equal(t, 120, n)
	})

	t.Run("off disables max line length", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(nil)
		snap, err := r.ResolveFile(filepath.Join(root, "off", "Main.kt"), props)
		require.NoError(t, err)

		_, ok := snap.Int(config.MaxLineLengthProperty)
		assert.False(t, ok)
	})

	t.Run("section globs respect extension", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(nil)
		snap, err := r.ResolveFile(filepath.Join(root, "sub", "build.gradle.kts"), props)
		require.NoError(t, err)

		n, _ := snap.Int(config.MaxLineLengthProperty)
		assert.Equal(t, 100, n, "[*.kt] in sub does not match .kts")
	})

	t.Run("without files only defaults and overrides", func(t *testing.T) {
		t.Parallel()

		r := editorconfig.NewResolver(map[string]string{"indent_size": "3"}, editorconfig.WithoutFiles())
		snap, err := r.ResolveFile(filepath.Join(root, "Main.kt"), props)
		require.NoError(t, err)

		_, ok := snap.Int(config.MaxLineLengthProperty)
		assert.False(t, ok)
		size, _ := snap.Int(config.IndentSizeProperty)
		assert.Equal(t, 3, size)
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	root := setupTree(t)
	r := editorconfig.NewResolver(nil)

	v, err := r.Resolve(config.MaxLineLengthProperty, filepath.Join(root, "Main.kts"))
	require.NoError(t, err)
	assert.Equal(t, config.Value{Type: config.TypeInt, Int: 100}, v)
}
