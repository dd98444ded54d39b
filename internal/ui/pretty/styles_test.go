package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/internal/ui/pretty"
)

func TestNewStyles_ColorDisabledIsPlain(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, style := range map[string]interface{ Render(...string) string }{
		"Error":     styles.Error,
		"FilePath":  styles.FilePath,
		"RuleID":    styles.RuleID,
		"Corrected": styles.Corrected,
		"DiffAdd":   styles.DiffAdd,
		"Bold":      styles.Bold,
	} {
		assert.Equal(t, "text", style.Render("text"), name)
	}
}

func TestNewStyles_ColorEnabledKeepsText(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss drops ANSI codes without a TTY, so only the text is stable.
	assert.Contains(t, styles.Error.Render("x"), "x")
	assert.Contains(t, styles.TableHeader.Render("x"), "x")
	assert.Contains(t, styles.Caret.Render("^"), "^")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode behaves like auto")
	assert.False(t, pretty.IsColorEnabled("sometimes", &buf), "unknown mode behaves like auto")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "an explicit mode wins over NO_COLOR")
}
