package cli_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/internal/cli"
)

const (
	withSemicolon = "val a = 1;\n"
	cleanSource   = "val a = 1\n"
)

type runOutput struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an empty explicit config so the
// result does not depend on configuration files around the test.
func execute(t *testing.T, stdin string, args ...string) runOutput {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "kotlint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("experimental: false\n"), 0o644))
	return executeWithConfig(t, cfgFile, stdin, args...)
}

func executeWithConfig(t *testing.T, cfgFile, stdin string, args ...string) runOutput {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	full := append([]string{args[0], "--config", cfgFile, "--color", "never"}, args[1:]...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return runOutput{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_LintReportsViolations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", withSemicolon)

	out := execute(t, "", "lint", "--no-context", file)

	require.Error(t, out.err)
	assert.True(t, errors.Is(out.err, cli.ErrLintIssuesFound))
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(out.err))
	assert.Contains(t, out.stdout, "A.kt:1:10: Unnecessary semicolon (standard:no-semi)")
	assert.Contains(t, out.stdout, "1 issue (1 error) in 1 file")
}

func TestIntegration_LintCleanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", cleanSource)

	out := execute(t, "", "lint", file)

	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "No issues found")
}

func TestIntegration_LintParseFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "Broken.kt", "fun f() {\n")

	out := execute(t, "", "lint", file)

	require.Error(t, out.err)
	assert.True(t, errors.Is(out.err, cli.ErrFilesFailed))
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(out.err))
	assert.Contains(t, out.stdout, "Broken.kt")
}

func TestIntegration_Relative(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "src/A.kt", withSemicolon)

	absolute := execute(t, "", "lint", "--no-context", file)
	assert.Contains(t, absolute.stdout, file+":1:10:")

	// Relative paths are computed against the process working directory,
	// which is this package's directory during tests.
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, file)
	require.NoError(t, err)

	relative := execute(t, "", "lint", "--no-context", "--relative", file)
	assert.Contains(t, relative.stdout, filepath.ToSlash(rel)+":1:10:")
}

func TestIntegration_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", withSemicolon)
	cfgFile := writeSource(t, dir, "kotlint.yml", "rules:\n  no-semi:\n    enabled: false\n")

	out := executeWithConfig(t, cfgFile, "", "lint", file)

	require.NoError(t, out.err)
	assert.NotContains(t, out.stdout, "standard:no-semi")
}

func TestIntegration_DisableFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", withSemicolon)

	out := execute(t, "", "lint", "--disable", "standard:no-semi", file)

	require.NoError(t, out.err)
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", cleanSource)
	cfgFile := writeSource(t, dir, "kotlint.yml", "code_style: eclipse\n")

	out := executeWithConfig(t, cfgFile, "", "lint", file)

	require.Error(t, out.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(out.err))
	assert.Contains(t, out.err.Error(), "eclipse")
}

func TestIntegration_EditorConfigOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", "val greeting = \"hello, world\"\n")

	out := execute(t, "", "lint", "--no-context", "--editorconfig-override", "max_line_length=20", file)

	require.Error(t, out.err)
	assert.Contains(t, out.stdout, "Exceeded max line length (20) (standard:max-line-length)")

	out = execute(t, "", "lint", "--editorconfig-override", "max_line_length=80", file)
	require.NoError(t, out.err)
}

func TestIntegration_EditorConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, ".editorconfig", "root = true\n\n[*.{kt,kts}]\nmax_line_length = 20\n")
	file := writeSource(t, dir, "A.kt", "val greeting = \"hello, world\"\n")

	out := execute(t, "", "lint", "--no-context", file)

	require.Error(t, out.err)
	assert.Contains(t, out.stdout, "Exceeded max line length (20)")
}

func TestIntegration_Reporters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", withSemicolon)

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out := execute(t, "", "lint", "--reporter", "json", file)
		require.Error(t, out.err)

		var report struct {
			Files []struct {
				File   string `json:"file"`
				Errors []struct {
					Rule string `json:"rule"`
					Line int    `json:"line"`
				} `json:"errors"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal([]byte(out.stdout), &report))
		require.Len(t, report.Files, 1)
		require.Len(t, report.Files[0].Errors, 1)
		assert.Equal(t, "standard:no-semi", report.Files[0].Errors[0].Rule)
	})

	t.Run("checkstyle", func(t *testing.T) {
		t.Parallel()

		out := execute(t, "", "lint", "--reporter", "checkstyle", file)
		require.Error(t, out.err)

		var report struct {
			Files []struct {
				Name   string `xml:"name,attr"`
				Errors []struct {
					Source string `xml:"source,attr"`
				} `xml:"error"`
			} `xml:"file"`
		}
		require.NoError(t, xml.Unmarshal([]byte(out.stdout), &report))
		require.Len(t, report.Files, 1)
		assert.Equal(t, "standard:no-semi", report.Files[0].Errors[0].Source)
	})

	t.Run("grouped plain", func(t *testing.T) {
		t.Parallel()

		out := execute(t, "", "lint", "--no-context", "--reporter", "plain?group_by_file", file)
		require.Error(t, out.err)
		assert.Contains(t, out.stdout, "  1:10: Unnecessary semicolon (standard:no-semi)")
	})

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		out := execute(t, "", "lint", "--reporter", "summary", file)
		require.Error(t, out.err)
		assert.Contains(t, out.stdout, "standard:no-semi")
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		out := execute(t, "", "lint", "--reporter", "html", file)
		require.Error(t, out.err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(out.err))
	})
}

func TestIntegration_Format(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", "val a = 1;   \n")

	out := execute(t, "", "format", file)

	require.NoError(t, out.err)
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, cleanSource, string(content))
}

func TestIntegration_FormatDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSource(t, dir, "A.kt", withSemicolon)

	out := execute(t, "", "format", "--dry-run", file)

	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "-val a = 1;")
	assert.Contains(t, out.stdout, "+val a = 1")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, withSemicolon, string(content), "dry-run must not write")
}

func TestIntegration_LintStdin(t *testing.T) {
	t.Parallel()

	out := execute(t, withSemicolon, "lint", "--no-context", "--stdin")

	require.Error(t, out.err)
	assert.Contains(t, out.stdout, "<stdin>:1:10: Unnecessary semicolon (standard:no-semi)")
}

func TestIntegration_LintStdinPath(t *testing.T) {
	t.Parallel()

	out := execute(t, withSemicolon, "lint", "--no-context", "--stdin", "--stdin-path", "src/Main.kt")

	require.Error(t, out.err)
	assert.Contains(t, out.stdout, "src/Main.kt:1:10:")
}

func TestIntegration_FormatStdin(t *testing.T) {
	t.Parallel()

	out := execute(t, "val a = 1;   \n", "format", "--stdin")

	require.NoError(t, out.err)
	assert.Equal(t, cleanSource, out.stdout)
	assert.Contains(t, out.stderr, "corrected")
}

func TestIntegration_StdinUsageErrors(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lint", "--stdin", "A.kt")
	require.Error(t, out.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(out.err))

	out = execute(t, "", "lint", "--stdin-path", "A.kt")
	require.Error(t, out.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(out.err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, ".kotlint.yml")

	out := execute(t, "", "init", "--code-style", "android_studio", "--output", target)
	require.NoError(t, out.err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "code_style: android_studio")

	// The generated file must load as a configuration.
	lintOut := executeWithConfig(t, target, "", "lint", writeSource(t, dir, "A.kt", cleanSource))
	require.NoError(t, lintOut.err)

	out = execute(t, "", "init", "--output", target)
	require.Error(t, out.err)
	assert.Contains(t, out.err.Error(), "already exists")

	out = execute(t, "", "init", "--full", "--force", "--output", target)
	require.NoError(t, out.err)
	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "standard:no-semi:")
}

func TestIntegration_InitUnknownCodeStyle(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "init", "--code-style", "eclipse", "--output", filepath.Join(t.TempDir(), "k.yml"))
	require.Error(t, out.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(out.err))
}

func TestIntegration_RulesJSON(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "rules", "--format", "json")
	require.NoError(t, out.err)

	var rules []struct {
		ID          string `json:"id"`
		Autocorrect bool   `json:"autocorrect"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &rules))

	var found bool
	for _, rule := range rules {
		if rule.ID == "standard:no-semi" {
			found = true
			assert.True(t, rule.Autocorrect)
		}
	}
	assert.True(t, found, "standard:no-semi missing from %s", out.stdout)
}
