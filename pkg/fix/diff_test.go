package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/kotlint/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for empty inputs", func(t *testing.T) {
		t.Parallel()

		if diff := fix.GenerateDiff("Main.kt", nil, nil); diff != nil {
			t.Error("expected nil for empty inputs")
		}
	})

	t.Run("returns nil for identical content", func(t *testing.T) {
		t.Parallel()

		content := []byte("fun main() {}\n")
		if diff := fix.GenerateDiff("Main.kt", content, content); diff != nil {
			t.Error("expected nil for identical content")
		}
	})

	t.Run("detects single line change", func(t *testing.T) {
		t.Parallel()

		original := []byte("val a = 1;\nval b = 2\n")
		modified := []byte("val a = 1\nval b = 2\n")

		diff := fix.GenerateDiff("Main.kt", original, modified)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if !diff.HasChanges() {
			t.Error("expected HasChanges() = true")
		}
		if diff.Additions != 1 || diff.Deletions != 1 {
			t.Errorf("expected +1/-1, got +%d/-%d", diff.Additions, diff.Deletions)
		}
		if !strings.Contains(diff.String(), "-val a = 1;\n+val a = 1\n") {
			t.Errorf("unexpected diff body:\n%s", diff)
		}
	})

	t.Run("detects added final newline", func(t *testing.T) {
		t.Parallel()

		diff := fix.GenerateDiff("Main.kt", []byte("fun f() {}"), []byte("fun f() {}\n"))
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if !strings.Contains(diff.String(), `\ No newline at end of file`) {
			t.Errorf("expected no-newline marker, got:\n%s", diff)
		}
	})

	t.Run("detects removed lines", func(t *testing.T) {
		t.Parallel()

		original := []byte("import a.B\nimport c.D\n\nclass X\n")
		modified := []byte("import a.B\n\nclass X\n")

		diff := fix.GenerateDiff("X.kt", original, modified)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if diff.Deletions != 1 || diff.Additions != 0 {
			t.Errorf("expected +0/-1, got +%d/-%d", diff.Additions, diff.Deletions)
		}
	})
}

func TestDiffHeaders(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("/src/Main.kt", []byte("a\n"), []byte("b\n"))
	if diff == nil {
		t.Fatal("expected non-nil diff")
	}

	if got, want := diff.GitHeader(), "diff --git a/src/Main.kt b/src/Main.kt"; got != want {
		t.Errorf("GitHeader() = %q, want %q", got, want)
	}

	lines := diff.Lines()
	if len(lines) < 2 || lines[0] != "--- a/src/Main.kt" || lines[1] != "+++ b/src/Main.kt" {
		t.Errorf("unexpected headers: %q", lines)
	}

	if !strings.HasPrefix(diff.FullString(), diff.GitHeader()+"\n--- ") {
		t.Errorf("FullString() should start with git header, got %q", diff.FullString())
	}
}

func TestNilDiff(t *testing.T) {
	t.Parallel()

	var diff *fix.Diff
	if diff.HasChanges() {
		t.Error("nil diff should have no changes")
	}
	if diff.String() != "" || diff.FullString() != "" || diff.Lines() != nil {
		t.Error("nil diff should render empty")
	}
}
