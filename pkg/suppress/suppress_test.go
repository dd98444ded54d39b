package suppress_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/cst"
	"github.com/yaklabco/kotlint/pkg/parser/kotlin"
	"github.com/yaklabco/kotlint/pkg/suppress"
)

func build(t *testing.T, src string) (*cst.Tree, *suppress.Index) {
	t.Helper()
	tree, err := kotlin.Parse(src)
	require.NoError(t, err)
	return tree, suppress.Build(tree)
}

// offsetOf returns the byte offset of the first occurrence of needle.
func offsetOf(t *testing.T, src, needle string) int {
	t.Helper()
	i := strings.Index(src, needle)
	require.GreaterOrEqual(t, i, 0, "%q not found", needle)
	return i
}

func TestLineDirective(t *testing.T) {
	t.Parallel()

	src := "val a = 1; // ktlint-disable no-semi\nval b = 2;\n"
	_, ix := build(t, src)

	assert.True(t, ix.IsSuppressedAt(offsetOf(t, src, ";"), "standard:no-semi"))
	assert.False(t, ix.IsSuppressedAt(offsetOf(t, src, ";"), "standard:no-trailing-spaces"))
	assert.False(t, ix.IsSuppressedAt(offsetOf(t, src, "val b"), "standard:no-semi"))

	directives := ix.Directives()
	require.Len(t, directives, 1)
	assert.Equal(t, suppress.TypeLine, directives[0].Type)
	assert.Equal(t, []string{"standard:no-semi"}, directives[0].Rules)
}

func TestLineDirectiveWithoutRules(t *testing.T) {
	t.Parallel()

	src := "val a = 1; // ktlint-disable\n"
	_, ix := build(t, src)

	assert.True(t, ix.IsSuppressedAt(0, "standard:no-semi"))
	assert.True(t, ix.IsSuppressedAt(0, "custom:anything"))
}

func TestBlockDirectives(t *testing.T) {
	t.Parallel()

	src := "val a = 1\n" +
		"/* ktlint-disable no-semi, standard:final-newline */\n" +
		"val b = 2;\n" +
		"/* ktlint-enable no-semi, standard:final-newline */\n" +
		"val c = 3;\n"
	_, ix := build(t, src)

	inside := offsetOf(t, src, "val b")
	after := offsetOf(t, src, "val c")

	assert.False(t, ix.IsSuppressedAt(0, "standard:no-semi"))
	assert.True(t, ix.IsSuppressedAt(inside, "standard:no-semi"))
	assert.True(t, ix.IsSuppressedAt(inside, "standard:final-newline"))
	assert.False(t, ix.IsSuppressedAt(inside, "standard:indent"))
	assert.False(t, ix.IsSuppressedAt(after, "standard:no-semi"))

	types := []suppress.DirectiveType{}
	for _, d := range ix.Directives() {
		types = append(types, d.Type)
	}
	assert.Equal(t, []suppress.DirectiveType{suppress.TypeBlockDisable, suppress.TypeBlockEnable}, types)
}

func TestUnclosedBlockRunsToEndOfFile(t *testing.T) {
	t.Parallel()

	src := "/* ktlint-disable */\nval a = 1;\n"
	_, ix := build(t, src)

	assert.True(t, ix.IsSuppressedAt(offsetOf(t, src, ";"), "standard:no-semi"))
	assert.True(t, ix.IsSuppressedAt(len(src)-1, "standard:final-newline"))
}

func TestUnmatchedEnableIsIgnored(t *testing.T) {
	t.Parallel()

	src := "/* ktlint-disable no-semi */\n/* ktlint-enable indent */\nval a = 1;\n"
	_, ix := build(t, src)

	assert.True(t, ix.IsSuppressedAt(offsetOf(t, src, ";"), "standard:no-semi"))
}

func TestSuppressAnnotation(t *testing.T) {
	t.Parallel()

	src := "@Suppress(\"ktlint:standard:no-semi\")\nfun f() {\n    a();\n}\n\nfun g() {\n    b();\n}\n"
	tree, ix := build(t, src)

	semis := cst.FindByKind(tree.Root(), cst.KindSemicolon)
	require.Len(t, semis, 2)

	assert.True(t, ix.IsSuppressed(semis[0], "standard:no-semi"))
	assert.False(t, ix.IsSuppressed(semis[0], "standard:indent"))
	assert.False(t, ix.IsSuppressed(semis[1], "standard:no-semi"))
}

func TestSuppressAllAnnotation(t *testing.T) {
	t.Parallel()

	src := "@Suppress(\"ktlint\", \"unused\")\nclass A {\n    val b = 1;\n}\n"
	tree, ix := build(t, src)

	semi := cst.FindByKind(tree.Root(), cst.KindSemicolon)
	require.Len(t, semi, 1)
	assert.True(t, ix.IsSuppressed(semi[0], "standard:no-semi"))
	assert.True(t, ix.IsSuppressed(semi[0], "custom:rule"))
}

func TestUnrelatedAnnotation(t *testing.T) {
	t.Parallel()

	src := "@Suppress(\"unused\")\nfun f() { a(); }\n"
	_, ix := build(t, src)

	assert.Empty(t, ix.Directives())
	assert.False(t, ix.IsSuppressedAt(offsetOf(t, src, ";"), "standard:no-semi"))
}

func TestSuppressionFollowsEdits(t *testing.T) {
	t.Parallel()

	src := "val x = 0\nval a = 1; // ktlint-disable no-semi\n"
	tree, ix := build(t, src)

	// Insert a line at the top: the directive moves with its comment.
	first := tree.Root().FirstLeaf()
	require.NoError(t, tree.InsertBefore(first, tree.NewLeaf(cst.KindWhitespace, "\n")))

	text := tree.Text()
	assert.True(t, ix.IsSuppressedAt(strings.Index(text, ";"), "standard:no-semi"))
	assert.False(t, ix.IsSuppressedAt(strings.Index(text, "val x"), "standard:no-semi"))
}

func TestNilIndex(t *testing.T) {
	t.Parallel()

	var ix *suppress.Index
	assert.False(t, ix.IsSuppressedAt(0, "standard:no-semi"))
	assert.False(t, ix.HasBacktickIdentifier(1))
}

func TestNormalizeRuleID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "standard:no-semi", suppress.NormalizeRuleID("no-semi"))
	assert.Equal(t, "standard:no-semi", suppress.NormalizeRuleID(" no-semi "))
	assert.Equal(t, "custom:rule", suppress.NormalizeRuleID("custom:rule"))
	assert.Equal(t, "", suppress.NormalizeRuleID(""))
}

func TestBacktickIdentifiers(t *testing.T) {
	t.Parallel()

	src := "fun `does a thing`() {}\nval s = \"`not an identifier`\"\n"
	tree, ix := build(t, src)

	assert.True(t, ix.HasBacktickIdentifier(1))
	assert.False(t, ix.HasBacktickIdentifier(2))
	assert.False(t, ix.HasBacktickIdentifier(3))

	ids := cst.FindByKind(tree.Root(), cst.KindIdentifier)
	require.NotEmpty(t, ids)
	assert.True(t, suppress.IsBacktickIdentifier(ids[0]))
	assert.Equal(t, "does a thing", suppress.Unquote(ids[0].Text()))
	assert.Equal(t, "plain", suppress.Unquote("plain"))
}

func TestDirectiveTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "line", suppress.TypeLine.String())
	assert.Equal(t, "block-disable", suppress.TypeBlockDisable.String())
	assert.Equal(t, "block-enable", suppress.TypeBlockEnable.String())
	assert.Equal(t, "annotation", suppress.TypeAnnotation.String())
	assert.Equal(t, "unknown", suppress.DirectiveType(42).String())
}
