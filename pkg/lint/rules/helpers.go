package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/kotlint/pkg/config"
	"github.com/yaklabco/kotlint/pkg/cst"
)

// newlineCount returns the number of line feeds in s.
func newlineCount(s string) int {
	return strings.Count(s, "\n")
}

// lastLineOf returns the text after the final line feed of s, which for a
// whitespace leaf is the indentation of the following line.
func lastLineOf(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// lineIndent returns the leading spaces and tabs of a 1-based line.
func lineIndent(tree *cst.Tree, line int) string {
	text := tree.Line(line)
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

// indentUnit returns one level of indentation as configured for the file.
func indentUnit(props *config.Snapshot) string {
	if style, _ := props.Enum(config.IndentStyleProperty); style == config.IndentTab {
		return "\t"
	}
	size, ok := props.Int(config.IndentSizeProperty)
	if !ok || size <= 0 {
		size = 4
	}
	return strings.Repeat(" ", size)
}

// maxLineLength returns the configured limit, or false when there is none.
func maxLineLength(props *config.Snapshot) (int, bool) {
	limit, ok := props.Int(config.MaxLineLengthProperty)
	if !ok || limit <= 0 {
		return 0, false
	}
	return limit, true
}

// columns returns the display length of a line. Every character, tabs
// included, counts as one column.
func columns(s string) int {
	return utf8.RuneCountInString(s)
}

// lineOf returns the 1-based line a node starts on.
func lineOf(n cst.Node) int {
	return n.Position().Line
}

// precedingWhitespace returns the whitespace sibling directly before n.
func precedingWhitespace(n cst.Node) cst.Node {
	if prev := n.Prev(); prev.Is(cst.KindWhitespace) {
		return prev
	}
	return cst.Node{}
}

// startsOnNewLine reports whether a line break separates n from the
// preceding sibling.
func startsOnNewLine(n cst.Node) bool {
	ws := precedingWhitespace(n)
	return ws.Valid() && strings.Contains(ws.Text(), "\n")
}
