package cst

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count characters, and a tab
// is a single character.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// positionIndex caches leaf offsets for one tree revision.
type positionIndex struct {
	revision   uint64
	text       string
	offsets    []int
	lineStarts []int
}

func (t *Tree) ensureIndex() *positionIndex {
	if t.index != nil && t.index.revision == t.revision {
		return t.index
	}

	idx := &positionIndex{
		revision: t.revision,
		offsets:  make([]int, len(t.slots)),
	}
	for i := range idx.offsets {
		idx.offsets[i] = -1
	}

	var sb strings.Builder
	if t.root != NoNode {
		t.indexNode(t.root, &sb, idx.offsets)
	}
	idx.text = sb.String()

	idx.lineStarts = []int{0}
	for i := 0; i < len(idx.text); i++ {
		if idx.text[i] == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}

	t.index = idx
	return idx
}

func (t *Tree) indexNode(id NodeID, sb *strings.Builder, offsets []int) {
	offsets[id] = sb.Len()
	s := &t.slots[id]
	if s.kind.IsLeaf() {
		sb.WriteString(s.text)
		return
	}
	for c := s.firstChild; c != NoNode; c = t.slots[c].next {
		t.indexNode(c, sb, offsets)
	}
}

// Offset returns the byte offset of the node's first character in the
// current tree text, or -1 if the node is not attached to the root.
func (n Node) Offset() int {
	if !n.Valid() {
		return -1
	}
	idx := n.tree.ensureIndex()
	if int(n.id) >= len(idx.offsets) {
		return -1
	}
	return idx.offsets[n.id]
}

// EndOffset returns the byte offset just past the node's last character.
func (n Node) EndOffset() int {
	off := n.Offset()
	if off < 0 {
		return -1
	}
	return off + n.Len()
}

// Position returns the 1-based line and column where the node starts. A
// detached or stale node yields the zero Position.
func (n Node) Position() Position {
	off := n.Offset()
	if off < 0 {
		return Position{}
	}
	return n.tree.PositionAt(off)
}

// PositionAt converts a byte offset in the current text to a position.
// Offsets past the end clamp to the end of the text.
func (t *Tree) PositionAt(offset int) Position {
	idx := t.ensureIndex()
	if offset < 0 {
		return Position{}
	}
	if offset > len(idx.text) {
		offset = len(idx.text)
	}

	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	}) - 1

	start := idx.lineStarts[line]
	column := utf8.RuneCountInString(idx.text[start:offset]) + 1
	return Position{Line: line + 1, Column: column}
}

// OffsetAt converts a position back to a byte offset, or -1 if it lies
// outside the text.
func (t *Tree) OffsetAt(pos Position) int {
	idx := t.ensureIndex()
	if pos.Line < 1 || pos.Line > len(idx.lineStarts) || pos.Column < 1 {
		return -1
	}
	off := idx.lineStarts[pos.Line-1]
	for col := 1; col < pos.Column; col++ {
		if off >= len(idx.text) || idx.text[off] == '\n' {
			return -1
		}
		_, size := utf8.DecodeRuneInString(idx.text[off:])
		off += size
	}
	return off
}

// LineCount returns the number of lines in the current text. A trailing
// newline starts an empty final line.
func (t *Tree) LineCount() int {
	return len(t.ensureIndex().lineStarts)
}

// Line returns the text of the 1-based line without its terminator.
func (t *Tree) Line(line int) string {
	idx := t.ensureIndex()
	if line < 1 || line > len(idx.lineStarts) {
		return ""
	}
	start := idx.lineStarts[line-1]
	end := len(idx.text)
	if line < len(idx.lineStarts) {
		end = idx.lineStarts[line] - 1
	}
	return strings.TrimSuffix(idx.text[start:end], "\r")
}

// LeafAt returns the leaf covering the byte offset.
func (t *Tree) LeafAt(offset int) Node {
	var found Node
	_ = Walk(t.Root(), func(n Node) error {
		if found.Valid() {
			return ErrSkipChildren
		}
		start := n.Offset()
		end := start + n.Len()
		if offset < start || offset >= end {
			return ErrSkipChildren
		}
		if n.IsLeaf() {
			found = n
		}
		return nil
	})
	return found
}
