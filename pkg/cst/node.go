package cst

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// NodeID addresses a slot in a Tree's node arena.
type NodeID uint32

// NoNode is the zero handle. Slot 0 of every arena is reserved for it.
const NoNode NodeID = 0

type slot struct {
	kind Kind
	text string

	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	prev       NodeID
	next       NodeID

	// gen is bumped when the node is removed from the tree so that
	// outstanding handles become stale.
	gen uint32

	data map[string]any
}

// Tree is an arena-backed concrete syntax tree. Every character of the
// source lives in exactly one leaf, so concatenating leaf texts in document
// order reproduces the source.
type Tree struct {
	slots    []slot
	root     NodeID
	revision uint64
	index    *positionIndex
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{slots: make([]slot, 1, 256)}
}

// Node is a handle to a node in a Tree. The zero value is the absent node.
// A handle captures the generation of its slot; once the node is removed
// the handle is stale and every mutation through it fails.
type Node struct {
	tree *Tree
	id   NodeID
	gen  uint32
}

func (t *Tree) alloc(kind Kind, text string) Node {
	n, err := safecast.Conv[uint32](len(t.slots))
	if err != nil {
		panic(fmt.Errorf("cst: arena overflow: %w", err))
	}
	t.slots = append(t.slots, slot{kind: kind, text: text})
	return Node{tree: t, id: NodeID(n)}
}

// NewLeaf allocates a detached leaf node.
func (t *Tree) NewLeaf(kind Kind, text string) Node {
	if !kind.IsLeaf() {
		panic(fmt.Sprintf("cst: NewLeaf with composite kind %s", kind))
	}
	return t.alloc(kind, text)
}

// NewComposite allocates a detached composite node with the given children.
func (t *Tree) NewComposite(kind Kind, children ...Node) Node {
	if kind.IsLeaf() {
		panic(fmt.Sprintf("cst: NewComposite with leaf kind %s", kind))
	}
	n := t.alloc(kind, "")
	for _, child := range children {
		if err := t.AppendChild(n, child); err != nil {
			panic(err)
		}
	}
	return n
}

// SetRoot installs n as the tree root. The node must be detached.
func (t *Tree) SetRoot(n Node) error {
	if err := t.checkDetached(n, "SetRoot"); err != nil {
		return err
	}
	t.root = n.id
	t.touch()
	return nil
}

// Root returns the root node, or the zero Node for an empty tree.
func (t *Tree) Root() Node {
	if t.root == NoNode {
		return Node{}
	}
	return t.handle(t.root)
}

// Revision increases on every structural or textual mutation.
func (t *Tree) Revision() uint64 {
	return t.revision
}

// Text reconstructs the full source text.
func (t *Tree) Text() string {
	return t.ensureIndex().text
}

func (t *Tree) handle(id NodeID) Node {
	if id == NoNode {
		return Node{}
	}
	return Node{tree: t, id: id, gen: t.slots[id].gen}
}

func (t *Tree) touch() {
	t.revision++
}

// IsZero reports whether n is the absent node.
func (n Node) IsZero() bool {
	return n.tree == nil || n.id == NoNode
}

// Stale reports whether n was removed from its tree after the handle was taken.
func (n Node) Stale() bool {
	return !n.IsZero() && n.tree.slots[n.id].gen != n.gen
}

// Valid reports whether n refers to a live node.
func (n Node) Valid() bool {
	return !n.IsZero() && !n.Stale()
}

// ID returns the arena index.
func (n Node) ID() NodeID {
	return n.id
}

// Tree returns the tree owning the node.
func (n Node) Tree() *Tree {
	return n.tree
}

func (n Node) slot() *slot {
	if !n.Valid() {
		return nil
	}
	return &n.tree.slots[n.id]
}

// Kind returns the node kind, or KindInvalid for absent or stale nodes.
func (n Node) Kind() Kind {
	if s := n.slot(); s != nil {
		return s.kind
	}
	return KindInvalid
}

// Is reports whether the node has any of the given kinds.
func (n Node) Is(kinds ...Kind) bool {
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool {
	return n.Kind().IsLeaf()
}

// Text returns the leaf text, or the concatenated text of all leaves below a
// composite node.
func (n Node) Text() string {
	s := n.slot()
	if s == nil {
		return ""
	}
	if s.kind.IsLeaf() {
		return s.text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n Node) writeText(sb *strings.Builder) {
	s := &n.tree.slots[n.id]
	if s.kind.IsLeaf() {
		sb.WriteString(s.text)
		return
	}
	for c := s.firstChild; c != NoNode; c = n.tree.slots[c].next {
		n.tree.handle(c).writeText(sb)
	}
}

// Len returns the length of Text in bytes.
func (n Node) Len() int {
	s := n.slot()
	if s == nil {
		return 0
	}
	if s.kind.IsLeaf() {
		return len(s.text)
	}
	total := 0
	for c := n.FirstChild(); !c.IsZero(); c = c.Next() {
		total += c.Len()
	}
	return total
}

// Parent returns the parent node.
func (n Node) Parent() Node {
	if s := n.slot(); s != nil {
		return n.tree.handle(s.parent)
	}
	return Node{}
}

// FirstChild returns the first child of a composite node.
func (n Node) FirstChild() Node {
	if s := n.slot(); s != nil {
		return n.tree.handle(s.firstChild)
	}
	return Node{}
}

// LastChild returns the last child of a composite node.
func (n Node) LastChild() Node {
	if s := n.slot(); s != nil {
		return n.tree.handle(s.lastChild)
	}
	return Node{}
}

// Next returns the following sibling.
func (n Node) Next() Node {
	if s := n.slot(); s != nil {
		return n.tree.handle(s.next)
	}
	return Node{}
}

// Prev returns the preceding sibling.
func (n Node) Prev() Node {
	if s := n.slot(); s != nil {
		return n.tree.handle(s.prev)
	}
	return Node{}
}

// Children returns a snapshot of the direct children.
func (n Node) Children() []Node {
	var out []Node
	for c := n.FirstChild(); !c.IsZero(); c = c.Next() {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int {
	count := 0
	for c := n.FirstChild(); !c.IsZero(); c = c.Next() {
		count++
	}
	return count
}

// ChildOfKind returns the first direct child of the given kind.
func (n Node) ChildOfKind(kind Kind) Node {
	for c := n.FirstChild(); !c.IsZero(); c = c.Next() {
		if c.Kind() == kind {
			return c
		}
	}
	return Node{}
}

// FirstLeaf returns the first leaf in document order at or below n.
// Composites without leaves, such as an empty import list, are skipped.
func (n Node) FirstLeaf() Node {
	if !n.Valid() || n.IsLeaf() {
		return n
	}
	for c := n.FirstChild(); !c.IsZero(); c = c.Next() {
		if leaf := c.FirstLeaf(); !leaf.IsZero() {
			return leaf
		}
	}
	return Node{}
}

// LastLeaf returns the last leaf in document order at or below n.
func (n Node) LastLeaf() Node {
	if !n.Valid() || n.IsLeaf() {
		return n
	}
	for c := n.LastChild(); !c.IsZero(); c = c.Prev() {
		if leaf := c.LastLeaf(); !leaf.IsZero() {
			return leaf
		}
	}
	return Node{}
}

// NextLeaf returns the leaf following n in document order.
func (n Node) NextLeaf() Node {
	for cur := n; cur.Valid(); cur = cur.Parent() {
		for sib := cur.Next(); !sib.IsZero(); sib = sib.Next() {
			if leaf := sib.FirstLeaf(); !leaf.IsZero() {
				return leaf
			}
		}
	}
	return Node{}
}

// PrevLeaf returns the leaf preceding n in document order.
func (n Node) PrevLeaf() Node {
	for cur := n; cur.Valid(); cur = cur.Parent() {
		for sib := cur.Prev(); !sib.IsZero(); sib = sib.Prev() {
			if leaf := sib.LastLeaf(); !leaf.IsZero() {
				return leaf
			}
		}
	}
	return Node{}
}

// NextCodeSibling returns the next sibling that is not whitespace or a comment.
func (n Node) NextCodeSibling() Node {
	for sib := n.Next(); !sib.IsZero(); sib = sib.Next() {
		if !sib.Kind().IsTrivia() {
			return sib
		}
	}
	return Node{}
}

// PrevCodeSibling returns the previous sibling that is not whitespace or a comment.
func (n Node) PrevCodeSibling() Node {
	for sib := n.Prev(); !sib.IsZero(); sib = sib.Prev() {
		if !sib.Kind().IsTrivia() {
			return sib
		}
	}
	return Node{}
}

// Ancestor returns the closest ancestor of the given kind.
func (n Node) Ancestor(kind Kind) Node {
	for cur := n.Parent(); !cur.IsZero(); cur = cur.Parent() {
		if cur.Kind() == kind {
			return cur
		}
	}
	return Node{}
}

// Contains reports whether other is n or a descendant of n.
func (n Node) Contains(other Node) bool {
	if !n.Valid() || !other.Valid() || n.tree != other.tree {
		return false
	}
	for cur := other; !cur.IsZero(); cur = cur.Parent() {
		if cur.id == n.id {
			return true
		}
	}
	return false
}

// Attached reports whether the node is reachable from the tree root.
func (n Node) Attached() bool {
	if !n.Valid() {
		return false
	}
	cur := n
	for {
		parent := cur.Parent()
		if parent.IsZero() {
			return cur.id == n.tree.root
		}
		cur = parent
	}
}

// SetData stores a value in the node's user-data slot. User data is a cache
// and does not count as a mutation of the tree.
func (n Node) SetData(key string, value any) {
	s := n.slot()
	if s == nil {
		return
	}
	if s.data == nil {
		s.data = make(map[string]any)
	}
	s.data[key] = value
}

// Data returns a user-data value.
func (n Node) Data(key string) (any, bool) {
	s := n.slot()
	if s == nil || s.data == nil {
		return nil, false
	}
	v, ok := s.data[key]
	return v, ok
}

// String describes the node for debugging.
func (n Node) String() string {
	switch {
	case n.IsZero():
		return "<nil>"
	case n.Stale():
		return fmt.Sprintf("<stale #%d>", n.id)
	case n.IsLeaf():
		return fmt.Sprintf("%s#%d(%q)", n.Kind(), n.id, n.Text())
	default:
		return fmt.Sprintf("%s#%d", n.Kind(), n.id)
	}
}
