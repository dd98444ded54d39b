package cst

import "fmt"

func (t *Tree) checkLive(n Node, op string) error {
	if n.IsZero() {
		return fmt.Errorf("%s: %w", op, ErrAbsentNode)
	}
	if n.tree != t {
		return fmt.Errorf("%s: %w", op, ErrForeignNode)
	}
	if n.Stale() {
		return &StaleNodeError{ID: n.id, Op: op}
	}
	return nil
}

func (t *Tree) checkDetached(n Node, op string) error {
	if err := t.checkLive(n, op); err != nil {
		return err
	}
	if t.slots[n.id].parent != NoNode || t.root == n.id {
		return fmt.Errorf("%s %s: %w", op, n, ErrAlreadyInTree)
	}
	return nil
}

func (t *Tree) checkAnchor(anchor Node, op string) error {
	if err := t.checkLive(anchor, op); err != nil {
		return err
	}
	if t.slots[anchor.id].parent == NoNode {
		return fmt.Errorf("%s %s: %w", op, anchor, ErrNoParent)
	}
	return nil
}

func (t *Tree) checkNotAncestor(n Node, target Node, op string) error {
	if n.Contains(target) {
		return fmt.Errorf("%s: %w", op, ErrCyclicMutation)
	}
	return nil
}

// InsertBefore links the detached node n as the previous sibling of anchor.
func (t *Tree) InsertBefore(anchor, n Node) error {
	const op = "InsertBefore"
	if err := t.checkAnchor(anchor, op); err != nil {
		return err
	}
	if err := t.checkDetached(n, op); err != nil {
		return err
	}
	if err := t.checkNotAncestor(n, anchor, op); err != nil {
		return err
	}

	a := &t.slots[anchor.id]
	s := &t.slots[n.id]
	s.parent = a.parent
	s.next = anchor.id
	s.prev = a.prev
	if a.prev != NoNode {
		t.slots[a.prev].next = n.id
	} else {
		t.slots[a.parent].firstChild = n.id
	}
	a.prev = n.id
	t.touch()
	return nil
}

// InsertAfter links the detached node n as the next sibling of anchor.
func (t *Tree) InsertAfter(anchor, n Node) error {
	const op = "InsertAfter"
	if err := t.checkAnchor(anchor, op); err != nil {
		return err
	}
	if err := t.checkDetached(n, op); err != nil {
		return err
	}
	if err := t.checkNotAncestor(n, anchor, op); err != nil {
		return err
	}

	a := &t.slots[anchor.id]
	s := &t.slots[n.id]
	s.parent = a.parent
	s.prev = anchor.id
	s.next = a.next
	if a.next != NoNode {
		t.slots[a.next].prev = n.id
	} else {
		t.slots[a.parent].lastChild = n.id
	}
	a.next = n.id
	t.touch()
	return nil
}

// AppendChild links the detached node n as the last child of parent.
func (t *Tree) AppendChild(parent, n Node) error {
	const op = "AppendChild"
	if err := t.checkLive(parent, op); err != nil {
		return err
	}
	if parent.IsLeaf() {
		return fmt.Errorf("%s %s: %w", op, parent, ErrNotComposite)
	}
	if err := t.checkDetached(n, op); err != nil {
		return err
	}
	if err := t.checkNotAncestor(n, parent, op); err != nil {
		return err
	}

	p := &t.slots[parent.id]
	s := &t.slots[n.id]
	s.parent = parent.id
	s.prev = p.lastChild
	s.next = NoNode
	if p.lastChild != NoNode {
		t.slots[p.lastChild].next = n.id
	} else {
		p.firstChild = n.id
	}
	p.lastChild = n.id
	t.touch()
	return nil
}

// PrependChild links the detached node n as the first child of parent.
func (t *Tree) PrependChild(parent, n Node) error {
	first := parent.FirstChild()
	if first.IsZero() {
		return t.AppendChild(parent, n)
	}
	return t.InsertBefore(first, n)
}

// Remove unlinks n from its parent. The node and its whole subtree become
// stale.
func (t *Tree) Remove(n Node) error {
	const op = "Remove"
	if err := t.checkAnchor(n, op); err != nil {
		return err
	}
	t.unlink(n.id)
	t.kill(n.id)
	t.touch()
	return nil
}

// Replace swaps old for the detached node replacement. old becomes stale.
func (t *Tree) Replace(old, replacement Node) error {
	const op = "Replace"
	if err := t.checkAnchor(old, op); err != nil {
		return err
	}
	if err := t.checkDetached(replacement, op); err != nil {
		return err
	}
	if err := t.checkNotAncestor(replacement, old, op); err != nil {
		return err
	}
	if err := t.InsertBefore(old, replacement); err != nil {
		return err
	}
	return t.Remove(old)
}

// ReplaceText changes the text of a leaf in place. The handle stays valid.
func (t *Tree) ReplaceText(leaf Node, text string) error {
	const op = "ReplaceText"
	if err := t.checkLive(leaf, op); err != nil {
		return err
	}
	if !leaf.IsLeaf() {
		return fmt.Errorf("%s %s: %w", op, leaf, ErrNotLeaf)
	}
	t.slots[leaf.id].text = text
	t.touch()
	return nil
}

// SplitWhitespace cuts a whitespace leaf at the byte offset into two adjacent
// whitespace leaves and returns both halves. The original handle keeps the
// first half.
func (t *Tree) SplitWhitespace(leaf Node, offset int) (Node, Node, error) {
	const op = "SplitWhitespace"
	if err := t.checkAnchor(leaf, op); err != nil {
		return Node{}, Node{}, err
	}
	if leaf.Kind() != KindWhitespace {
		return Node{}, Node{}, fmt.Errorf("%s %s: %w", op, leaf, ErrNotWhitespace)
	}
	text := t.slots[leaf.id].text
	if offset <= 0 || offset >= len(text) {
		return Node{}, Node{}, fmt.Errorf("%s at %d of %d: %w", op, offset, len(text), ErrInvalidOffset)
	}

	tail := t.NewLeaf(KindWhitespace, text[offset:])
	t.slots[leaf.id].text = text[:offset]
	if err := t.InsertAfter(leaf, tail); err != nil {
		t.slots[leaf.id].text = text
		return Node{}, Node{}, err
	}
	return leaf, tail, nil
}

// MergeWhitespace joins two adjacent whitespace siblings into first. second
// becomes stale.
func (t *Tree) MergeWhitespace(first, second Node) (Node, error) {
	const op = "MergeWhitespace"
	if err := t.checkAnchor(first, op); err != nil {
		return Node{}, err
	}
	if err := t.checkAnchor(second, op); err != nil {
		return Node{}, err
	}
	if first.Kind() != KindWhitespace || second.Kind() != KindWhitespace {
		return Node{}, fmt.Errorf("%s: %w", op, ErrNotWhitespace)
	}
	if t.slots[first.id].next != second.id {
		return Node{}, fmt.Errorf("%s %s %s: %w", op, first, second, ErrNotAdjacent)
	}

	t.slots[first.id].text += t.slots[second.id].text
	if err := t.Remove(second); err != nil {
		return Node{}, err
	}
	return first, nil
}

func (t *Tree) unlink(id NodeID) {
	s := &t.slots[id]
	if s.prev != NoNode {
		t.slots[s.prev].next = s.next
	} else if s.parent != NoNode {
		t.slots[s.parent].firstChild = s.next
	}
	if s.next != NoNode {
		t.slots[s.next].prev = s.prev
	} else if s.parent != NoNode {
		t.slots[s.parent].lastChild = s.prev
	}
	s.parent, s.prev, s.next = NoNode, NoNode, NoNode
}

func (t *Tree) kill(id NodeID) {
	t.slots[id].gen++
	t.slots[id].data = nil
	for c := t.slots[id].firstChild; c != NoNode; c = t.slots[c].next {
		t.kill(c)
	}
}
