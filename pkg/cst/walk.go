package cst

import "errors"

// ErrSkipChildren may be returned by an enter callback to skip the node's
// children. The leave callback still runs.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal starting at root.
func Walk(root Node, fn WalkFunc) error {
	return WalkWithContext(root, fn, nil)
}

// WalkWithContext performs a depth-first traversal with enter and leave
// callbacks. Either callback may be nil.
//
// The walk tolerates mutation by the callbacks. Children are snapshotted
// after the parent's enter callback; children removed before they are
// reached are skipped, and nodes inserted during the walk are not visited.
// If a node becomes stale during its own enter callback its children and
// leave callback are skipped.
func WalkWithContext(root Node, enter, leave WalkFunc) error {
	if !root.Valid() {
		return nil
	}

	if enter != nil {
		err := enter(root)
		switch {
		case errors.Is(err, ErrSkipChildren):
			if !root.Valid() {
				return nil
			}
			if leave != nil {
				return leave(root)
			}
			return nil
		case err != nil:
			return err
		}
		if !root.Valid() {
			return nil
		}
	}

	for _, child := range root.Children() {
		if !child.Valid() || child.Parent().id != root.id {
			continue
		}
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil && root.Valid() {
		return leave(root)
	}

	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck // the callback never fails
	Walk(root, func(node Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or the zero Node.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck // errStopWalk is expected and intentionally ignored
	Walk(root, func(node Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root Node, kind Kind) []Node {
	return FindAll(root, func(n Node) bool {
		return n.Kind() == kind
	})
}

// Leaves returns every leaf below root in document order.
func Leaves(root Node) []Node {
	return FindAll(root, Node.IsLeaf)
}

var errStopWalk = errors.New("stop walk")
