package cst

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid mutations.
var (
	ErrAbsentNode     = errors.New("cst: absent node")
	ErrNotLeaf        = errors.New("cst: node is not a leaf")
	ErrNotComposite   = errors.New("cst: node is not a composite")
	ErrNotWhitespace  = errors.New("cst: node is not whitespace")
	ErrNoParent       = errors.New("cst: node has no parent")
	ErrAlreadyInTree  = errors.New("cst: node is already attached")
	ErrForeignNode    = errors.New("cst: node belongs to another tree")
	ErrNotAdjacent    = errors.New("cst: nodes are not adjacent siblings")
	ErrInvalidOffset  = errors.New("cst: split offset out of range")
	ErrCyclicMutation = errors.New("cst: node would become its own ancestor")
)

// StaleNodeError is returned when a mutation targets a node that has been
// removed from the tree.
type StaleNodeError struct {
	ID NodeID
	Op string
}

func (e *StaleNodeError) Error() string {
	return fmt.Sprintf("cst: %s on stale node #%d", e.Op, e.ID)
}

// IsStale reports whether err is or wraps a StaleNodeError.
func IsStale(err error) bool {
	var target *StaleNodeError
	return errors.As(err, &target)
}
