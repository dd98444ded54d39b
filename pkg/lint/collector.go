package lint

import (
	"cmp"
	"slices"
)

type violationKey struct {
	line    int
	column  int
	ruleID  string
	message string
}

// Collector accumulates violations for one file. Violations with the same
// position, rule, and message are reported once; a duplicate that was not
// corrected clears the Corrected flag of the one already held.
type Collector struct {
	items []Violation
	index map[violationKey]int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{index: make(map[violationKey]int)}
}

// Add records a violation.
func (c *Collector) Add(v Violation) {
	key := violationKey{line: v.Line, column: v.Column, ruleID: v.RuleID, message: v.Message}
	if i, ok := c.index[key]; ok {
		c.items[i].Corrected = c.items[i].Corrected && v.Corrected
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, v)
}

// Len returns the number of distinct violations.
func (c *Collector) Len() int {
	return len(c.items)
}

// Finalize returns the distinct violations sorted by line, column, rule
// id, and message.
func (c *Collector) Finalize() []Violation {
	out := slices.Clone(c.items)
	SortViolations(out)
	return out
}

// SortViolations sorts violations into report order.
func SortViolations(vs []Violation) {
	slices.SortStableFunc(vs, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.RuleID, b.RuleID),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
