package lint

import (
	"fmt"
	"slices"
	"strings"
)

// CycleError reports rules whose ordering constraints form a cycle.
type CycleError struct {
	// Rules lists the cycle in run-after order; the first rule repeats
	// implicitly after the last.
	Rules []string
}

func (e *CycleError) Error() string {
	return "rule ordering cycle: " + strings.Join(append(slices.Clone(e.Rules), e.Rules[0]), " -> ")
}

// MissingDependencyError reports a required run-after rule that is not
// registered.
type MissingDependencyError struct {
	RuleID    string
	DependsOn string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("rule %s requires rule %s, which is not loaded", e.RuleID, e.DependsOn)
}

// SortRules orders rules so that every constraint holds. Rules that are
// not constrained relative to each other run in ascending ID order.
// Constraints naming rules outside the slice are ignored unless required.
func SortRules(rules []Rule) ([]Rule, error) {
	byID := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byID[r.ID()] = r
	}

	// succ[a] contains b when a must run before b.
	succ := make(map[string][]string, len(rules))
	pred := make(map[string][]string, len(rules))
	indegree := make(map[string]int, len(rules))
	addEdge := func(from, to string) {
		if slices.Contains(succ[from], to) {
			return
		}
		succ[from] = append(succ[from], to)
		pred[to] = append(pred[to], from)
		indegree[to]++
	}

	for _, r := range rules {
		if _, ok := indegree[r.ID()]; !ok {
			indegree[r.ID()] = 0
		}
		for _, c := range r.Constraints() {
			if _, ok := byID[c.RuleID]; !ok {
				if c.Kind == RunAfter && c.Required {
					return nil, &MissingDependencyError{RuleID: r.ID(), DependsOn: c.RuleID}
				}
				continue
			}
			switch c.Kind {
			case RunAfter:
				addEdge(c.RuleID, r.ID())
			case RunBefore:
				addEdge(r.ID(), c.RuleID)
			}
		}
	}

	var ready []string
	for id, n := range indegree {
		if n == 0 {
			ready = append(ready, id)
		}
	}
	slices.Sort(ready)

	ordered := make([]Rule, 0, len(rules))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byID[id])
		for _, next := range succ[id] {
			indegree[next]--
			if indegree[next] == 0 {
				pos, _ := slices.BinarySearch(ready, next)
				ready = slices.Insert(ready, pos, next)
			}
		}
	}

	if len(ordered) < len(byID) {
		return nil, &CycleError{Rules: findCycle(indegree, pred)}
	}
	return ordered, nil
}

// findCycle walks predecessor edges among unsorted rules until one repeats.
// Every unsorted rule has an unsorted predecessor, so the walk always ends
// on a cycle.
func findCycle(indegree map[string]int, pred map[string][]string) []string {
	var remaining []string
	for id, n := range indegree {
		if n > 0 {
			remaining = append(remaining, id)
		}
	}
	slices.Sort(remaining)

	seen := make(map[string]int)
	var path []string
	cur := remaining[0]
	for {
		if at, ok := seen[cur]; ok {
			cycle := path[at:]
			slices.Reverse(cycle)
			return cycle
		}
		seen[cur] = len(path)
		path = append(path, cur)

		var next string
		for _, p := range pred[cur] {
			if indegree[p] > 0 && (next == "" || p < next) {
				next = p
			}
		}
		cur = next
	}
}
