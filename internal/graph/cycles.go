package graph

import (
	"sort"
	"strings"
)

// Severity classifies how concerning the discovered cycles are.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CycleReport is the cycle detector's output. Cycles are canonical: each is
// rotated to start at its lexicographically smallest node id, and duplicates
// discovered via different traversal branches are collapsed.
type CycleReport struct {
	Cycles      [][]NodeID `json:"cycles"`
	Severity    Severity   `json:"severity"`
	Remediation []string   `json:"remediation"`
}

// dfsFrame is one entry of the explicit traversal stack, replacing
// language-level recursion so pathological graphs cannot overflow the stack.
type dfsFrame struct {
	id   NodeID
	succ []NodeID
	next int
}

// DetectCycles finds all dependency cycles reachable in the graph with an
// iterative depth-first traversal. A global visited set bounds the work to
// O(V+E): a node is never re-expanded from a second root, so a cycle
// reachable from two roots is reported once, from whichever root comes
// first in node order.
func DetectCycles(g *Graph) CycleReport {
	// Deterministic root order regardless of build order.
	roots := make([]NodeID, len(g.Nodes))
	for i, n := range g.Nodes {
		roots[i] = n.ID
	}
	sortIDs(roots)

	succs := make(map[NodeID][]NodeID, len(g.Nodes))
	for _, id := range roots {
		s := g.Successors(id)
		sortIDs(s)
		succs[id] = s
	}

	visited := make(map[NodeID]bool, len(g.Nodes))
	seenCycles := make(map[string]struct{})
	var cycles [][]NodeID

	for _, root := range roots {
		if visited[root] {
			continue
		}

		stack := []dfsFrame{{id: root, succ: succs[root]}}
		onPath := map[NodeID]int{root: 0}
		visited[root] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.succ) {
				delete(onPath, top.id)
				stack = stack[:len(stack)-1]
				continue
			}
			next := top.succ[top.next]
			top.next++

			if depth, ok := onPath[next]; ok {
				// Back edge: the path slice from next's first
				// occurrence to the current node is a closed walk.
				cycle := make([]NodeID, 0, len(stack)-depth)
				for _, f := range stack[depth:] {
					cycle = append(cycle, f.id)
				}
				cycle = canonicalize(cycle)
				key := cycleKey(cycle)
				if _, dup := seenCycles[key]; !dup {
					seenCycles[key] = struct{}{}
					cycles = append(cycles, cycle)
				}
				continue
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			onPath[next] = len(stack)
			stack = append(stack, dfsFrame{id: next, succ: succs[next]})
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycleKey(cycles[i]) < cycleKey(cycles[j])
	})

	return CycleReport{
		Cycles:      cycles,
		Severity:    classifySeverity(cycles),
		Remediation: remediation(cycles),
	}
}

// canonicalize rotates a cycle so it starts at its smallest node id. This
// gives every closed walk a single canonical spelling, so the same cycle
// discovered via two neighbor branches deduplicates cleanly.
func canonicalize(cycle []NodeID) []NodeID {
	if len(cycle) == 0 {
		return cycle
	}
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	out := make([]NodeID, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}

func cycleKey(cycle []NodeID) string {
	parts := make([]string, len(cycle))
	for i, id := range cycle {
		parts[i] = string(id)
	}
	return strings.Join(parts, "->")
}

func classifySeverity(cycles [][]NodeID) Severity {
	switch {
	case len(cycles) == 0:
		return SeverityNone
	case len(cycles) == 1 && len(cycles[0]) <= 2:
		return SeverityLow
	case len(cycles) <= 2:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

func remediation(cycles [][]NodeID) []string {
	if len(cycles) == 0 {
		return nil
	}
	out := []string{
		"break circular service dependencies by loading one side asynchronously",
	}
	for _, c := range cycles {
		if len(c) <= 2 {
			out = append(out, "mutual dependency "+cycleKey(c)+": merge the services or drop one direction")
		} else {
			out = append(out, "dependency chain "+cycleKey(c)+" closes on itself: reorder or decouple the chain")
		}
	}
	return out
}
