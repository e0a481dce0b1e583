package graph

import (
	"sort"
	"strings"

	"github.com/artplanhq/artplan/internal/domain"
)

// detectCycles finds dependency cycles with a DFS that marks the
// recursion stack. Cycles over hard edges alone invalidate the graph;
// cycles that need a soft edge to close are downgraded to warnings.
func (g *Graph) detectCycles() {
	hardCycles := g.findCycles(true)
	seen := make(map[string]bool, len(hardCycles))
	for _, c := range hardCycles {
		c.Severity = SeverityError
		g.Cycles = append(g.Cycles, c)
		g.fail("hard dependency cycle detected: %s", c)
		seen[normalizeCycle(c.Items)] = true
	}

	for _, c := range g.findCycles(false) {
		if seen[normalizeCycle(c.Items)] {
			continue
		}
		c.Severity = SeverityWarning
		g.Cycles = append(g.Cycles, c)
		g.warn("soft dependency cycle detected: %s", c)
	}
}

// DFS colors
const (
	colorWhite uint8 = iota // unvisited
	colorGray               // on the recursion stack
	colorBlack              // fully explored
)

// findCycles runs a DFS over the adjacency lists and returns every
// cycle closed by a back edge. hardOnly restricts traversal to hard
// edges. Nodes and neighbors are visited in sorted ID order so the
// result is deterministic.
func (g *Graph) findCycles(hardOnly bool) []Cycle {
	state := make(map[domain.ItemID]uint8, len(g.items))
	var stack []domain.ItemID
	var cycles []Cycle

	var visit func(id domain.ItemID)
	visit = func(id domain.ItemID) {
		state[id] = colorGray
		stack = append(stack, id)

		for _, target := range g.neighbors(id, hardOnly) {
			switch state[target] {
			case colorGray:
				// Back edge: the cycle is the stack suffix from target.
				for i, on := range stack {
					if on == target {
						items := make([]domain.ItemID, len(stack)-i)
						copy(items, stack[i:])
						cycles = append(cycles, Cycle{Items: items})
						break
					}
				}
			case colorWhite:
				visit(target)
			}
		}

		state[id] = colorBlack
		stack = stack[:len(stack)-1]
	}

	for _, id := range g.sortedIDs() {
		if state[id] == colorWhite {
			visit(id)
		}
	}

	return cycles
}

// neighbors returns the dependency targets of an item in sorted order.
func (g *Graph) neighbors(id domain.ItemID, hardOnly bool) []domain.ItemID {
	var targets []domain.ItemID
	for _, edge := range g.out[id] {
		if hardOnly && !edge.Strength.Blocks() {
			continue
		}
		targets = append(targets, edge.Target)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// normalizeCycle produces a rotation-independent key for a cycle so the
// same cycle found from different start nodes compares equal.
func normalizeCycle(items []domain.ItemID) string {
	if len(items) == 0 {
		return ""
	}
	min := 0
	for i := range items {
		if items[i] < items[min] {
			min = i
		}
	}
	parts := make([]string, 0, len(items))
	for i := 0; i < len(items); i++ {
		parts = append(parts, items[(min+i)%len(items)].String())
	}
	return strings.Join(parts, "->")
}
