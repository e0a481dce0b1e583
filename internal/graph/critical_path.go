package graph

import (
	"sort"

	"github.com/artplanhq/artplan/internal/domain"
)

// computeCriticalPath finds the longest chain of hard edges weighted by
// cumulative estimated size: topological order first, then a
// dynamic-programming longest path. Ties break by ascending item ID for
// determinism. Skipped when the hard subgraph carries a cycle.
func (g *Graph) computeCriticalPath() {
	for _, c := range g.Cycles {
		if c.Severity == SeverityError {
			return
		}
	}
	if len(g.items) == 0 {
		return
	}

	// remaining counts unresolved hard dependencies per item.
	remaining := make(map[domain.ItemID]int, len(g.items))
	for _, id := range g.order {
		remaining[id] = len(g.HardDependencies(id))
	}

	var ready []domain.ItemID
	for _, id := range g.sortedIDs() {
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}

	longest := make(map[domain.ItemID]float64, len(g.items))
	prev := make(map[domain.ItemID]domain.ItemID, len(g.items))

	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		id := ready[0]
		ready = ready[1:]

		item := g.items[id]
		best := 0.0
		var bestDep domain.ItemID
		// Dependencies come back sorted, so a strict comparison keeps
		// the smallest ID on ties.
		for _, dep := range g.HardDependencies(id) {
			if bestDep == "" || longest[dep] > best {
				best = longest[dep]
				bestDep = dep
			}
		}
		longest[id] = item.Estimate + best
		if bestDep != "" {
			prev[id] = bestDep
		}

		for _, edge := range g.in[id] {
			if !edge.Strength.Blocks() {
				continue
			}
			remaining[edge.Source]--
			if remaining[edge.Source] == 0 {
				ready = append(ready, edge.Source)
			}
		}
	}

	var endID domain.ItemID
	bestTotal := -1.0
	for _, id := range g.sortedIDs() {
		if longest[id] > bestTotal {
			bestTotal = longest[id]
			endID = id
		}
	}
	if endID == "" || bestTotal <= 0 {
		return
	}

	// Walk the chain back to its leaf, then reverse into execution order.
	var path []domain.ItemID
	for id := endID; ; {
		path = append(path, id)
		next, ok := prev[id]
		if !ok {
			break
		}
		id = next
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	g.CriticalPath = path
	g.CriticalPathPoints = bestTotal
}
