// Package sequence produces a dependency-respecting total order over
// work items.
package sequence

import (
	"sort"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/graph"
)

// Sequence orders work items with a stable topological sort (Kahn's
// algorithm) over hard edges. Among eligible items the pick order is
// ascending priority, then descending estimated size, then ascending ID,
// so the result is fully deterministic. Soft dependencies never gate
// eligibility; they stay in the graph as risk metadata.
//
// The graph must have passed validation: an invalid graph is a hard
// precondition failure.
func Sequence(g *graph.Graph) ([]art.WorkItem, error) {
	if !g.IsValid() {
		return nil, errors.New(errors.ErrCodeGraphNotValidated,
			"cannot sequence items over an invalid dependency graph").
			WithSuggestion("Fix the graph validation issues before planning")
	}

	items := g.Items()
	remaining := make(map[domain.ItemID]int, len(items))
	for _, item := range items {
		remaining[item.ID] = len(g.HardDependencies(item.ID))
	}

	var eligible []art.WorkItem
	for _, item := range items {
		if remaining[item.ID] == 0 {
			eligible = append(eligible, item)
		}
	}

	ordered := make([]art.WorkItem, 0, len(items))
	for len(eligible) > 0 {
		sort.Slice(eligible, func(i, j int) bool {
			return Less(eligible[i], eligible[j])
		})

		next := eligible[0]
		eligible = eligible[1:]
		ordered = append(ordered, next)

		for _, dependent := range g.Dependents(next.ID) {
			// Only hard edges gate eligibility.
			gated := false
			for _, dep := range g.HardDependencies(dependent) {
				if dep == next.ID {
					gated = true
					break
				}
			}
			if !gated {
				continue
			}
			remaining[dependent]--
			if remaining[dependent] == 0 {
				item, _ := g.Item(dependent)
				eligible = append(eligible, item)
			}
		}
	}

	// A validated graph has no hard cycles, so every item drains.
	if len(ordered) != len(items) {
		return nil, errors.New(errors.ErrCodeGraphHardCycle,
			"topological sort did not drain all items; the hard dependency graph is cyclic")
	}

	return ordered, nil
}

// Less is the deterministic eligibility ordering: ascending priority,
// then descending estimated size, then ascending ID.
func Less(a, b art.WorkItem) bool {
	if pa, pb := a.EffectivePriority(), b.EffectivePriority(); pa != pb {
		return pa < pb
	}
	if a.Estimate != b.Estimate {
		return a.Estimate > b.Estimate
	}
	return a.ID < b.ID
}
