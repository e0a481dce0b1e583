// Package allocate assigns sequenced work items to iterations and teams
// under multi-dimensional capacity constraints.
//
// The walk is inherently sequential: later iterations depend on the
// capacity consumed by earlier ones. Given identical inputs the result
// is byte-for-byte identical — there is no randomness and no wall-clock
// dependence beyond the supplied dates.
package allocate

import (
	"fmt"
	"sort"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/capacity"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/graph"
)

// Options configures the allocator
type Options struct {
	// BufferCapacity is the fraction of capacity withheld from
	// allocation. Zero means no buffer; use DefaultOptions for the
	// standard 0.2.
	BufferCapacity float64
}

// DefaultOptions returns allocator options with documented defaults
func DefaultOptions() Options {
	return Options{BufferCapacity: capacity.DefaultBuffer}
}

// Result is the allocator's output
type Result struct {
	Iterations  []art.IterationPlan   `json:"iterations" yaml:"iterations"`
	Unallocated []art.UnallocatedItem `json:"unallocated,omitempty" yaml:"unallocated,omitempty"`
}

// IterationIndex returns the index of the iteration an item was placed
// in, or -1 when the item is not in the plan.
func (r *Result) IterationIndex(id domain.ItemID) int {
	for i, plan := range r.Iterations {
		if plan.Allocated(id) {
			return i
		}
	}
	return -1
}

// Allocate walks iterations in order and places each sequenced item
// into the first team with enough remaining usable capacity. An item is
// deferred to the next iteration when a hard dependency has not been
// placed in an earlier-or-equal iteration or when no team can take it.
// Items are never split: anything larger than every team's usable
// capacity for a full iteration is reported as unallocated.
func Allocate(sequenced []art.WorkItem, iterations []art.Iteration, teams []art.Team, g *graph.Graph, opts Options) (*Result, error) {
	if !g.IsValid() {
		return nil, errors.New(errors.ErrCodePlanPrecondition,
			"cannot allocate over an invalid dependency graph").
			WithSuggestion("Run 'artplan graph' to inspect the validation issues")
	}

	result := &Result{}
	maxUsable := 0.0
	for _, team := range teams {
		if u := capacity.UsableForIteration(team, opts.BufferCapacity); u > maxUsable {
			maxUsable = u
		}
	}

	// Oversized items can never fit; flag them up front so dependents
	// fail with an honest "iterations exhausted" reason instead of
	// looping pointlessly.
	pending := make([]art.WorkItem, 0, len(sequenced))
	for _, item := range sequenced {
		if item.Estimate > maxUsable {
			result.Unallocated = append(result.Unallocated, art.UnallocatedItem{
				Item:   item,
				Reason: art.ReasonOversized,
			})
			continue
		}
		pending = append(pending, item)
	}

	placed := make(map[domain.ItemID]int, len(pending))

	for idx, it := range iterations {
		ledger := NewLedger(teams, opts.BufferCapacity)
		var allocations []art.Allocation
		var deferred []art.WorkItem

		for _, item := range pending {
			if !hardDepsSatisfied(item, g, placed, idx) {
				deferred = append(deferred, item)
				continue
			}

			next, teamID, ok := ledger.Place(item, teams)
			if !ok {
				deferred = append(deferred, item)
				continue
			}

			ledger = next
			placed[item.ID] = idx
			allocations = append(allocations, art.Allocation{
				Item:   item,
				Team:   teamID,
				Points: item.Estimate,
			})
		}

		result.Iterations = append(result.Iterations,
			buildIterationPlan(it, allocations, teams, ledger, g, placed, idx, opts.BufferCapacity))
		pending = deferred
	}

	for _, item := range pending {
		result.Unallocated = append(result.Unallocated, art.UnallocatedItem{
			Item:   item,
			Reason: art.ReasonIterationsExhausted,
		})
	}

	return result, nil
}

// hardDepsSatisfied reports whether every hard dependency of the item is
// already placed in an earlier-or-equal iteration.
func hardDepsSatisfied(item art.WorkItem, g *graph.Graph, placed map[domain.ItemID]int, current int) bool {
	for _, dep := range g.HardDependencies(item.ID) {
		at, ok := placed[dep]
		if !ok || at > current {
			return false
		}
	}
	return true
}

func buildIterationPlan(it art.Iteration, allocations []art.Allocation, teams []art.Team,
	ledger Ledger, g *graph.Graph, placed map[domain.ItemID]int, idx int, buffer float64) art.IterationPlan {

	plan := art.IterationPlan{
		Iteration:   it,
		Allocations: allocations,
	}

	for _, a := range allocations {
		plan.TotalPoints += a.Points
	}

	for _, team := range teams {
		usable := capacity.UsableForIteration(team, buffer)
		allocated := usable - ledger.Remaining(team.ID)
		util := art.TeamUtilization{
			Team:      team.ID,
			Capacity:  usable,
			Allocated: allocated,
		}
		if usable > 0 {
			util.Utilization = allocated / usable
		}
		util.OverAllocated = util.Utilization > 1
		plan.TotalCapacity += usable
		plan.Utilization = append(plan.Utilization, util)
	}
	sort.Slice(plan.Utilization, func(i, j int) bool {
		return plan.Utilization[i].Team < plan.Utilization[j].Team
	})

	plan.RiskLevel = ClassifyRisk(plan, g, placed, idx)
	return plan
}

// ClassifyRisk derives the iteration risk level from utilization and
// dependency density (hard dependencies reaching back into earlier
// iterations per allocated item).
func ClassifyRisk(plan art.IterationPlan, g *graph.Graph, placed map[domain.ItemID]int, idx int) domain.RiskLevel {
	utilization := 0.0
	if plan.TotalCapacity > 0 {
		utilization = plan.TotalPoints / plan.TotalCapacity
	}

	crossIteration := 0
	for _, a := range plan.Allocations {
		for _, dep := range g.HardDependencies(a.Item.ID) {
			if at, ok := placed[dep]; ok && at < idx {
				crossIteration++
			}
		}
	}
	density := 0.0
	if len(plan.Allocations) > 0 {
		density = float64(crossIteration) / float64(len(plan.Allocations))
	}

	switch {
	case utilization > 0.9 || density > 1.0:
		return domain.RiskHigh
	case utilization > 0.75 || density > 0.5:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// String renders a compact human-readable summary of the result, used
// by debug logging.
func (r *Result) String() string {
	placed := 0
	for _, plan := range r.Iterations {
		placed += len(plan.Allocations)
	}
	return fmt.Sprintf("%d iterations, %d items placed, %d unallocated",
		len(r.Iterations), placed, len(r.Unallocated))
}
