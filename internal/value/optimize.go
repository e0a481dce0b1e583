package value

import (
	"github.com/artplanhq/artplan/internal/allocate"
	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/graph"
)

// Move records one accepted re-sequencing step.
type Move struct {
	Item domain.ItemID `json:"item" yaml:"item"`
	From int           `json:"from" yaml:"from"`
	To   int           `json:"to" yaml:"to"`
	Team domain.TeamID `json:"team" yaml:"team"`
}

// OptimizationResult carries the adjusted plan and what changed.
type OptimizationResult struct {
	Iterations   []art.IterationPlan `json:"iterations" yaml:"iterations"`
	Moves        []Move              `json:"moves,omitempty" yaml:"moves,omitempty"`
	Passes       int                 `json:"passes" yaml:"passes"`
	InitialScore float64             `json:"initial_score" yaml:"initial_score"`
	FinalScore   float64             `json:"final_score" yaml:"final_score"`
}

// positionWeight discounts later iterations so that delivering the same
// impact earlier scores higher.
func positionWeight(idx, count int) float64 {
	return float64(count-idx) / float64(count)
}

// AggregateScore is the position-weighted impact of the whole plan.
func AggregateScore(plans []art.IterationPlan, weights Weights) float64 {
	if len(plans) == 0 {
		return 0
	}
	total := 0.0
	for idx, plan := range plans {
		w := positionWeight(idx, len(plans))
		for _, a := range plan.Allocations {
			total += Impact(a.Item, weights) * w
		}
	}
	return total
}

// OptimizeTiming front-loads high-value work with a local search: each
// pass tries to move every allocated item one iteration earlier, and a
// move is kept only when every hard dependency still lands in an
// earlier-or-equal iteration, the receiving team has the capacity, and
// the aggregate score strictly improves. The search is not globally
// optimal; the pass count is bounded to guarantee termination.
func OptimizeTiming(plans []art.IterationPlan, teams []art.Team, g *graph.Graph, opts Options) OptimizationResult {
	weights := opts.weights()
	result := OptimizationResult{
		InitialScore: AggregateScore(plans, weights),
	}

	work := make([]art.IterationPlan, len(plans))
	for i, plan := range plans {
		work[i] = plan
		work[i].Allocations = append([]art.Allocation(nil), plan.Allocations...)
		work[i].Utilization = append([]art.TeamUtilization(nil), plan.Utilization...)
	}

	position := make(map[domain.ItemID]int)
	remaining := make([]map[domain.TeamID]float64, len(work))
	for idx, plan := range work {
		remaining[idx] = make(map[domain.TeamID]float64, len(plan.Utilization))
		for _, u := range plan.Utilization {
			remaining[idx][u.Team] = u.Capacity - u.Allocated
		}
		for _, a := range plan.Allocations {
			position[a.Item.ID] = idx
		}
	}

	maxPasses := opts.MaxOptimizationPasses
	if maxPasses <= 0 {
		maxPasses = len(work)
	}

	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for idx := 1; idx < len(work); idx++ {
			// Snapshot: accepted moves mutate the allocation slices.
			candidates := append([]art.Allocation(nil), work[idx].Allocations...)
			for _, a := range candidates {
				if position[a.Item.ID] != idx {
					continue
				}
				if move, ok := tryMoveEarlier(a, idx, work, teams, g, position, remaining, weights); ok {
					result.Moves = append(result.Moves, move)
					moved = true
				}
			}
		}
		result.Passes = pass + 1
		if !moved {
			break
		}
	}

	for idx := range work {
		work[idx].RiskLevel = allocate.ClassifyRisk(work[idx], g, position, idx)
	}

	result.Iterations = work
	result.FinalScore = AggregateScore(work, weights)
	return result
}

func tryMoveEarlier(a art.Allocation, idx int, work []art.IterationPlan, teams []art.Team,
	g *graph.Graph, position map[domain.ItemID]int, remaining []map[domain.TeamID]float64,
	weights Weights) (Move, bool) {

	target := idx - 1

	gain := Impact(a.Item, weights) * (positionWeight(target, len(work)) - positionWeight(idx, len(work)))
	if gain <= 0 {
		return Move{}, false
	}

	for _, dep := range g.HardDependencies(a.Item.ID) {
		at, ok := position[dep]
		if !ok || at > target {
			return Move{}, false
		}
	}

	team, ok := receivingTeam(a, teams, remaining[target])
	if !ok {
		return Move{}, false
	}

	removeAllocation(&work[idx], a.Item.ID)
	adjustUtilization(&work[idx], a.Team, -a.Points)
	work[idx].TotalPoints -= a.Points
	remaining[idx][a.Team] += a.Points

	moved := a
	moved.Team = team
	work[target].Allocations = append(work[target].Allocations, moved)
	adjustUtilization(&work[target], team, a.Points)
	work[target].TotalPoints += a.Points
	remaining[target][team] -= a.Points
	position[a.Item.ID] = target

	return Move{Item: a.Item.ID, From: idx, To: target, Team: team}, true
}

// receivingTeam picks the team in the target iteration that takes the
// item: the current team when it has room, otherwise the first eligible
// team in roster order. Specialization hints restrict the pool the same
// way the allocator does.
func receivingTeam(a art.Allocation, teams []art.Team, remaining map[domain.TeamID]float64) (domain.TeamID, bool) {
	pool := teams
	if a.Item.Specialization != "" {
		var matching []art.Team
		for _, t := range teams {
			if t.HasSpecialization(a.Item.Specialization) {
				matching = append(matching, t)
			}
		}
		if len(matching) > 0 {
			pool = matching
		}
	}

	for _, t := range pool {
		if t.ID == a.Team && remaining[t.ID] >= a.Points {
			return t.ID, true
		}
	}
	for _, t := range pool {
		if remaining[t.ID] >= a.Points {
			return t.ID, true
		}
	}
	return "", false
}

func removeAllocation(plan *art.IterationPlan, id domain.ItemID) {
	for i, a := range plan.Allocations {
		if a.Item.ID == id {
			plan.Allocations = append(plan.Allocations[:i:i], plan.Allocations[i+1:]...)
			return
		}
	}
}

func adjustUtilization(plan *art.IterationPlan, team domain.TeamID, delta float64) {
	for i := range plan.Utilization {
		u := &plan.Utilization[i]
		if u.Team != team {
			continue
		}
		u.Allocated += delta
		if u.Capacity > 0 {
			u.Utilization = u.Allocated / u.Capacity
		}
		u.OverAllocated = u.Utilization > 1
		return
	}
}
