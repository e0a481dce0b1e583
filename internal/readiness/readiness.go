// Package readiness scores an allocation result for release readiness:
// capacity balance, dependency risk, and delivery predictability roll up
// into a single 0-1 score.
package readiness

import (
	"fmt"

	"github.com/artplanhq/artplan/internal/allocate"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/graph"
)

// DefaultThreshold is the readiness score at or above which a plan is
// considered ready, absent over-allocation.
const DefaultThreshold = 0.7

// Weights control the contribution of each category score to the
// overall readiness score.
type Weights struct {
	CapacityBalance float64 `json:"capacity_balance" yaml:"capacity_balance"`
	DependencyRisk  float64 `json:"dependency_risk" yaml:"dependency_risk"`
	Predictability  float64 `json:"predictability" yaml:"predictability"`
}

// DefaultWeights weighs every category equally.
func DefaultWeights() Weights {
	return Weights{CapacityBalance: 1, DependencyRisk: 1, Predictability: 1}
}

// Options configures the assessment
type Options struct {
	Threshold float64
	Weights   Weights
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Weights: DefaultWeights()}
}

// Assessment is the readiness verdict for a plan
type Assessment struct {
	// CapacityBalance is 1 minus the variance of per-team utilization
	// across iterations. Even load scores high.
	CapacityBalance float64 `json:"capacity_balance" yaml:"capacity_balance"`

	// DependencyRisk is 1 minus the fraction of cross-iteration hard
	// edges that skip more than one iteration. Long reaches score low.
	DependencyRisk float64 `json:"dependency_risk" yaml:"dependency_risk"`

	// Predictability is the fraction of iterations with aggregate
	// utilization inside the healthy band [0.6, 1.0].
	Predictability float64 `json:"predictability" yaml:"predictability"`

	// ReadinessScore is the weighted average of the category scores.
	ReadinessScore float64 `json:"readiness_score" yaml:"readiness_score"`

	// IsReady is true when the score clears the threshold and no
	// iteration is over-allocated.
	IsReady bool `json:"is_ready" yaml:"is_ready"`

	Findings []string `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Assess scores the allocation result.
func Assess(result *allocate.Result, g *graph.Graph, opts Options) Assessment {
	a := Assessment{
		CapacityBalance: capacityBalance(result),
		DependencyRisk:  dependencyRisk(result, g),
		Predictability:  predictability(result),
	}

	w := opts.Weights
	totalWeight := w.CapacityBalance + w.DependencyRisk + w.Predictability
	if totalWeight <= 0 {
		w = DefaultWeights()
		totalWeight = 3
	}
	a.ReadinessScore = (a.CapacityBalance*w.CapacityBalance +
		a.DependencyRisk*w.DependencyRisk +
		a.Predictability*w.Predictability) / totalWeight

	overAllocated := false
	for _, plan := range result.Iterations {
		for _, u := range plan.Utilization {
			if u.OverAllocated {
				overAllocated = true
				a.Findings = append(a.Findings, fmt.Sprintf(
					"team %s over-allocated in %s (%.0f%%)",
					u.Team, plan.Iteration.Name, u.Utilization*100))
			}
		}
	}

	a.IsReady = a.ReadinessScore >= opts.Threshold && !overAllocated

	if len(result.Unallocated) > 0 {
		a.Findings = append(a.Findings, fmt.Sprintf(
			"%d item(s) could not be allocated", len(result.Unallocated)))
	}
	if a.CapacityBalance < 0.8 {
		a.Findings = append(a.Findings, "team load is unevenly distributed across iterations")
	}
	if a.DependencyRisk < 0.8 {
		a.Findings = append(a.Findings, "hard dependencies reach across distant iterations")
	}

	return a
}

// capacityBalance computes 1 minus the variance of every per-team
// utilization sample. No samples means trivially balanced.
func capacityBalance(result *allocate.Result) float64 {
	var samples []float64
	for _, plan := range result.Iterations {
		for _, u := range plan.Utilization {
			samples = append(samples, u.Utilization)
		}
	}
	if len(samples) == 0 {
		return 1
	}

	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))

	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(samples))

	return clamp01(1 - variance)
}

// dependencyRisk scores the structure of cross-iteration hard edges.
func dependencyRisk(result *allocate.Result, g *graph.Graph) float64 {
	index := make(map[domain.ItemID]int)
	for i, plan := range result.Iterations {
		for _, a := range plan.Allocations {
			index[a.Item.ID] = i
		}
	}

	crossIteration, skipping := 0, 0
	for _, edge := range g.HardEdges() {
		src, okSrc := index[edge.Source]
		tgt, okTgt := index[edge.Target]
		if !okSrc || !okTgt || src == tgt {
			continue
		}
		crossIteration++
		if src-tgt > 1 {
			skipping++
		}
	}
	if crossIteration == 0 {
		return 1
	}
	return clamp01(1 - float64(skipping)/float64(crossIteration))
}

// predictability is the fraction of iterations landing in the healthy
// utilization band.
func predictability(result *allocate.Result) float64 {
	if len(result.Iterations) == 0 {
		return 0
	}
	healthy := 0
	for _, plan := range result.Iterations {
		if plan.TotalCapacity <= 0 {
			continue
		}
		util := plan.TotalPoints / plan.TotalCapacity
		if util >= 0.6 && util <= 1.0 {
			healthy++
		}
	}
	return float64(healthy) / float64(len(result.Iterations))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
