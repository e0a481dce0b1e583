package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/graph"
)

func alloc(id string, kind domain.ItemKind, teamID string, criteria int, tested bool) art.Allocation {
	item := art.WorkItem{
		ID:     domain.ItemID(id),
		Kind:   kind,
		Title:  "Item " + id,
		Tested: tested,
	}
	if kind == domain.KindStory {
		item.Estimate = 5
	}
	for i := 0; i < criteria; i++ {
		item.AcceptanceCriteria = append(item.AcceptanceCriteria, "criterion")
	}
	return art.Allocation{Item: item, Team: domain.TeamID(teamID), Points: item.Estimate}
}

func iterationPlan(name string, allocations ...art.Allocation) art.IterationPlan {
	return art.IterationPlan{
		Iteration:   art.Iteration{ID: name, Name: name},
		Allocations: allocations,
	}
}

func graphFor(plans []art.IterationPlan, edges []art.DependencyEdge) *graph.Graph {
	var items []art.WorkItem
	for _, p := range plans {
		for _, a := range p.Allocations {
			items = append(items, a.Item)
		}
	}
	return graph.Validate(items, edges)
}

func TestGatePassesHealthyIteration(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindStory, "x", 2, true),
		alloc("b", domain.KindStory, "x", 1, true),
	)}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	require.Len(t, reports, 1)
	r := reports[0]
	assert.True(t, r.Deployable)
	assert.Empty(t, r.Errors)
	assert.InDelta(t, 1.0, r.DeploymentReadiness, 1e-9)
}

func TestGateBlocksStoryWithoutAcceptanceCriteria(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindStory, "x", 0, true),
	)}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	r := reports[0]
	assert.False(t, r.Deployable)
	require.NotEmpty(t, r.Errors)
	assert.Contains(t, r.Errors[0], "acceptance criteria")
}

func TestGateWarnsEnablerWithoutAcceptanceCriteria(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindEnabler, "x", 0, true),
	)}

	opts := DefaultOptions()
	opts.MinTestCoverage = 0.5
	reports := ValidateAll(plans, graphFor(plans, nil), opts)

	r := reports[0]
	assert.True(t, r.Deployable, "missing criteria on non-stories only warns")
	assert.NotEmpty(t, r.Warnings)
}

func TestGateCoverageFloor(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindStory, "x", 1, true),
		alloc("b", domain.KindStory, "x", 1, false),
		alloc("c", domain.KindStory, "x", 1, false),
	)}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	r := reports[0]
	assert.False(t, r.Deployable)
	assert.Contains(t, r.Errors[0], "below")
}

func TestGateBorderlineCoverageWarns(t *testing.T) {
	// 4 of 5 tested = 80%: exactly at the floor, inside the borderline band.
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindStory, "x", 1, true),
		alloc("b", domain.KindStory, "x", 1, true),
		alloc("c", domain.KindStory, "x", 1, true),
		alloc("d", domain.KindStory, "x", 1, true),
		alloc("e", domain.KindStory, "x", 1, false),
	)}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	r := reports[0]
	assert.True(t, r.Deployable)
	require.NotEmpty(t, r.Warnings)
	assert.Contains(t, r.Warnings[0], "borderline")
}

func TestGateIntegrationComplexityCeiling(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1",
		alloc("a", domain.KindStory, "x", 1, true),
		alloc("b", domain.KindStory, "y", 1, true),
	)}
	edges := []art.DependencyEdge{
		{Source: "a", Target: "b", Strength: domain.StrengthHard},
	}

	opts := DefaultOptions()
	opts.MaxIntegrationComplexity = 0
	reports := ValidateAll(plans, graphFor(plans, edges), opts)

	r := reports[0]
	assert.False(t, r.Deployable)
	assert.Contains(t, r.Errors[0], "cross-team")
}

func TestGateEmptyIterationIsDeployable(t *testing.T) {
	plans := []art.IterationPlan{iterationPlan("It 1")}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	r := reports[0]
	assert.True(t, r.Deployable)
	assert.InDelta(t, 1.0, r.DeploymentReadiness, 1e-9)
}

func TestGateReportsKeepIterationOrder(t *testing.T) {
	plans := []art.IterationPlan{
		iterationPlan("It 1", alloc("a", domain.KindStory, "x", 1, true)),
		iterationPlan("It 2", alloc("b", domain.KindStory, "x", 1, true)),
		iterationPlan("It 3", alloc("c", domain.KindStory, "x", 1, true)),
	}

	reports := ValidateAll(plans, graphFor(plans, nil), DefaultOptions())

	require.Len(t, reports, 3)
	assert.Equal(t, "It 1", reports[0].Iteration)
	assert.Equal(t, "It 2", reports[1].Iteration)
	assert.Equal(t, "It 3", reports[2].Iteration)
}
