package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
)

func story(id string, estimate float64) art.WorkItem {
	return art.WorkItem{
		ID:       domain.ItemID(id),
		Kind:     domain.KindStory,
		Title:    "Story " + id,
		Estimate: estimate,
	}
}

func hard(source, target string) art.DependencyEdge {
	return art.DependencyEdge{
		Source:   domain.ItemID(source),
		Target:   domain.ItemID(target),
		Strength: domain.StrengthHard,
	}
}

func soft(source, target string) art.DependencyEdge {
	return art.DependencyEdge{
		Source:   domain.ItemID(source),
		Target:   domain.ItemID(target),
		Strength: domain.StrengthSoft,
	}
}

func TestValidateLinearChain(t *testing.T) {
	items := []art.WorkItem{story("a", 3), story("b", 5), story("c", 8)}
	edges := []art.DependencyEdge{hard("c", "b"), hard("b", "a")}

	g := Validate(items, edges)

	require.True(t, g.IsValid())
	assert.Empty(t, g.Cycles)
	assert.Equal(t, []domain.ItemID{"b"}, g.HardDependencies("c"))
	assert.Equal(t, []domain.ItemID{"c"}, g.Dependents("b"))
}

func TestValidateDetectsHardCycle(t *testing.T) {
	items := []art.WorkItem{story("a", 1), story("b", 1)}
	edges := []art.DependencyEdge{hard("a", "b"), hard("b", "a")}

	g := Validate(items, edges)

	require.False(t, g.IsValid())
	require.Len(t, g.Cycles, 1)
	assert.Equal(t, SeverityError, g.Cycles[0].Severity)
	assert.Len(t, g.Cycles[0].Items, 2)
}

func TestValidateSoftCycleIsWarningOnly(t *testing.T) {
	items := []art.WorkItem{story("a", 1), story("b", 1)}
	edges := []art.DependencyEdge{soft("a", "b"), soft("b", "a")}

	g := Validate(items, edges)

	require.True(t, g.IsValid(), "soft-only cycles must not invalidate the graph")
	require.Len(t, g.Cycles, 1)
	assert.Equal(t, SeverityWarning, g.Cycles[0].Severity)
	assert.NotEmpty(t, g.Validation.Warnings)
}

func TestValidateMixedCycleIsWarning(t *testing.T) {
	// A cycle that needs a soft edge to close never blocks allocation.
	items := []art.WorkItem{story("a", 1), story("b", 1)}
	edges := []art.DependencyEdge{hard("a", "b"), soft("b", "a")}

	g := Validate(items, edges)

	require.True(t, g.IsValid())
	require.Len(t, g.Cycles, 1)
	assert.Equal(t, SeverityWarning, g.Cycles[0].Severity)
}

func TestValidateUnknownEndpoints(t *testing.T) {
	items := []art.WorkItem{story("a", 1)}
	edges := []art.DependencyEdge{hard("a", "ghost")}

	g := Validate(items, edges)

	require.False(t, g.IsValid())
	assert.Contains(t, g.Validation.Issues[0], "ghost")
}

func TestValidateRejectsBadEstimates(t *testing.T) {
	negative := story("a", 1)
	negative.Estimate = -2
	unestimated := story("b", 0)

	g := Validate([]art.WorkItem{negative, unestimated}, nil)

	require.False(t, g.IsValid())
	assert.Len(t, g.Validation.Issues, 2)
}

func TestCriticalPathPicksHeaviestChain(t *testing.T) {
	// d -> b -> a (weight 3+5+2=10) beats d -> c (2+4=6).
	items := []art.WorkItem{story("a", 3), story("b", 5), story("c", 4), story("d", 2)}
	edges := []art.DependencyEdge{hard("b", "a"), hard("d", "b"), hard("d", "c")}

	g := Validate(items, edges)

	require.True(t, g.IsValid())
	assert.Equal(t, []domain.ItemID{"a", "b", "d"}, g.CriticalPath)
	assert.InDelta(t, 10.0, g.CriticalPathPoints, 1e-9)
}

func TestCriticalPathIgnoresSoftEdges(t *testing.T) {
	items := []art.WorkItem{story("a", 3), story("b", 5)}
	edges := []art.DependencyEdge{soft("b", "a")}

	g := Validate(items, edges)

	// No hard chain: the heaviest single item wins.
	assert.Equal(t, []domain.ItemID{"b"}, g.CriticalPath)
	assert.InDelta(t, 5.0, g.CriticalPathPoints, 1e-9)
}

func TestCriticalPathDeterministicTieBreak(t *testing.T) {
	items := []art.WorkItem{story("x", 5), story("y", 5)}

	g := Validate(items, nil)

	// Equal weights: the smaller ID wins.
	assert.Equal(t, []domain.ItemID{"x"}, g.CriticalPath)
}

func TestStats(t *testing.T) {
	items := []art.WorkItem{story("a", 1), story("b", 2), story("c", 3)}
	edges := []art.DependencyEdge{hard("b", "a"), soft("c", "a")}

	g := Validate(items, edges)

	assert.Equal(t, 3, g.Stats.Nodes)
	assert.Equal(t, 2, g.Stats.Edges)
	assert.Equal(t, 1, g.Stats.HardEdges)
	assert.Equal(t, 1, g.Stats.SoftEdges)
	assert.InDelta(t, 2.0/3.0, g.Stats.AverageFanOut, 1e-9)
	assert.Equal(t, []domain.ItemID{"a"}, g.Stats.RootItems)
}

func TestEmptyGraph(t *testing.T) {
	g := Validate(nil, nil)

	require.True(t, g.IsValid())
	assert.Equal(t, 0, g.Stats.Nodes)
	assert.Empty(t, g.CriticalPath)
}

func TestItemsPreserveInputOrder(t *testing.T) {
	items := []art.WorkItem{story("z", 1), story("a", 1), story("m", 1)}

	g := Validate(items, nil)

	got := g.Items()
	require.Len(t, got, 3)
	assert.Equal(t, domain.ItemID("z"), got[0].ID)
	assert.Equal(t, domain.ItemID("a"), got[1].ID)
	assert.Equal(t, domain.ItemID("m"), got[2].ID)
}
