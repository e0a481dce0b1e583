package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/graph"
)

func item(id string, priority int, estimate float64) art.WorkItem {
	return art.WorkItem{
		ID:       domain.ItemID(id),
		Kind:     domain.KindStory,
		Title:    "Item " + id,
		Priority: priority,
		Estimate: estimate,
	}
}

func edge(source, target string, strength domain.DependencyStrength) art.DependencyEdge {
	return art.DependencyEdge{
		Source:   domain.ItemID(source),
		Target:   domain.ItemID(target),
		Strength: strength,
	}
}

func ids(items []art.WorkItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID.String()
	}
	return out
}

func TestSequenceRespectsHardDependencies(t *testing.T) {
	items := []art.WorkItem{
		item("app", 1, 8),
		item("db", 2, 5),
		item("infra", 3, 3),
	}
	edges := []art.DependencyEdge{
		edge("app", "db", domain.StrengthHard),
		edge("db", "infra", domain.StrengthHard),
	}

	ordered, err := Sequence(graph.Validate(items, edges))
	require.NoError(t, err)

	assert.Equal(t, []string{"infra", "db", "app"}, ids(ordered))
}

func TestSequenceTieBreaks(t *testing.T) {
	// No dependencies: order by priority asc, size desc, ID asc.
	items := []art.WorkItem{
		item("c", 2, 5),
		item("b", 1, 3),
		item("a", 1, 8),
		item("d", 1, 3),
	}

	ordered, err := Sequence(graph.Validate(items, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(ordered))
}

func TestSequenceSoftEdgesDoNotGate(t *testing.T) {
	items := []art.WorkItem{
		item("a", 1, 5),
		item("b", 2, 5),
	}
	// a soft-depends on b; a still sequences first on priority.
	edges := []art.DependencyEdge{edge("a", "b", domain.StrengthSoft)}

	ordered, err := Sequence(graph.Validate(items, edges))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ids(ordered))
}

func TestSequenceRejectsInvalidGraph(t *testing.T) {
	items := []art.WorkItem{item("a", 1, 2), item("b", 1, 2)}
	edges := []art.DependencyEdge{
		edge("a", "b", domain.StrengthHard),
		edge("b", "a", domain.StrengthHard),
	}

	_, err := Sequence(graph.Validate(items, edges))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeGraphNotValidated))
}

func TestSequenceDeterminism(t *testing.T) {
	items := []art.WorkItem{
		item("e", 2, 1), item("d", 1, 4), item("c", 1, 4),
		item("b", 3, 9), item("a", 2, 6),
	}
	edges := []art.DependencyEdge{
		edge("b", "c", domain.StrengthHard),
		edge("a", "d", domain.StrengthHard),
	}

	first, err := Sequence(graph.Validate(items, edges))
	require.NoError(t, err)
	second, err := Sequence(graph.Validate(items, edges))
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
}

func TestSequenceDiamond(t *testing.T) {
	// top depends on left and right, both depend on base.
	items := []art.WorkItem{
		item("top", 1, 5), item("left", 1, 3),
		item("right", 1, 3), item("base", 2, 2),
	}
	edges := []art.DependencyEdge{
		edge("top", "left", domain.StrengthHard),
		edge("top", "right", domain.StrengthHard),
		edge("left", "base", domain.StrengthHard),
		edge("right", "base", domain.StrengthHard),
	}

	ordered, err := Sequence(graph.Validate(items, edges))
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "left", "right", "top"}, ids(ordered))
}
