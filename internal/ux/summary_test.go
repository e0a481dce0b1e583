package ux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/planner"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func summaryPlan(t *testing.T) *planner.ARTPlan {
	t.Helper()
	input := &art.PlanningInput{
		Increment: art.ProgramIncrement{
			ID: "pi-1", Name: "PI 2024.1",
			StartDate: day("2024-01-01"), EndDate: day("2024-03-31"),
		},
		Items: []art.WorkItem{
			{
				ID: "story-1", Kind: domain.KindStory, Title: "Checkout",
				Estimate: 8, AcceptanceCriteria: []string{"works"},
			},
			{
				ID: "story-huge", Kind: domain.KindStory, Title: "Everything",
				Estimate: 99, AcceptanceCriteria: []string{"done"},
			},
		},
		Teams: []art.Team{
			{ID: "alpha", Name: "Alpha", Members: 5, AverageVelocity: 12.5, CapacityFactor: 1},
		},
	}
	plan, err := planner.PlanART(input, planner.DefaultConfig())
	require.NoError(t, err)
	return plan
}

func TestRenderPlan(t *testing.T) {
	plan := summaryPlan(t)

	out := RenderPlan(plan, true)

	assert.Contains(t, out, "PI 2024.1")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Iterations")
	assert.Contains(t, out, "Unallocated")
	assert.Contains(t, out, "story-huge")
	assert.Contains(t, out, "fingerprint "+plan.Fingerprint)
}

func TestRenderPlanNoColorHasNoEscapes(t *testing.T) {
	plan := summaryPlan(t)

	out := RenderPlan(plan, true)

	assert.NotContains(t, out, "\x1b[", "no ANSI escapes with colors off")
}
