package art

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validInput() *PlanningInput {
	return &PlanningInput{
		Increment: ProgramIncrement{
			ID:        "pi-2024-1",
			Name:      "PI 2024.1",
			StartDate: date(2024, time.January, 1),
			EndDate:   date(2024, time.March, 31),
		},
		Items: []WorkItem{
			{
				ID:                 "PROJ-1",
				Kind:               domain.KindStory,
				Title:              "Login flow",
				Estimate:           8,
				Priority:           1,
				AcceptanceCriteria: []string{"user can log in"},
				Story:              &StoryDetail{UserFacing: true},
			},
			{
				ID:       "PROJ-2",
				Kind:     domain.KindEnabler,
				Title:    "Auth service scaffolding",
				Estimate: 5,
				Enabler:  &EnablerDetail{Category: "infrastructure"},
			},
		},
		Edges: []DependencyEdge{
			{Source: "PROJ-1", Target: "PROJ-2", Strength: domain.StrengthHard},
		},
		Teams: []Team{
			{ID: "team-a", Name: "Team A", Members: 5, AverageVelocity: 12.5, CapacityFactor: 1.0},
		},
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	require.NoError(t, validInput().Validate())
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	in := validInput()
	in.Increment.EndDate = in.Increment.StartDate // zero duration
	in.Items[0].Estimate = -3                     // negative size
	in.Edges = append(in.Edges, DependencyEdge{   // unknown endpoints
		Source: "PROJ-404", Target: "PROJ-405", Strength: domain.StrengthHard,
	})

	err := in.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputInvalid))

	var ve *ValidationError
	pe, ok := errors.AsPlanError(err)
	require.True(t, ok)
	ve, ok = pe.Cause.(*ValidationError)
	require.True(t, ok, "cause should be a ValidationError")

	// One failing run reports all offending fields, not just the first.
	assert.GreaterOrEqual(t, len(ve.Issues), 4)
	msg := err.Error()
	assert.Contains(t, msg, "increment.end_date")
	assert.Contains(t, msg, "items[0].estimate")
	assert.Contains(t, msg, "PROJ-404")
	assert.Contains(t, msg, "PROJ-405")
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	in := validInput()
	in.Items = append(in.Items, in.Items[0])

	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate work item ID "PROJ-1"`)
}

func TestValidateRejectsSelfEdge(t *testing.T) {
	in := validInput()
	in.Edges = []DependencyEdge{
		{Source: "PROJ-1", Target: "PROJ-1", Strength: domain.StrengthHard},
	}

	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot depend on itself")
}

func TestValidateRejectsUnestimatedStory(t *testing.T) {
	in := validInput()
	in.Items[0].Estimate = 0

	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required for story items")
}

func TestValidateTeamBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Team)
		want   string
	}{
		{"zero capacity factor", func(tm *Team) { tm.CapacityFactor = 0 }, "capacity_factor"},
		{"factor above one", func(tm *Team) { tm.CapacityFactor = 1.5 }, "capacity_factor"},
		{"negative velocity", func(tm *Team) { tm.AverageVelocity = -1 }, "average_velocity"},
		{"negative members", func(tm *Team) { tm.Members = -2 }, "members"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in.Teams[0])
			err := in.Validate()
			require.Error(t, err)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
		})
	}
}

func TestEffectivePriorityDefault(t *testing.T) {
	item := WorkItem{}
	assert.Equal(t, DefaultPriority, item.EffectivePriority())

	item.Priority = 1
	assert.Equal(t, 1, item.EffectivePriority())
}

func TestIncrementDays(t *testing.T) {
	pi := ProgramIncrement{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 31),
	}
	assert.Equal(t, 90, pi.Days())
}
