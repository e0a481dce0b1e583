package art

import (
	"time"

	"github.com/artplanhq/artplan/internal/domain"
)

// ProgramIncrement represents the fixed planning horizon being planned
type ProgramIncrement struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`
}

// Days returns the increment length in days (end exclusive).
func (pi ProgramIncrement) Days() int {
	return int(pi.EndDate.Sub(pi.StartDate).Hours() / 24)
}

// WorkItem represents a unit of plannable work.
// Items are immutable once handed to the planning engine; no component
// mutates a caller-supplied item.
type WorkItem struct {
	ID          domain.ItemID   `json:"id" yaml:"id"`
	Kind        domain.ItemKind `json:"kind" yaml:"kind"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Parent      domain.ItemID   `json:"parent,omitempty" yaml:"parent,omitempty"`

	// Estimate is the estimated size in points. Zero means unestimated,
	// which is only acceptable for kinds that don't require one.
	Estimate float64 `json:"estimate,omitempty" yaml:"estimate,omitempty"`

	// Priority is an ordinal where lower means more urgent. Values below 1
	// are treated as DefaultPriority.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`

	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty" yaml:"acceptance_criteria,omitempty"`

	// ValueStream is the explicit stream tag. Empty means untagged; the
	// value analyzer falls back to a heuristic classification.
	ValueStream domain.ValueStream `json:"value_stream,omitempty" yaml:"value_stream,omitempty"`

	// Specialization hints which team tag should pick this item up.
	Specialization string `json:"specialization,omitempty" yaml:"specialization,omitempty"`

	// Tested marks that the item carries a test/verification marker,
	// consumed by the working-software quality gate.
	Tested bool `json:"tested,omitempty" yaml:"tested,omitempty"`

	// Kind-specific fields. At most one of these is set, matching Kind.
	Story   *StoryDetail   `json:"story,omitempty" yaml:"story,omitempty"`
	Enabler *EnablerDetail `json:"enabler,omitempty" yaml:"enabler,omitempty"`
	Feature *FeatureDetail `json:"feature,omitempty" yaml:"feature,omitempty"`

	// Attributes carries truly freeform metadata that no algorithm reads.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// DefaultPriority is applied when an item carries no priority.
const DefaultPriority = 3

// EffectivePriority returns the item's priority with the default applied.
func (w WorkItem) EffectivePriority() int {
	if w.Priority < 1 {
		return DefaultPriority
	}
	return w.Priority
}

// HasEstimate reports whether the item carries a usable size estimate.
func (w WorkItem) HasEstimate() bool {
	return w.Estimate > 0
}

// UserFacing reports whether the item delivers directly user-visible value.
func (w WorkItem) UserFacing() bool {
	return w.Story != nil && w.Story.UserFacing
}

// StoryDetail holds story-specific fields
type StoryDetail struct {
	UserFacing bool `json:"user_facing,omitempty" yaml:"user_facing,omitempty"`
}

// EnablerDetail holds enabler-specific fields
type EnablerDetail struct {
	// Category is the enabler category: infrastructure, architecture,
	// exploration, or compliance.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// FeatureDetail holds feature-specific fields
type FeatureDetail struct {
	Epic string `json:"epic,omitempty" yaml:"epic,omitempty"`
}

// DependencyEdge is a directed relationship source -> target meaning
// "source requires target be done first".
type DependencyEdge struct {
	Source   domain.ItemID             `json:"source" yaml:"source"`
	Target   domain.ItemID             `json:"target" yaml:"target"`
	Strength domain.DependencyStrength `json:"strength" yaml:"strength"`

	// Rationale explains why the dependency exists.
	Rationale string `json:"rationale,omitempty" yaml:"rationale,omitempty"`

	// Confidence is a 0-1 score set when the edge came from heuristic
	// detection rather than manual curation. Zero means curated.
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Team represents a delivery team on the release train
type Team struct {
	ID      domain.TeamID `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Members int           `json:"members" yaml:"members"`

	// AverageVelocity is historical throughput in points per iteration.
	AverageVelocity float64 `json:"average_velocity" yaml:"average_velocity"`

	// VelocityTrend is a multiplier around 1.0 derived from recent
	// throughput. Zero means unknown and is treated as 1.0.
	VelocityTrend float64 `json:"velocity_trend,omitempty" yaml:"velocity_trend,omitempty"`

	Specializations []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`

	// CapacityFactor is the fraction of the team dedicated to this train,
	// in (0, 1].
	CapacityFactor float64 `json:"capacity_factor" yaml:"capacity_factor"`

	// Timezone is informational only.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// HasSpecialization reports whether the team carries the given tag.
func (t Team) HasSpecialization(tag string) bool {
	for _, s := range t.Specializations {
		if s == tag {
			return true
		}
	}
	return false
}

// Iteration is a fixed time box within a program increment
type Iteration struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`
	Goals     []string  `json:"goals,omitempty" yaml:"goals,omitempty"`
}

// Allocation assigns one work item to a team within an iteration
type Allocation struct {
	Item   WorkItem      `json:"item" yaml:"item"`
	Team   domain.TeamID `json:"team" yaml:"team"`
	Points float64       `json:"points" yaml:"points"`
}

// TeamUtilization reports how much of a team's usable capacity one
// iteration consumed.
type TeamUtilization struct {
	Team          domain.TeamID `json:"team" yaml:"team"`
	Capacity      float64       `json:"capacity" yaml:"capacity"`
	Allocated     float64       `json:"allocated" yaml:"allocated"`
	Utilization   float64       `json:"utilization" yaml:"utilization"`
	OverAllocated bool          `json:"over_allocated,omitempty" yaml:"over_allocated,omitempty"`
}

// IterationPlan is the allocator's output for one iteration
type IterationPlan struct {
	Iteration     Iteration         `json:"iteration" yaml:"iteration"`
	Allocations   []Allocation      `json:"allocations" yaml:"allocations"`
	TotalPoints   float64           `json:"total_points" yaml:"total_points"`
	TotalCapacity float64           `json:"total_capacity" yaml:"total_capacity"`
	Utilization   []TeamUtilization `json:"utilization" yaml:"utilization"`
	RiskLevel     domain.RiskLevel  `json:"risk_level" yaml:"risk_level"`
}

// Allocated reports whether the given item was placed in this iteration.
func (p IterationPlan) Allocated(id domain.ItemID) bool {
	for _, a := range p.Allocations {
		if a.Item.ID == id {
			return true
		}
	}
	return false
}

// TeamFor returns the team an item was assigned to, if placed here.
func (p IterationPlan) TeamFor(id domain.ItemID) (domain.TeamID, bool) {
	for _, a := range p.Allocations {
		if a.Item.ID == id {
			return a.Team, true
		}
	}
	return "", false
}

// UnallocatedItem records an item the allocator could not place, with
// the reason. Unplaced items are reported, never silently dropped.
type UnallocatedItem struct {
	Item   WorkItem `json:"item" yaml:"item"`
	Reason string   `json:"reason" yaml:"reason"`
}

// Reasons for unallocated items
const (
	ReasonOversized           = "estimate exceeds every team's usable capacity for a full iteration"
	ReasonIterationsExhausted = "all iterations exhausted before the item could be placed"
)

// PlanningInput bundles everything the planning engine consumes.
// All fields are treated as immutable snapshots for the duration of a run.
type PlanningInput struct {
	Increment ProgramIncrement `json:"increment" yaml:"increment"`
	Items     []WorkItem       `json:"items" yaml:"items"`
	Edges     []DependencyEdge `json:"edges,omitempty" yaml:"edges,omitempty"`
	Teams     []Team           `json:"teams" yaml:"teams"`
}
