package art

import (
	"fmt"
	"strings"

	"github.com/artplanhq/artplan/internal/errors"
)

// FieldIssue identifies one offending field in the planning input.
type FieldIssue struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationError collects every offending field found in a planning
// input, not just the first.
type ValidationError struct {
	Issues []FieldIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("planning input has %d validation issue(s):", len(e.Issues)))
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

// add records an issue against a field.
func (e *ValidationError) add(field, format string, args ...any) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the whole planning input and returns a PlanError
// wrapping a ValidationError when anything is malformed. All checks run;
// the result lists every offending field.
func (in *PlanningInput) Validate() error {
	ve := &ValidationError{}

	validateIncrement(in.Increment, ve)

	seen := make(map[string]bool, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		validateItem(item, field, ve)
		key := item.ID.String()
		if key != "" {
			if seen[key] {
				ve.add(field+".id", "duplicate work item ID %q", key)
			}
			seen[key] = true
		}
	}

	for i, edge := range in.Edges {
		field := fmt.Sprintf("edges[%d]", i)
		validateEdge(edge, field, seen, ve)
	}

	teamSeen := make(map[string]bool, len(in.Teams))
	for i, team := range in.Teams {
		field := fmt.Sprintf("teams[%d]", i)
		validateTeam(team, field, ve)
		key := team.ID.String()
		if key != "" {
			if teamSeen[key] {
				ve.add(field+".id", "duplicate team ID %q", key)
			}
			teamSeen[key] = true
		}
	}

	if len(ve.Issues) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInputInvalid, "invalid planning input", ve).
		WithSuggestion("Fix every listed field and re-run the plan")
}

func validateIncrement(pi ProgramIncrement, ve *ValidationError) {
	if strings.TrimSpace(pi.ID) == "" {
		ve.add("increment.id", "cannot be empty")
	}
	if strings.TrimSpace(pi.Name) == "" {
		ve.add("increment.name", "cannot be empty")
	}
	if pi.StartDate.IsZero() {
		ve.add("increment.start_date", "cannot be unset")
	}
	if pi.EndDate.IsZero() {
		ve.add("increment.end_date", "cannot be unset")
	}
	if !pi.StartDate.IsZero() && !pi.EndDate.IsZero() && !pi.EndDate.After(pi.StartDate) {
		ve.add("increment.end_date", "must be after start_date (%s .. %s)",
			pi.StartDate.Format("2006-01-02"), pi.EndDate.Format("2006-01-02"))
	}
}

func validateItem(item WorkItem, field string, ve *ValidationError) {
	if err := item.ID.Validate(); err != nil {
		ve.add(field+".id", "%v", err)
	}
	if err := item.Kind.Validate(); err != nil {
		ve.add(field+".kind", "%v", err)
	}
	if strings.TrimSpace(item.Title) == "" {
		ve.add(field+".title", "cannot be empty")
	}
	if item.Estimate < 0 {
		ve.add(field+".estimate", "cannot be negative, got %g", item.Estimate)
	}
	if item.Kind.RequiresEstimate() && !item.HasEstimate() {
		ve.add(field+".estimate", "required for %s items", item.Kind)
	}
	if item.ValueStream != "" {
		if err := item.ValueStream.Validate(); err != nil {
			ve.add(field+".value_stream", "%v", err)
		}
	}
	for j, criterion := range item.AcceptanceCriteria {
		if strings.TrimSpace(criterion) == "" {
			ve.add(fmt.Sprintf("%s.acceptance_criteria[%d]", field, j), "cannot be empty")
		}
	}
}

func validateEdge(edge DependencyEdge, field string, items map[string]bool, ve *ValidationError) {
	if err := edge.Source.Validate(); err != nil {
		ve.add(field+".source", "%v", err)
	} else if !items[edge.Source.String()] {
		ve.add(field+".source", "references unknown work item %q", edge.Source)
	}
	if err := edge.Target.Validate(); err != nil {
		ve.add(field+".target", "%v", err)
	} else if !items[edge.Target.String()] {
		ve.add(field+".target", "references unknown work item %q", edge.Target)
	}
	if edge.Source != "" && edge.Source == edge.Target {
		ve.add(field, "item %q cannot depend on itself", edge.Source)
	}
	if err := edge.Strength.Validate(); err != nil {
		ve.add(field+".strength", "%v", err)
	}
	if edge.Confidence < 0 || edge.Confidence > 1 {
		ve.add(field+".confidence", "must be within [0, 1], got %g", edge.Confidence)
	}
}

func validateTeam(team Team, field string, ve *ValidationError) {
	if err := team.ID.Validate(); err != nil {
		ve.add(field+".id", "%v", err)
	}
	if strings.TrimSpace(team.Name) == "" {
		ve.add(field+".name", "cannot be empty")
	}
	if team.Members < 0 {
		ve.add(field+".members", "cannot be negative, got %d", team.Members)
	}
	if team.AverageVelocity < 0 {
		ve.add(field+".average_velocity", "cannot be negative, got %g", team.AverageVelocity)
	}
	if team.VelocityTrend < 0 {
		ve.add(field+".velocity_trend", "cannot be negative, got %g", team.VelocityTrend)
	}
	if team.CapacityFactor <= 0 || team.CapacityFactor > 1 {
		ve.add(field+".capacity_factor", "must be within (0, 1], got %g", team.CapacityFactor)
	}
}
