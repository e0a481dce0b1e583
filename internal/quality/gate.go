// Package quality runs the working-software gate over iteration plans:
// it confirms each iteration's output is deployable, not just "coded".
package quality

import (
	"fmt"
	"sync"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/domain"
	"github.com/artplanhq/artplan/internal/graph"
)

// Defaults for the quality gate thresholds
const (
	DefaultMinAcceptanceCriteria    = 1
	DefaultMinTestCoverage          = 0.8
	DefaultMaxIntegrationComplexity = 5

	// borderlineBand is the margin above the coverage floor that still
	// earns a warning.
	borderlineBand = 0.1
)

// Options configures the quality gate
type Options struct {
	// MinAcceptanceCriteria is the minimum acceptance-criteria count
	// per allocated item.
	MinAcceptanceCriteria int `json:"min_acceptance_criteria" yaml:"min_acceptance_criteria"`

	// MinTestCoverage is the required fraction of the iteration's items
	// carrying a test/verification marker.
	MinTestCoverage float64 `json:"min_test_coverage" yaml:"min_test_coverage"`

	// MaxIntegrationComplexity caps the cross-team dependencies
	// realized in one iteration.
	MaxIntegrationComplexity int `json:"max_integration_complexity" yaml:"max_integration_complexity"`
}

// DefaultOptions returns the documented gate defaults
func DefaultOptions() Options {
	return Options{
		MinAcceptanceCriteria:    DefaultMinAcceptanceCriteria,
		MinTestCoverage:          DefaultMinTestCoverage,
		MaxIntegrationComplexity: DefaultMaxIntegrationComplexity,
	}
}

// CheckResult represents the result of a single quality check
type CheckResult struct {
	Name    string `json:"name" yaml:"name"`
	Passed  bool   `json:"passed" yaml:"passed"`
	Message string `json:"message" yaml:"message"`
}

// Report is the gate outcome for one iteration. The plan itself is
// never mutated.
type Report struct {
	Iteration string        `json:"iteration" yaml:"iteration"`
	Checks    []CheckResult `json:"checks" yaml:"checks"`
	Errors    []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// DeploymentReadiness is a 0-1 score over the gate categories.
	DeploymentReadiness float64 `json:"deployment_readiness" yaml:"deployment_readiness"`

	// Deployable is true when no blocking error was found.
	Deployable bool `json:"deployable" yaml:"deployable"`
}

// assignments maps every allocated item to its team across the whole
// plan, used to spot cross-team dependencies.
type assignments map[domain.ItemID]domain.TeamID

func collectAssignments(plans []art.IterationPlan) assignments {
	a := make(assignments)
	for _, plan := range plans {
		for _, alloc := range plan.Allocations {
			a[alloc.Item.ID] = alloc.Team
		}
	}
	return a
}

// ValidateAll gates every iteration. Iterations share no state, so the
// checks run concurrently; results land in an indexed slice to keep the
// output deterministic.
func ValidateAll(plans []art.IterationPlan, g *graph.Graph, opts Options) []Report {
	assigned := collectAssignments(plans)
	reports := make([]Report, len(plans))

	var wg sync.WaitGroup
	for i := range plans {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = validateIteration(plans[i], g, assigned, opts)
		}(i)
	}
	wg.Wait()

	return reports
}

// validateIteration gates a single iteration plan.
func validateIteration(plan art.IterationPlan, g *graph.Graph, assigned assignments, opts Options) Report {
	report := Report{Iteration: plan.Iteration.Name}

	acScore := checkAcceptanceCriteria(plan, opts, &report)
	coverageScore := checkTestCoverage(plan, opts, &report)
	complexityScore := checkIntegrationComplexity(plan, g, assigned, opts, &report)

	report.DeploymentReadiness = (acScore + coverageScore + complexityScore) / 3
	report.Deployable = len(report.Errors) == 0

	return report
}

// checkAcceptanceCriteria verifies every allocated item meets the
// minimum acceptance-criteria count. Missing criteria on stories block;
// other kinds warn.
func checkAcceptanceCriteria(plan art.IterationPlan, opts Options, report *Report) float64 {
	if len(plan.Allocations) == 0 {
		report.pass("acceptance criteria", "no allocated items")
		return 1
	}

	meeting := 0
	for _, a := range plan.Allocations {
		if len(a.Item.AcceptanceCriteria) >= opts.MinAcceptanceCriteria {
			meeting++
			continue
		}
		msg := fmt.Sprintf("item %s has %d acceptance criteria, minimum is %d",
			a.Item.ID, len(a.Item.AcceptanceCriteria), opts.MinAcceptanceCriteria)
		if a.Item.Kind == domain.KindStory {
			report.Errors = append(report.Errors, msg)
		} else {
			report.Warnings = append(report.Warnings, msg)
		}
	}

	score := float64(meeting) / float64(len(plan.Allocations))
	if meeting == len(plan.Allocations) {
		report.pass("acceptance criteria", "all items meet the minimum")
	} else {
		report.failCheck("acceptance criteria", fmt.Sprintf("%d of %d items meet the minimum",
			meeting, len(plan.Allocations)))
	}
	return score
}

// checkTestCoverage verifies enough of the iteration's items carry a
// test/verification marker.
func checkTestCoverage(plan art.IterationPlan, opts Options, report *Report) float64 {
	if len(plan.Allocations) == 0 {
		report.pass("test coverage", "no allocated items")
		return 1
	}

	tested := 0
	for _, a := range plan.Allocations {
		if a.Item.Tested {
			tested++
		}
	}
	coverage := float64(tested) / float64(len(plan.Allocations))

	switch {
	case coverage < opts.MinTestCoverage:
		report.Errors = append(report.Errors, fmt.Sprintf(
			"test coverage %.0f%% is below the %.0f%% floor",
			coverage*100, opts.MinTestCoverage*100))
		report.failCheck("test coverage", fmt.Sprintf("%d of %d items tested", tested, len(plan.Allocations)))
	case coverage < opts.MinTestCoverage+borderlineBand:
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"test coverage %.0f%% is borderline (floor %.0f%%)",
			coverage*100, opts.MinTestCoverage*100))
		report.pass("test coverage", "coverage is borderline but above the floor")
	default:
		report.pass("test coverage", fmt.Sprintf("%d of %d items tested", tested, len(plan.Allocations)))
	}

	return coverage
}

// checkIntegrationComplexity counts cross-team dependencies realized in
// this iteration: edges whose source is allocated here while the target
// landed on a different team.
func checkIntegrationComplexity(plan art.IterationPlan, g *graph.Graph, assigned assignments,
	opts Options, report *Report) float64 {

	crossTeam := 0
	for _, a := range plan.Allocations {
		for _, dep := range g.HardDependencies(a.Item.ID) {
			depTeam, ok := assigned[dep]
			if ok && depTeam != a.Team {
				crossTeam++
			}
		}
	}

	if crossTeam > opts.MaxIntegrationComplexity {
		report.Errors = append(report.Errors, fmt.Sprintf(
			"%d cross-team dependencies exceed the ceiling of %d",
			crossTeam, opts.MaxIntegrationComplexity))
		report.failCheck("integration complexity", fmt.Sprintf("%d cross-team dependencies", crossTeam))
		if crossTeam > 0 {
			return float64(opts.MaxIntegrationComplexity) / float64(crossTeam)
		}
		return 0
	}

	report.pass("integration complexity", fmt.Sprintf("%d cross-team dependencies", crossTeam))
	return 1
}

func (r *Report) pass(name, message string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Passed: true, Message: message})
}

func (r *Report) failCheck(name, message string) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Passed: false, Message: message})
}
