package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/artplanhq/artplan/internal/planner"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	readyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	notReadyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// RenderPlan renders a human-readable plan summary. Colors are dropped
// when noColor is set.
func RenderPlan(plan *planner.ARTPlan, noColor bool) string {
	style := func(s lipgloss.Style, text string) string {
		if noColor {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder

	fmt.Fprintln(&b, style(titleStyle, plan.Increment.Name))
	fmt.Fprintf(&b, "%s to %s, %d iterations\n\n",
		plan.Increment.StartDate.Format("2006-01-02"),
		plan.Increment.EndDate.Format("2006-01-02"),
		plan.Summary.Iterations)

	s := plan.Summary
	fmt.Fprintln(&b, style(sectionStyle, "Summary"))
	fmt.Fprintf(&b, "  allocated items:     %d\n", s.AllocatedItems)
	fmt.Fprintf(&b, "  unallocated items:   %d\n", s.UnallocatedItems)
	fmt.Fprintf(&b, "  total points:        %.1f of %.1f usable\n", s.TotalPoints, s.TotalCapacity)
	fmt.Fprintf(&b, "  average utilization: %.0f%%\n", s.AverageUtilization*100)
	fmt.Fprintf(&b, "  value confidence:    %.0f%%\n", s.Confidence*100)

	readiness := fmt.Sprintf("  readiness:           %.2f", s.ReadinessScore)
	if s.IsReady {
		fmt.Fprintln(&b, style(readyStyle, readiness+" (ready)"))
	} else {
		fmt.Fprintln(&b, style(notReadyStyle, readiness+" (not ready)"))
	}
	b.WriteString("\n")

	fmt.Fprintln(&b, style(sectionStyle, "Iterations"))
	for i, it := range plan.Iterations {
		line := fmt.Sprintf("  %d. %-28s %2d items  %5.1f pts  %3.0f%%  risk %s",
			i+1, it.Iteration.Name, len(it.Allocations), it.TotalPoints,
			safeRatio(it.TotalPoints, it.TotalCapacity)*100, it.RiskLevel)
		fmt.Fprintln(&b, line)
	}

	if len(plan.Unallocated) > 0 {
		b.WriteString("\n")
		fmt.Fprintln(&b, style(warnStyle, "Unallocated"))
		for _, u := range plan.Unallocated {
			fmt.Fprintf(&b, "  %s (%.1f pts): %s\n", u.Item.ID, u.Item.Estimate, u.Reason)
		}
	}

	if len(plan.Readiness.Findings) > 0 {
		b.WriteString("\n")
		fmt.Fprintln(&b, style(sectionStyle, "Findings"))
		for _, f := range plan.Readiness.Findings {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", style(dimStyle, "fingerprint "+plan.Fingerprint))

	return strings.TrimRight(b.String(), "\n")
}

func safeRatio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
