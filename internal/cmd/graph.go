package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/graph"
	"github.com/artplanhq/artplan/internal/ux"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the dependency graph",
	Long: `Validate the dependency graph of a planning input and report cycles,
the critical path, and aggregate statistics without running a full
planning pass. Useful for debugging rejected inputs.`,
	RunE: runGraph,
}

var graphInput string

func init() {
	graphCmd.Flags().StringVarP(&graphInput, "input", "i", "", "planning input file (default: discovered input.yaml)")

	rootCmd.AddCommand(graphCmd)
}

// graphReport is the command's output shape across all formats.
type graphReport struct {
	Validation   graph.Validation `json:"validation" yaml:"validation"`
	Cycles       []graph.Cycle    `json:"cycles,omitempty" yaml:"cycles,omitempty"`
	CriticalPath []string         `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
	PathPoints   float64          `json:"critical_path_points" yaml:"critical_path_points"`
	Stats        graph.Stats      `json:"stats" yaml:"stats"`
}

func (r graphReport) RenderText() string {
	var b strings.Builder

	if r.Validation.IsValid {
		b.WriteString("graph is valid\n")
	} else {
		b.WriteString("graph is INVALID\n")
		for _, issue := range r.Validation.Issues {
			fmt.Fprintf(&b, "  error: %s\n", issue)
		}
	}
	for _, w := range r.Validation.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}

	if len(r.Cycles) > 0 {
		b.WriteString("\ncycles:\n")
		for _, c := range r.Cycles {
			fmt.Fprintf(&b, "  [%s] %s\n", c.Severity, c.String())
		}
	}

	if len(r.CriticalPath) > 0 {
		fmt.Fprintf(&b, "\ncritical path (%.1f pts): %s\n",
			r.PathPoints, strings.Join(r.CriticalPath, " -> "))
	}

	fmt.Fprintf(&b, "\n%d items, %d edges (%d hard, %d soft), avg fan-out %.2f\n",
		r.Stats.Nodes, r.Stats.Edges, r.Stats.HardEdges, r.Stats.SoftEdges,
		r.Stats.AverageFanOut)

	return strings.TrimRight(b.String(), "\n")
}

func runGraph(cmd *cobra.Command, args []string) error {
	input, err := art.LoadInput(ux.ResolveInputPath(graphInput))
	if err != nil {
		return ux.EnhanceError(err)
	}

	g := graph.Validate(input.Items, input.Edges)

	report := graphReport{
		Validation: g.Validation,
		Cycles:     g.Cycles,
		PathPoints: g.CriticalPathPoints,
		Stats:      g.Stats,
	}
	for _, id := range g.CriticalPath {
		report.CriticalPath = append(report.CriticalPath, id.String())
	}

	formatter, err := ux.NewFormatter(outputFormat, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(report)
}
