package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/iteration"
	"github.com/artplanhq/artplan/internal/ux"
)

var iterationsCmd = &cobra.Command{
	Use:   "iterations",
	Short: "Preview the iteration structure",
	Long: `Slice a Program Increment into iterations without allocating any work.
Shows how the increment's days map onto time boxes, including the
remainder days absorbed by the final iteration.`,
	RunE: runIterations,
}

var (
	iterationsInput  string
	iterationsLength int
)

func init() {
	iterationsCmd.Flags().StringVarP(&iterationsInput, "input", "i", "", "planning input file (default: discovered input.yaml)")
	iterationsCmd.Flags().IntVar(&iterationsLength, "length", iteration.DefaultLengthDays, "iteration length in days")

	rootCmd.AddCommand(iterationsCmd)
}

type iterationsReport struct {
	Increment  string          `json:"increment" yaml:"increment"`
	TotalDays  int             `json:"total_days" yaml:"total_days"`
	Length     int             `json:"length_days" yaml:"length_days"`
	Iterations []art.Iteration `json:"iterations" yaml:"iterations"`
}

func (r iterationsReport) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d days in %d iterations of %d days\n",
		r.Increment, r.TotalDays, len(r.Iterations), r.Length)
	for i, it := range r.Iterations {
		days := int(it.EndDate.Sub(it.StartDate).Hours()/24) + 1
		fmt.Fprintf(&b, "  %d. %s  %s to %s (%d days)\n",
			i+1, it.Name,
			it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02"), days)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runIterations(cmd *cobra.Command, args []string) error {
	input, err := art.LoadInput(ux.ResolveInputPath(iterationsInput))
	if err != nil {
		return ux.EnhanceError(err)
	}

	iterations, err := iteration.Generate(input.Increment, iterationsLength)
	if err != nil {
		return err
	}

	report := iterationsReport{
		Increment:  input.Increment.Name,
		TotalDays:  input.Increment.Days(),
		Length:     iterationsLength,
		Iterations: iterations,
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
