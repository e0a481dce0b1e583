package cmd

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/graph"
	"github.com/artplanhq/artplan/internal/ux"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a planning input",
	Long: `Check a planning input for structural problems without producing a
plan: missing fields, duplicate identifiers, unknown dependency targets,
and hard dependency cycles. Exits non-zero when the input cannot be
planned.`,
	RunE: runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "planning input file (default: discovered input.yaml)")

	rootCmd.AddCommand(validateCmd)
}

// validateReport is the command's output shape across all formats.
type validateReport struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Items    int      `json:"items" yaml:"items"`
	Edges    int      `json:"edges" yaml:"edges"`
	Teams    int      `json:"teams" yaml:"teams"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func (r validateReport) RenderText() string {
	var b strings.Builder

	if r.Valid {
		b.WriteString("input is valid\n")
	} else {
		b.WriteString("input is INVALID\n")
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}

	fmt.Fprintf(&b, "\n%d items, %d edges, %d teams\n", r.Items, r.Edges, r.Teams)

	return strings.TrimRight(b.String(), "\n")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := art.LoadInput(ux.ResolveInputPath(validateInput))
	if err != nil {
		return ux.EnhanceError(err)
	}

	report := validateReport{
		Valid: true,
		Items: len(input.Items),
		Edges: len(input.Edges),
		Teams: len(input.Teams),
	}

	var planErr error
	if err := input.Validate(); err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, flattenIssues(err)...)
		planErr = err
	} else {
		g := graph.Validate(input.Items, input.Edges)
		report.Errors = append(report.Errors, g.Validation.Issues...)
		report.Warnings = append(report.Warnings, g.Validation.Warnings...)
		if !g.Validation.IsValid {
			report.Valid = false
			planErr = errors.New(errors.ErrCodeGraphInvalid,
				"dependency graph failed validation").
				WithSuggestion("Run 'artplan graph' for cycle and critical path details")
		}
	}

	formatter, err := ux.NewFormatter(outputFormat, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(report); err != nil {
		return err
	}
	return planErr
}

// flattenIssues expands a wrapped ValidationError into one line per field
// so the report reads the same for input and graph problems.
func flattenIssues(err error) []string {
	if pe, ok := errors.AsPlanError(err); ok {
		var ve *art.ValidationError
		if stderrors.As(pe.Cause, &ve) {
			lines := make([]string, 0, len(ve.Issues))
			for _, issue := range ve.Issues {
				lines = append(lines, issue.String())
			}
			return lines
		}
	}
	return []string{err.Error()}
}
