package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/exitcode"
	"github.com/artplanhq/artplan/internal/log"
	"github.com/artplanhq/artplan/internal/planner"
	"github.com/artplanhq/artplan/internal/store"
	"github.com/artplanhq/artplan/internal/ux"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a Program Increment plan",
	Long: `Generate a full Program Increment plan from a planning input file.

The input file describes the increment, work items, dependencies, and
teams. Planning validates the dependency graph, slices the increment
into iterations, sequences the backlog, allocates items to teams under
capacity constraints, and scores the result for readiness, quality,
and value delivery.`,
	RunE: runPlan,
}

var (
	planInput      string
	planConfigPath string
	planOutputFile string
	planLength     int
	planBuffer     float64
	planThreshold  float64
	planOptimize   bool
	planSave       bool
	planStrict     bool
)

func init() {
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "planning input file (default: discovered input.yaml)")
	planCmd.Flags().StringVar(&planConfigPath, "config", "", "planning config file (default: .artplan/config.yaml)")
	planCmd.Flags().StringVarP(&planOutputFile, "write", "w", "", "also write the full plan to this file as YAML")
	planCmd.Flags().IntVar(&planLength, "iteration-length", 0, "iteration length in days (default 14)")
	planCmd.Flags().Float64Var(&planBuffer, "buffer", 0, "capacity buffer fraction (default 0.2)")
	planCmd.Flags().Float64Var(&planThreshold, "threshold", 0, "readiness threshold (default 0.7)")
	planCmd.Flags().BoolVar(&planOptimize, "optimize-value", false, "run the value-timing optimization")
	planCmd.Flags().BoolVar(&planSave, "save", false, "record the run in the plan history")
	planCmd.Flags().BoolVar(&planStrict, "strict", false, "exit non-zero when the plan is not ready")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	inputPath := ux.ResolveInputPath(planInput)
	input, err := art.LoadInput(inputPath)
	if err != nil {
		return ux.EnhanceError(err)
	}

	cfg, err := loadPlannerConfig(planConfigPath)
	if err != nil {
		return ux.EnhanceError(err)
	}
	if planLength > 0 {
		cfg.IterationLengthDays = planLength
	}
	if planBuffer > 0 {
		cfg.BufferCapacity = planBuffer
	}
	if planThreshold > 0 {
		cfg.ReadinessThreshold = planThreshold
	}
	if planOptimize {
		cfg.EnableValueOptimization = true
	}
	cfg.Logger = log.DefaultLogger()

	plan, err := planner.PlanART(input, cfg)
	if err != nil {
		return err
	}

	if planOutputFile != "" {
		if err := writePlanFile(plan, planOutputFile); err != nil {
			return err
		}
	}

	if planSave {
		run, err := saveRun(plan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s\n", run.ID)
	}

	if err := outputPlan(cmd, plan); err != nil {
		return err
	}

	if planStrict && !plan.Readiness.IsReady {
		// The plan was produced and printed; the exit code alone
		// signals the readiness miss to calling scripts.
		exitcode.Exit(exitcode.NotReady)
	}
	return nil
}

func outputPlan(cmd *cobra.Command, plan *planner.ARTPlan) error {
	if outputFormat == "text" || outputFormat == "" {
		fmt.Fprintln(cmd.OutOrStdout(), ux.RenderPlan(plan, noColor))
		return nil
	}
	formatter, err := ux.NewFormatter(outputFormat, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(plan)
}

func writePlanFile(plan *planner.ARTPlan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "failed to encode the plan", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write "+path, err)
	}
	return nil
}

func saveRun(plan *planner.ARTPlan) (store.Run, error) {
	s, err := store.New(store.Config{DataDir: ux.NewPathDefaults().DataDir()})
	if err != nil {
		return store.Run{}, err
	}
	defer s.Close()
	return s.SaveRun(plan)
}

// loadPlannerConfig reads a YAML planner config. Explicit paths must
// exist; the default location is optional.
func loadPlannerConfig(path string) (planner.Config, error) {
	cfg := planner.DefaultConfig()

	explicit := path != ""
	if path == "" {
		path = ux.NewPathDefaults().ConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, "failed to read config "+path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileUnmarshal, "failed to parse config "+path, err)
	}
	return cfg, nil
}
