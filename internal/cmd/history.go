package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/store"
	"github.com/artplanhq/artplan/internal/ux"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored planning runs",
	Long: `List planning runs recorded with 'artplan plan --save', newest first.
Fingerprints identify identical plans: two runs with the same
fingerprint came from byte-identical planning output.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a stored plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)

	rootCmd.AddCommand(historyCmd)
}

type historyReport struct {
	Runs []store.Run `json:"runs" yaml:"runs"`
}

func (r historyReport) RenderText() string {
	if len(r.Runs) == 0 {
		return "no stored runs; record one with 'artplan plan --save'"
	}
	var b strings.Builder
	for _, run := range r.Runs {
		status := "not ready"
		if run.IsReady {
			status = "ready"
		}
		fp := run.Fingerprint
		if len(fp) > 12 {
			fp = fp[:12]
		}
		fmt.Fprintf(&b, "%s  %s  %-20s  readiness %.2f (%s)  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Increment,
			run.Readiness, status, fp)
	}
	return strings.TrimRight(b.String(), "\n")
}

func openHistory() (*store.Store, error) {
	dataDir := ux.NewPathDefaults().DataDir()
	if dir, err := ux.DiscoverArtplanDir(); err == nil {
		dataDir = dir + "/data"
	}
	return store.New(store.Config{DataDir: dataDir})
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openHistory()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(outputFormat, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
	})
	if err != nil {
		return err
	}
	return formatter.Format(historyReport{Runs: runs})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := openHistory()
	if err != nil {
		return err
	}
	defer s.Close()

	_, plan, err := s.GetRun(args[0])
	if err != nil {
		return err
	}
	return outputPlan(cmd, plan)
}
