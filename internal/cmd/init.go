package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/ux"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a planning project",
	Long: `Create a .artplan directory with an example planning input and a
config file carrying the documented defaults. Edit input.yaml with
your increment, backlog, and teams, then run 'artplan plan'.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const exampleInput = `increment:
  id: pi-2026-q3
  name: PI 2026.3
  start_date: 2026-09-07T00:00:00Z
  end_date: 2026-12-06T00:00:00Z

items:
  - id: enabler-gateway
    kind: enabler
    title: Payment gateway integration
    estimate: 5
    priority: 1
    acceptance_criteria:
      - gateway sandbox reachable from staging
    tested: true
    enabler:
      category: infrastructure

  - id: story-checkout
    kind: story
    title: One-page checkout
    estimate: 8
    priority: 1
    acceptance_criteria:
      - user completes payment in one page
    tested: true
    story:
      user_facing: true

edges:
  - source: story-checkout
    target: enabler-gateway
    strength: HARD
    rationale: checkout needs the gateway in place

teams:
  - id: alpha
    name: Alpha
    members: 5
    average_velocity: 12.5
    capacity_factor: 1.0
  - id: beta
    name: Beta
    members: 4
    average_velocity: 10
    capacity_factor: 1.0
    specializations: [mobile]
`

const exampleConfig = `# Planning defaults; every key is optional.
iteration_length_days: 14
buffer_capacity: 0.2
readiness_threshold: 0.7
enable_value_optimization: false
quality:
  min_acceptance_criteria: 1
  min_test_coverage: 0.8
  max_integration_complexity: 5
`

func runInit(cmd *cobra.Command, args []string) error {
	paths := ux.NewPathDefaults()
	if err := paths.EnsureArtplanDir(); err != nil {
		return err
	}

	created := 0
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(paths.ArtplanDir, "input.yaml"), exampleInput},
		{filepath.Join(paths.ArtplanDir, "config.yaml"), exampleConfig},
	}
	for _, f := range files {
		path, content := f.path, f.content
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s already exists, skipping\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		fmt.Fprintf(cmd.OutOrStdout(),
			"initialized %s; edit input.yaml and run 'artplan plan'\n", paths.ArtplanDir)
	}
	return nil
}
