// Package cmd holds the cobra command tree for the artplan CLI.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/artplanhq/artplan/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "artplan",
	Short: "Agile Release Train planning engine",
	Long: `artplan turns a backlog of work items, their dependencies, and team
capacities into a validated Program Increment plan: iterations, team
assignments, readiness scoring, quality gates, and value-delivery
analysis. Planning is deterministic: the same input always produces
the same plan.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	outputFormat string
	noColor      bool
	logLevel     string
)

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")

	cobra.OnInitialize(configureLogging)
}

func configureLogging() {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(logLevel)
	log.SetDefaultLogger(log.New(cfg))
}
