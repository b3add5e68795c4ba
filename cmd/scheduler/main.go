// Command scheduler is the CLI entry point, grounded on
// steveyegge-beads/cmd/bd's cobra.Command tree: a root command carrying
// persistent flags, one subcommand per verb, each with RunE returning a
// wrapped error rather than calling os.Exit directly. It is the only
// package in this module that imports cobra or touches stdout/stderr
// directly; schedule, dd, and forward have no CLI dependency at all.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/internal/config"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/internal/telemetry"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scheduler: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scheduler",
		Short:        "Re-entrant flow-shop and job-shop schedule search",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a solver config YAML file (default: built-in defaults)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", true, "Print machine-readable JSON output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Emit structured debug logging to stderr")

	root.AddCommand(solveCmd(), validateCmd(), sequenceCmd())
	return root
}

func loadSolverConfig() (*config.Solver, error) {
	return config.Load(configPath)
}

func newLogger() *zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := telemetry.NewLogger(os.Stderr, level)
	return &logger
}
