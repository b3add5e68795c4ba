package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/xmlinstance"
)

func solveCmd() *cobra.Command {
	var strategy string
	var budget time.Duration

	cmd := &cobra.Command{
		Use:   "solve <instance.xml>",
		Short: "Load an XML instance and search for a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("solve: opening instance: %w", err)
			}
			defer f.Close()

			in, err := xmlinstance.Load(f)
			if err != nil {
				return fmt.Errorf("solve: loading instance: %w", err)
			}

			cfg, err := loadSolverConfig()
			if err != nil {
				return fmt.Errorf("solve: loading config: %w", err)
			}

			opts := cfg.ToOptions()
			if strategy != "" {
				opts.Strategy = schedule.Strategy(strategy)
			}
			if budget > 0 {
				opts.Budget = budget
			}
			opts.Logger = newLogger()

			result, err := schedule.Solve(in, opts)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			if !jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "solved=%t timeout=%t makespan-productivity=%.4f termination=%s\n",
					result.Solved, result.Timeout, result.Productivity, result.TerminationReason)
				return nil
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Override the configured strategy (forward|dd)")
	cmd.Flags().DurationVar(&budget, "budget", 0, "Override the configured decision-diagram search budget")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
