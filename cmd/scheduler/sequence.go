package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/graphbuild"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/seqfile"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/xmlinstance"
)

func sequenceCmd() *cobra.Command {
	var instancePath string

	cmd := &cobra.Command{
		Use:   "sequence <sequence.json>",
		Short: "Re-evaluate a committed machine sequence's makespan against an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if instancePath == "" {
				return fmt.Errorf("sequence: --instance is required")
			}

			instanceFile, err := os.Open(instancePath)
			if err != nil {
				return fmt.Errorf("sequence: opening instance: %w", err)
			}
			defer instanceFile.Close()

			in, err := xmlinstance.Load(instanceFile)
			if err != nil {
				return fmt.Errorf("sequence: loading instance: %w", err)
			}

			seqFile, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("sequence: opening sequence file: %w", err)
			}
			defer seqFile.Close()

			seq, err := seqfile.Load(seqFile)
			if err != nil {
				return fmt.Errorf("sequence: loading sequence: %w", err)
			}

			dg, err := graphbuild.Build(in)
			if err != nil {
				return fmt.Errorf("sequence: building constraint graph: %w", err)
			}

			makespan, err := seqfile.Reevaluate(dg, in, seq)
			if err != nil {
				return fmt.Errorf("sequence: %w", err)
			}

			if jsonOutput {
				return printJSON(cmd, map[string]any{"makespan": int64(makespan)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "makespan: %d\n", makespan)
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "Path to the XML instance the sequence was computed against")
	return cmd
}
