package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/xmlinstance"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <instance.xml>",
		Short: "Parse an XML instance and run its structural invariant checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("validate: opening instance: %w", err)
			}
			defer f.Close()

			// xmlinstance.Load already calls Instance.Validate before
			// returning, so a nil error here means the instance is sound.
			in, err := xmlinstance.Load(f)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			if jsonOutput {
				return printJSON(cmd, map[string]any{
					"valid":    true,
					"jobs":     len(in.Jobs),
					"shopType": in.ShopType.String(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d jobs, shop type %s\n", len(in.Jobs), in.ShopType)
			return nil
		},
	}
}
