package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all levels",
		Long:  `Shows the levels found in --levels, the configured level directory, or the built-in set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			levels, err := loadLevels(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Levels:")
			fmt.Fprintln(out)

			maxIDLen := 2 // "ID" header
			for _, lvl := range levels {
				if len(lvl.ID) > maxIDLen {
					maxIDLen = len(lvl.ID)
				}
			}

			fmt.Fprintf(out, "  %-*s  %-20s  %-7s  %-9s  %s\n", maxIDLen, "ID", "Name", "Size", "Rule", "Target")
			fmt.Fprintf(out, "  %-*s  %-20s  %-7s  %-9s  %s\n", maxIDLen, "--", "----", "----", "----", "------")
			for _, lvl := range levels {
				size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
				fmt.Fprintf(out, "  %-*s  %-20s  %-7s  %-9s  %d cells\n", maxIDLen, lvl.ID, lvl.Name, size, lvl.Rule, len(lvl.Target))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'lifeguide play <id>' to play a level.")
			return nil
		},
	}
}
