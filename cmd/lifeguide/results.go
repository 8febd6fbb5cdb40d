package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResultsCmd() *cobra.Command {
	var (
		limit int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "results <level>",
		Short: "Show the best solves for a level",
		Long: `Display the fastest recorded solves for a level, fewest generations first.

Examples:
  lifeguide results 02-glider-lane
  lifeguide results 01-block --limit 3
  lifeguide results 01-block --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			levels, err := loadLevels(ctx, cfg)
			if err != nil {
				return err
			}
			i, err := findLevel(levels, args[0])
			if err != nil {
				return err
			}
			lvl := levels[i]

			store := openStore(ctx)
			if store == nil {
				return errors.New("results database unavailable")
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := store.ClearResults(lvl.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared results for %s.\n", lvl.ID)
				return nil
			}

			results, err := store.BestResults(lvl.ID, limit)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Best Solves - %s\n", lvl.Name)
			fmt.Fprintln(out)

			if len(results) == 0 {
				fmt.Fprintln(out, "No solves recorded yet.")
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Play 'lifeguide play %s' to record the first one!\n", lvl.ID)
				return nil
			}

			fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-9s  %s\n", "Rank", "Gens", "Placed", "Rule", "Date")
			fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-9s  %s\n", "----", "----", "------", "----", "----")
			for n, r := range results {
				fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-9s  %s\n", n+1, r.Generations, r.Placed, r.Rule, r.CreatedAt.Format("2006-01-02 15:04"))
			}

			stats, err := store.Stats()
			if err == nil {
				if st, ok := stats[lvl.ID]; ok {
					fmt.Fprintln(out)
					fmt.Fprintf(out, "Attempts: %d  Solves: %d  Best: %d generations\n", st.Attempts, st.Solves, st.Fewest)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of results to show")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete recorded results for the level")
	return cmd
}
