package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/session"
)

func newShowCmd() *cobra.Command {
	var (
		gen    int
		coords bool
	)

	cmd := &cobra.Command{
		Use:   "show <level>",
		Short: "Print an ASCII preview of a level",
		Long: `Print the level board with its overlays as text.

Legend:
  #  live cell       -/=  guidance line bands
  x  missing target  o    matched target
  @  detector

Examples:
  lifeguide show 01-block
  lifeguide show 02-glider-lane --gen 12 --coords`,
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

			sess, err := session.New(levels, i, session.WithConfig(cfg), session.WithLogger(loggerFromContext(ctx)))
			if err != nil {
				return err
			}
			for n := 0; n < gen; n++ {
				sess.Advance()
			}

			lvl := sess.Level()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s) - %dx%d, rule %s, generation %d\n\n", lvl.Name, lvl.ID, lvl.Width, lvl.Height, sess.Rule().ID(), sess.Generation())
			fmt.Fprint(out, sess.ASCII(board.RenderOptions{ShowCoords: coords}))
			if hint := lvl.Metadata["hint"]; hint != "" {
				fmt.Fprintf(out, "\nHint: %s\n", hint)
			}
			if sess.Solved() {
				fmt.Fprintln(out, "\nSolved.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&gen, "gen", 0, "Advance this many generations first")
	cmd.Flags().BoolVar(&coords, "coords", false, "Show coordinate axes")
	return cmd
}
