package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lifeguide/internal/platform/tui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [level]",
		Short: "Play in the terminal",
		Long: `Start the board in the terminal. With a level ID the board opens on that
level; otherwise the level picker is shown first.

Controls:
  Arrows/hjkl    - Move cursor (or use the mouse)
  Enter/Click    - Place brush
  X/Right click  - Erase placed object
  B/Tab          - Next brush
  R/Shift+R      - Rotate brush
  F/V            - Flip brush horizontally/vertically
  Space          - Run/stop the automaton
  .              - Step one generation
  U              - Reset to the state before the first run
  C              - Clear the level
  G              - Toggle guidance lines
  N/Shift+N      - Next/previous level
  Esc            - Back to level list
  Q/Ctrl+C       - Quit

Examples:
  lifeguide play
  lifeguide play 02-glider-lane
  lifeguide play --levels ./my-levels`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			levels, err := loadLevels(ctx, cfg)
			if err != nil {
				return err
			}

			start := -1
			if len(args) == 1 {
				if start, err = findLevel(levels, args[0]); err != nil {
					return err
				}
			}

			fd := int(os.Stdout.Fd())
			if !term.IsTerminal(fd) {
				logger.Warn("stdout is not a terminal")
			} else if w, h, err := term.GetSize(fd); err == nil && start >= 0 {
				lvl := levels[start]
				needW, needH := lvl.Width*2, lvl.Height+6
				if needW > w || needH > h {
					logger.Warn("terminal is smaller than the board",
						"terminal", fmt.Sprintf("%dx%d", w, h),
						"board", fmt.Sprintf("%dx%d", needW, needH),
					)
				}
			}

			store := openStore(ctx)
			if store != nil {
				defer store.Close()
			}

			// The board renders its own frames; keep log lines off the screen.
			logger.SetOutput(io.Discard)

			app := tui.NewApp(levels, store, cfg, logger)
			if start >= 0 {
				if app, err = app.Play(start); err != nil {
					return err
				}
			}
			return tui.Run(app)
		},
	}
}
