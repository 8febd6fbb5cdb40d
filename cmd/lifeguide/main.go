// lifeguide is a Game of Life puzzle board with guidance lines, played in the
// terminal, over SSH, or previewed over HTTP.
//
// Usage:
//
//	lifeguide list               - List levels
//	lifeguide show <level>       - Print an ASCII preview of a level
//	lifeguide render <level>     - Write a composed frame as PNG
//	lifeguide play [level]       - Play in the terminal
//	lifeguide serve              - Serve levels over SSH and HTTP
//	lifeguide results <level>    - Show the best solves for a level
//
// Global flags:
//
//	--config <path>  - Config file (YAML or TOML)
//	--levels <dir>   - Level directory (default: built-in levels)
//	--db <path>      - Results database (default: ~/.lifeguide/results.db)
//	-v, --verbose    - Debug logging
package main

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register automaton rules.
	_ "github.com/vovakirdan/lifeguide/internal/life"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagDBPath    string
	flagVerbose   bool
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lifeguide",
		Short: "Lifeguide - Game of Life puzzles with guidance lines",
		Long: `Lifeguide is a Game of Life puzzle board. Place brushes inside the
editable area, follow the guidance lines they cast, and run the automaton
until the target pattern appears.

Available commands:
  list     - Show all levels
  show     - Print an ASCII preview of a level
  render   - Write a composed frame as PNG
  play     - Play in the terminal
  serve    - Serve levels over SSH and HTTP
  results  - View best solves

Examples:
  lifeguide list
  lifeguide play 02-glider-lane
  lifeguide render 02-glider-lane --gen 20 -o frame.png
  lifeguide serve --ssh :23234 --http :8080`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if flagVerbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	root.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Level directory (default: built-in levels)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lifeguide/results.db", "Path to results database")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newResultsCmd())

	return root
}
