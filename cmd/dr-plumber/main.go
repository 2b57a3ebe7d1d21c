// dr-plumber is a falling-capsule puzzle for the terminal: line up four
// halves of the same color to wash the viruses out of the bottle.
//
// Usage:
//
//	dr-plumber [flags]           - Play
//	dr-plumber history [flags]   - Show finished games
//
// Flags:
//
//	--level <1-20>          - Starting level (default: 10)
//	--fps <rate>            - Tick rate (default: 64)
//	--speed <low|mid|hi>    - Capsule fall speed (default: mid)
//	--seed <value>          - RNG seed, 0 picks one from the clock
//	--config <path>         - Custom tuning YAML
//	--db <path>             - History database (default: ~/.dr-plumber/history.db)
//	--log <path>            - Debug log file, off when empty
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultDBPath = "~/.dr-plumber/history.db"

// flags holds the persistent flags shared by all commands.
type flags struct {
	level   int
	fps     float64
	speed   string
	seed    int64
	config  string
	dbPath  string
	logPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "dr-plumber",
		Short: "Dr. Plumber - clear the viruses from the bottle",
		Long: `Dr. Plumber drops two-colored capsules into a bottle full of viruses.
Line up four or more cells of one color in a row or column to clear them.
Clear every virus to finish the level.

Controls:
  Left/Right   - Move the capsule
  Down         - Drop one row
  D / F        - Rotate left / right
  Enter        - Confirm at a prompt
  Q/Esc        - Quit

Examples:
  dr-plumber
  dr-plumber --level 1 --speed low
  dr-plumber --level 20 --speed hi --fps 30
  dr-plumber history --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.dbPath, "db", defaultDBPath, "Path to the game history database")
	pf.StringVar(&f.logPath, "log", "", "Write debug logs to this file")

	fl := root.Flags()
	fl.IntVar(&f.level, "level", 10, "Starting level (1-20)")
	fl.Float64Var(&f.fps, "fps", 64, "Tick rate (frames per second)")
	fl.StringVar(&f.speed, "speed", "mid", "Capsule fall speed: low, mid, hi")
	fl.Int64Var(&f.seed, "seed", 0, "RNG seed (0 = random based on time)")
	fl.StringVar(&f.config, "config", "", "Path to custom tuning YAML")

	root.AddCommand(newHistoryCmd(f))
	return root
}
