// arcade runs Papi Trampoline in the terminal, over SSH or headless.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (default: trampoline)
//	arcade serve             - Start SSH server for remote play
//	arcade simulate          - Let the autopilot play a headless session
//	arcade replay ...        - List, re-run or delete recorded sessions
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Papi Trampoline - bounce on vegetables in your terminal",
	Long: `Papi Trampoline is a single-screen arcade game: a bouncing ball
stomps walking vegetables for combo points and loses on any other contact.

Available commands:
  list      - Show all available games
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run a headless session played by the autopilot
  replay    - Manage recorded sessions

Examples:
  arcade play
  arcade play --difficulty hard --record
  arcade serve --ssh :2222
  arcade simulate --seed 42 --duration 2m
  arcade replay list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/replays.db", "Path to replay database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
}
