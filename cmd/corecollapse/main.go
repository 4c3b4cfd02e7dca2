// corecollapse is a terminal party game: a small crew feeds a failing
// reactor core round after round while one of them secretly works
// against the ship.
//
// Usage:
//
//	corecollapse play          - Start a local game
//	corecollapse jobs          - List crew jobs, items and skill checks
//	corecollapse history       - Show past sessions
//	corecollapse serve         - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set minigame tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible sessions
//	--players <n>     - Crew size, 3-8 (default: 3)
//	--db <path>       - Set database path (default: ~/.corecollapse/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import minigames to register them
	_ "github.com/vovakirdan/core-collapse/internal/minigames/coolant"
	_ "github.com/vovakirdan/core-collapse/internal/minigames/flux"
	_ "github.com/vovakirdan/core-collapse/internal/minigames/needle"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagPlayers int
	flagDBPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "corecollapse",
	Short: "Core Collapse - Keep the reactor alive. One of you won't.",
	Long: `Core Collapse is a terminal party game for one human and a simulated
crew. Over six rounds the crew feeds power cards into the reactor core:
clear the round gate without hitting the overload limit. Each job
carries one ship item whose strength depends on a live skill check, and
exactly one crew member is secretly sabotaging the run.

Available commands:
  play     - Start a local game
  jobs     - Show crew jobs, their items and skill checks
  history  - View past sessions and the crew win rate
  serve    - Start SSH server for remote play

Examples:
  corecollapse play
  corecollapse play --players 5 --seed 42
  corecollapse jobs
  corecollapse history
  corecollapse serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Minigame tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagPlayers, "players", 3, "Crew size including you (3-8)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.corecollapse/history.db", "Path to session history database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
