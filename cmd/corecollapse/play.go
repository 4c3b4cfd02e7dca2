package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/core-collapse/internal/balance"
	"github.com/vovakirdan/core-collapse/internal/core"
	"github.com/vovakirdan/core-collapse/internal/engine"
	"github.com/vovakirdan/core-collapse/internal/platform/tui"
	"github.com/vovakirdan/core-collapse/internal/storage"
)

var (
	flagConfig string
	flagName   string
	flagJob    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a local game",
	Long: `Start a game with you in seat 0 and a simulated crew in the rest.

Controls (phase screens):
  1/2/3      - Pick your job in the lobby
  Left/Right - Browse your hand
  Space      - Choose a card
  Enter      - Confirm / advance the phase
  Q/Ctrl+C   - Quit

Controls (skill checks):
  A/D or arrows - Move
  Space         - Tap

Examples:
  corecollapse play
  corecollapse play --name nova --job coolant
  corecollapse play --players 5 --seed 42
  corecollapse play --config ./my-balance.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom balance YAML")
	playCmd.Flags().StringVar(&flagName, "name", "", "Your crew name")
	playCmd.Flags().StringVar(&flagJob, "job", "", "Preferred job: flux, coolant or helm")
}

func runPlay(cmd *cobra.Command, args []string) {
	if flagPlayers < 3 || flagPlayers > 8 {
		fmt.Fprintf(os.Stderr, "Error: --players must be between 3 and 8, got %d\n", flagPlayers)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := balance.Load(flagConfig)
	eng := engine.New(cfg, seed, tui.CrewNames(flagName, flagPlayers))

	if flagJob != "" {
		job := engine.Job(flagJob)
		if engine.ItemForJob(job) == "" {
			fmt.Fprintf(os.Stderr, "Error: unknown job %q\n", flagJob)
			fmt.Fprintln(os.Stderr, "Run 'corecollapse jobs' to see available jobs.")
			os.Exit(1)
		}
		eng.Dispatch(engine.SelectJob{Job: job})
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(eng, store, runtime)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
