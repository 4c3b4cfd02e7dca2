package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/core-collapse/internal/platform/tui"
	"github.com/vovakirdan/core-collapse/internal/storage"
)

var flagPlain bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past sessions",
	Long: `Display the session log: who won, how many rounds the reactor held,
and the overall crew win rate.

Examples:
  corecollapse history
  corecollapse history --plain`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain-text summary instead of the interactive viewer")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain {
		printHistory(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing history: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store) {
	sessions, err := store.RecentSessions(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent sessions:")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game of 'corecollapse play' to start the log.")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %-9s  %-5s  %s\n",
		"When", "Crew", "Rounds", "Clears", "Overloads", "Hull", "Winner")
	for _, s := range sessions {
		winner := "saboteur"
		if s.CrewWon {
			winner = "crew"
		}
		fmt.Printf("  %-16s  %-5d  %-6d  %-6d  %-9d  %3.0f%%  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Players, s.RoundsPlayed, s.Clears, s.Overloads,
			s.ShipHealth01*100, winner)
	}

	rate, total, err := store.CrewWinRate()
	if err == nil && total > 0 {
		fmt.Println()
		fmt.Printf("Crew won %.0f%% of %d sessions.\n", rate*100, total)
	}

	if lines := tui.BestScores(store); len(lines) > 0 {
		fmt.Println()
		fmt.Println("Best skill checks:")
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
	}
}
