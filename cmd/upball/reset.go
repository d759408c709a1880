package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/upball/internal/progress"
	"github.com/vovakirdan/upball/internal/storage"
)

var flagKeepHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe progress and run history",
	Long: `Reset progress to a fresh campaign (only level 1 unlocked, no stars)
and delete your recorded runs.

Examples:
  upball reset
  upball reset --keep-history`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagKeepHistory, "keep-history", false, "Keep recorded runs")
}

func runReset(_ *cobra.Command, _ []string) {
	if err := progress.NewFileSaver(flagSavePath).Save(progress.NewStore()); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Progress reset.")

	if flagKeepHistory {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.ClearRuns(playerName()); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
		return
	}
	fmt.Println("History cleared.")
}
