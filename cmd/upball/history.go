package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/upball/internal/storage"
)

var (
	flagHistoryLevel int
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display your most recent runs, newest first.

Examples:
  upball history
  upball history --level 3 --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLevel, "level", 0, "Only show runs of this level")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of runs to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	player := playerName()

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.Run
	if flagHistoryLevel > 0 {
		runs, err = store.LevelRuns(player, flagHistoryLevel, flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(player, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Run History - %s\n", player)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'upball play' to record your first run!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-7s  %-5s  %-5s  %-7s  %s\n", "Level", "Result", "Stars", "Got", "Time", "Date")
	fmt.Printf("  %-5s  %-7s  %-5s  %-5s  %-7s  %s\n", "-----", "------", "-----", "---", "----", "----")

	for _, r := range runs {
		result := "lost"
		stars := "-"
		if r.Outcome == storage.OutcomeVictory {
			result = "won"
			stars = fmt.Sprintf("%d", r.Stars)
		}
		fmt.Printf("  %-5d  %-7s  %-5s  %-5s  %-7s  %s\n",
			r.Level, result, stars,
			fmt.Sprintf("%d/%d", r.Collected, r.Target),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
