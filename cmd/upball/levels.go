package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/progress"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show levels, difficulty and progress",
	Long: `List every level with its hazard speed, spawn interval and counts,
alongside the stars you have earned.

Examples:
  upball levels
  upball levels --save ./test.save`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	store, err := progress.Load(flagSavePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing fresh progress)\n", err)
	}

	// Print header
	fmt.Printf("  %-5s  %-6s  %-8s  %-7s  %-5s  %-6s  %s\n",
		"Level", "Speed", "Interval", "Hazards", "Stars", "Rating", "Best")
	fmt.Printf("  %-5s  %-6s  %-8s  %-7s  %-5s  %-6s  %s\n",
		"-----", "-----", "--------", "-------", "-----", "------", "----")

	for _, rec := range store.Records() {
		d := game.DifficultyFor(rec.Level)
		rating := "locked"
		best := "-"
		if rec.Unlocked {
			rating = fmt.Sprintf("%d/%d", rec.Stars, progress.MaxStars)
			if rec.Stars > 0 || rec.BestPercentage > 0 {
				best = fmt.Sprintf("%.0f%%", rec.BestPercentage*100)
			}
		}
		fmt.Printf("  %-5d  %-6.0f  %-8s  %-7d  %-5d  %-6s  %s\n",
			rec.Level, d.ObstacleSpeed, fmt.Sprintf("%.1fs", d.SpawnInterval),
			d.Obstacles, d.Stars, rating, best)
	}

	fmt.Println()
	fmt.Printf("Highest unlocked: %d   Total stars: %d/%d\n",
		store.HighestUnlocked(), store.TotalStars(), progress.LevelCount*progress.MaxStars)
}
