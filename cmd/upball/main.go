// upball is a terminal arcade game: roll the ball past falling hazards,
// catch stars and reach the goal across twelve levels.
//
// Usage:
//
//	upball play               - Play (opens the menu)
//	upball play --level 3     - Jump straight into an unlocked level
//	upball levels             - Show levels, difficulty and progress
//	upball history            - Show recorded runs
//	upball reset              - Wipe progress and run history
//	upball serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible spawns
//	--save <path>    - Progress file (default: ~/.upball/progress.save)
//	--db <path>      - Run history database (default: ~/.upball/history.db)
//	--config <path>  - Custom upball.yaml
//	--log <path>     - Log file (default: ~/.upball/upball.log)
//
// Every path flag also reads an UPBALL_* environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/upball/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagSavePath string
	flagDBPath   string
	flagConfig   string
	flagLogPath  string
	flagLogLevel string
)

// envDefaults seeds the flag defaults. Explicit flags win.
var envDefaults = loadEnvDefaults()

func loadEnvDefaults() config.Env {
	e, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return e
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "upball",
	Short: "Upball - roll the ball up through twelve levels",
	Long: `Upball is a terminal arcade game. Tilt the ramp to steer the ball,
dodge the falling hazards, catch stars and reach the goal.

Available commands:
  play     - Start the game
  levels   - Show level difficulty and your progress
  history  - Show recorded runs
  reset    - Wipe progress and run history
  serve    - Start SSH server for remote play

Examples:
  upball play
  upball play --level 4 --seed 42
  upball levels
  upball history --level 2
  upball serve --ssh :2222`,
}

func init() {
	e := envDefaults

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", e.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", e.SavePath, "Path to progress save file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", e.DBPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", e.ConfigPath, "Path to custom upball.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", e.LogPath, "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", e.LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// playerName is the name runs are recorded under.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// loadGameConfig loads upball.yaml, warning and falling back to defaults.
func loadGameConfig() config.UpballConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}
