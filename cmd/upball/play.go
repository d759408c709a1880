package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/upball/internal/app"
	"github.com/vovakirdan/upball/internal/config"
	"github.com/vovakirdan/upball/internal/core"
	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/platform/tui"
	"github.com/vovakirdan/upball/internal/progress"
	"github.com/vovakirdan/upball/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Upball",
	Long: `Start the game at the main menu, or directly in a level.

Controls:
  Left/Right (A/D) - Tilt the ramp
  P                - Pause / resume
  R                - Restart the level
  N                - Next level (after a victory)
  Esc              - Back to level select
  Q/Ctrl+C         - Quit

Examples:
  upball play
  upball play --level 3
  upball play --seed 42 --save ./test.save`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly in this level (must be unlocked)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("history disabled", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	player := playerName()
	opts := app.Options{
		Config:   loadGameConfig(),
		SavePath: flagSavePath,
		Seed:     flagSeed,
		Player:   player,
		Logger:   logger,
	}
	var history tui.HistoryReader
	if store != nil {
		opts.History = store
		history = store
	}
	a := app.New(opts)

	if flagLevel != 0 {
		if !a.Machine.Store().IsUnlocked(flagLevel) {
			fmt.Fprintf(os.Stderr, "Error: level %d is not unlocked (1-%d, highest unlocked %d)\n",
				flagLevel, progress.LevelCount, a.Machine.Store().HighestUnlocked())
			if store != nil {
				store.Close()
			}
			os.Exit(1)
		}
		a.Machine.StartLevel(flagLevel)
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		FPS:     flagFPS,
		Seed:    a.Seed(),
	}
	logger.Info("starting", "player", player, "seed", a.Seed(), "lvl", flagLevel)

	// Run the game
	runErr := tui.Run(a, history, player, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogger logs to the --log file, since stderr would corrupt the screen.
func openLogger() (*log.Logger, func()) {
	level := logging.ParseLevel(flagLogLevel)
	if flagLogPath == "" {
		return logging.Discard(), func() {}
	}
	path, err := config.ExpandPath(flagLogPath)
	if err != nil {
		return logging.Discard(), func() {}
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.New(io.Discard, "upball", level), func() {}
	}
	return logging.New(f, "upball", level), func() { f.Close() }
}
