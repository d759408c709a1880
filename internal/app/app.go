// Package app wires one player's game context: progression, state machine,
// spawn scheduler, playfield and run history. Each terminal session owns
// exactly one App.
package app

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/config"
	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/progress"
	"github.com/vovakirdan/upball/internal/spawn"
	"github.com/vovakirdan/upball/internal/storage"
	"github.com/vovakirdan/upball/internal/world"
)

// Options configures New.
type Options struct {
	Config   config.UpballConfig
	SavePath string // Progress file; empty keeps progress in memory only
	Seed     int64  // Spawn RNG seed; 0 seeds from the clock
	Player   string // Name recorded with each run
	History  storage.RunSaver
	Logger   *log.Logger
}

// App is the game context of one player.
type App struct {
	Machine   *game.Machine
	Scheduler *spawn.Scheduler
	Field     *world.Field
	Recorder  *storage.Recorder

	logger  *log.Logger
	seed    int64
	loadErr error
}

// New loads progress and wires the collaborators. A missing save starts
// fresh; an unreadable one starts fresh too and is reported by LoadError.
func New(opts Options) *App {
	logger := logging.OrDiscard(opts.Logger)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{logger: logger, seed: seed}

	store := progress.NewStore()
	var saver game.Saver
	if opts.SavePath != "" {
		loaded, err := progress.Load(opts.SavePath)
		if err != nil {
			a.loadErr = err
			logger.Warn("could not load progress, starting fresh", "path", opts.SavePath, "error", err)
		}
		store = loaded
		saver = progress.NewFileSaver(opts.SavePath)
	}

	a.Machine = game.NewMachine(store, saver, logger)
	a.Field = world.NewField(opts.Config, a.Machine, logger)
	a.Scheduler = spawn.NewScheduler(opts.Config.Spawn, a.Field, rand.New(rand.NewSource(seed)), logger)

	// The scheduler reacts first so every later listener sees the new
	// spawn state.
	a.Machine.Subscribe(a.Scheduler)
	a.Machine.Subscribe(a.Field)
	if opts.History != nil {
		a.Recorder = storage.NewRecorder(opts.History, opts.Player, logger)
		a.Machine.Subscribe(a.Recorder)
	}

	logger.Debug("game context ready",
		"player", opts.Player,
		"seed", seed,
		"highest", store.HighestUnlocked(),
	)
	return a
}

// Subscribe registers a listener after the core collaborators.
func (a *App) Subscribe(l game.Listener) game.Subscription {
	return a.Machine.Subscribe(l)
}

// Unsubscribe removes a listener added with Subscribe.
func (a *App) Unsubscribe(id game.Subscription) {
	a.Machine.Unsubscribe(id)
}

// Step advances the playfield and the scheduler by dt seconds. Nothing
// moves outside of Playing.
func (a *App) Step(dt float64) {
	if a.Machine.State() != game.StatePlaying {
		return
	}
	a.Field.Step(dt)
	if a.Machine.State() != game.StatePlaying {
		return
	}
	a.Scheduler.Advance(dt)
}

// Nudge tilts the ramp while playing.
func (a *App) Nudge(dir int) {
	if a.Machine.State() == game.StatePlaying {
		a.Field.Nudge(dir)
	}
}

// Seed returns the spawn RNG seed in use.
func (a *App) Seed() int64 {
	return a.seed
}

// LoadError returns the error met while loading progress, or nil.
func (a *App) LoadError() error {
	return a.loadErr
}
