package storage

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/game"
	"github.com/vovakirdan/upball/internal/logging"
)

// RunSaver persists finished runs. *Store implements it.
type RunSaver interface {
	SaveRun(run Run) (string, error)
}

// Recorder listens to the game machine and saves one Run per finished
// attempt. Time spent paused is not counted.
type Recorder struct {
	saver  RunSaver
	player string
	logger *log.Logger
	now    func() time.Time

	playing  bool
	resumed  time.Time
	elapsed  time.Duration
	lastRun  string
	failures int
}

// NewRecorder creates a recorder saving runs for player.
func NewRecorder(saver RunSaver, player string, logger *log.Logger) *Recorder {
	return &Recorder{
		saver:  saver,
		player: player,
		logger: logging.OrDiscard(logger),
		now:    time.Now,
	}
}

// HandleEvent implements game.Listener.
func (r *Recorder) HandleEvent(e game.Event) {
	switch e.Kind {
	case game.EventStateChanged:
		switch e.State {
		case game.StatePlaying:
			if !e.Resumed() {
				r.elapsed = 0
			}
			r.playing = true
			r.resumed = r.now()
		case game.StatePaused:
			r.pauseClock()
		case game.StateMenu, game.StateLevelSelect:
			r.playing = false
		}

	case game.EventGameOver:
		r.pauseClock()
		r.save(Run{
			Level:     e.Level,
			Outcome:   OutcomeGameOver,
			Collected: e.Collected,
			Target:    e.Target,
		})

	case game.EventVictory:
		r.pauseClock()
		r.save(Run{
			Level:      e.Level,
			Outcome:    OutcomeVictory,
			Collected:  e.Collected,
			Target:     e.Target,
			Stars:      e.Stars,
			Percentage: float64(e.Percentage),
		})
	}
}

func (r *Recorder) pauseClock() {
	if r.playing {
		r.elapsed += r.now().Sub(r.resumed)
		r.playing = false
	}
}

func (r *Recorder) save(run Run) {
	run.Player = r.player
	run.Duration = r.elapsed
	id, err := r.saver.SaveRun(run)
	if err != nil {
		r.failures++
		r.logger.Warn("could not record run", "lvl", run.Level, "outcome", run.Outcome, "error", err)
		return
	}
	r.lastRun = id
	r.logger.Debug("run recorded", "id", id, "lvl", run.Level, "outcome", run.Outcome, "duration", run.Duration)
}

// LastRunID returns the ID of the most recently saved run.
func (r *Recorder) LastRunID() string {
	return r.lastRun
}

// Failures returns how many runs could not be saved.
func (r *Recorder) Failures() int {
	return r.failures
}

var _ game.Listener = (*Recorder)(nil)
