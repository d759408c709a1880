package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/progress"
)

// Saver persists the progression store. progress.FileSaver implements it.
type Saver interface {
	Save(*progress.Store) error
}

// Machine is the game state machine. Invalid requests (locked levels,
// pausing outside play, ...) are silent no-ops, matching a UI that already
// hides the actions it cannot take.
type Machine struct {
	bus    Bus
	store  *progress.Store
	saver  Saver
	logger *log.Logger

	state     State
	level     int
	collected int
	target    int

	lastSaveErr error
}

// NewMachine creates a machine in the Menu state. saver may be nil, in
// which case victories are only kept in memory.
func NewMachine(store *progress.Store, saver Saver, logger *log.Logger) *Machine {
	if store == nil {
		store = progress.NewStore()
	}
	return &Machine{
		store:  store,
		saver:  saver,
		logger: logging.OrDiscard(logger),
		state:  StateMenu,
		level:  1,
	}
}

// Subscribe registers a listener for machine events.
func (m *Machine) Subscribe(l Listener) Subscription {
	return m.bus.Subscribe(l)
}

// Unsubscribe removes a listener.
func (m *Machine) Unsubscribe(id Subscription) {
	m.bus.Unsubscribe(id)
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Level returns the current level.
func (m *Machine) Level() int { return m.level }

// StarsCollected returns the stars collected in the current attempt.
func (m *Machine) StarsCollected() int { return m.collected }

// StarsTarget returns the number of stars the current level offers.
func (m *Machine) StarsTarget() int { return m.target }

// Difficulty returns the derived difficulty of the current level.
func (m *Machine) Difficulty() Difficulty { return DifficultyFor(m.level) }

// Store returns the progression store.
func (m *Machine) Store() *progress.Store { return m.store }

// LevelRecord returns the progress record for level.
func (m *Machine) LevelRecord(level int) (progress.LevelRecord, bool) {
	return m.store.Record(level)
}

// LastSaveError returns the error of the most recent save, or nil.
func (m *Machine) LastSaveError() error { return m.lastSaveErr }

// StartLevel begins a fresh attempt at level. Ignored when the level does
// not exist or is locked. LevelChanged is emitted before StateChanged so
// listeners know the new level when they react to Playing.
func (m *Machine) StartLevel(level int) {
	if !progress.Valid(level) || !m.store.IsUnlocked(level) {
		return
	}

	m.level = level
	m.collected = 0
	m.target = StarsPerLevel(level)
	m.logger.Debug("level started", "lvl", level, "target", m.target)

	prev := m.state
	m.state = StatePlaying
	m.bus.Emit(Event{Kind: EventLevelChanged, Level: level})
	m.emitState(prev)
}

// CollectStar counts a collected star. The count may exceed the target.
func (m *Machine) CollectStar() {
	if m.state != StatePlaying {
		return
	}
	m.collected++
	m.bus.Emit(Event{
		Kind:      EventStarCollected,
		Level:     m.level,
		Collected: m.collected,
		Target:    m.target,
	})
}

// TriggerGameOver ends the attempt in defeat. Nothing is persisted.
func (m *Machine) TriggerGameOver() {
	if m.state != StatePlaying {
		return
	}
	m.logger.Debug("game over", "lvl", m.level, "collected", m.collected)
	m.setState(StateGameOver)
	m.bus.Emit(Event{
		Kind:      EventGameOver,
		Level:     m.level,
		Collected: m.collected,
		Target:    m.target,
	})
}

// TriggerVictory rates the attempt, records it, unlocks the next level,
// saves progress and enters Victory. A failed save is logged and kept for
// LastSaveError; it never blocks the transition.
func (m *Machine) TriggerVictory() {
	if m.state != StatePlaying {
		return
	}

	pct := progress.Percentage(m.collected, m.target)
	stars := progress.Rating(pct)

	res := m.store.RecordVictory(m.level, stars, pct)
	m.logger.Info("level complete",
		"lvl", m.level,
		"stars", stars,
		"percentage", pct,
		"improved", res.Improved,
		"unlocked", res.Unlocked,
	)
	m.save()

	m.setState(StateVictory)
	m.bus.Emit(Event{
		Kind:       EventVictory,
		Level:      m.level,
		Collected:  m.collected,
		Target:     m.target,
		Stars:      stars,
		Percentage: pct,
	})
}

func (m *Machine) save() {
	m.lastSaveErr = nil
	if m.saver == nil {
		return
	}
	if err := m.saver.Save(m.store); err != nil {
		m.lastSaveErr = err
		m.logger.Warn("could not save progress", "error", err)
	}
}

// RestartLevel retries the current level without touching saved progress.
// It works from any state, including Menu and LevelSelect.
func (m *Machine) RestartLevel() {
	m.collected = 0
	m.target = StarsPerLevel(m.level)

	prev := m.state
	m.state = StatePlaying
	m.bus.Emit(Event{
		Kind:     EventStateChanged,
		Level:    m.level,
		State:    m.state,
		Previous: prev,
		Restart:  true,
	})
}

// NextLevel starts the following level, or returns to level select after
// the last one.
func (m *Machine) NextLevel() {
	if m.level < progress.LevelCount {
		m.StartLevel(m.level + 1)
		return
	}
	m.GoToLevelSelect()
}

// PauseGame pauses an attempt in progress.
func (m *Machine) PauseGame() {
	if m.state == StatePlaying {
		m.setState(StatePaused)
	}
}

// ResumeGame resumes a paused attempt.
func (m *Machine) ResumeGame() {
	if m.state == StatePaused {
		m.setState(StatePlaying)
	}
}

// TogglePause pauses while playing and resumes while paused.
func (m *Machine) TogglePause() {
	switch m.state {
	case StatePlaying:
		m.PauseGame()
	case StatePaused:
		m.ResumeGame()
	}
}

// GoToMenu returns to the main menu.
func (m *Machine) GoToMenu() {
	m.setState(StateMenu)
}

// GoToLevelSelect opens the level selection screen.
func (m *Machine) GoToLevelSelect() {
	m.setState(StateLevelSelect)
}

func (m *Machine) setState(s State) {
	prev := m.state
	m.state = s
	m.emitState(prev)
}

func (m *Machine) emitState(prev State) {
	m.bus.Emit(Event{
		Kind:     EventStateChanged,
		Level:    m.level,
		State:    m.state,
		Previous: prev,
	})
}
