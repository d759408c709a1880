// Package game implements the session state machine: level start, star
// collection, pause, defeat and victory, plus the per-level difficulty model.
// Collaborators observe it through a synchronous event bus.
package game

// State is the top-level game state.
type State int

const (
	StateMenu State = iota
	StateLevelSelect
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateLevelSelect:
		return "LevelSelect"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Ended reports whether the state closes a level attempt.
func (s State) Ended() bool {
	return s == StateGameOver || s == StateVictory
}
