package core

// Action is a semantic input, decoupled from the key that produced it.
type Action int

const (
	ActionNone      Action = iota
	ActionTiltLeft         // Lower the left side of the ramp
	ActionTiltRight        // Lower the right side of the ramp
	ActionUp               // Menu cursor up
	ActionDown             // Menu cursor down
	ActionLeft             // Menu cursor left
	ActionRight            // Menu cursor right
	ActionConfirm          // Select / continue
	ActionBack             // Leave the current screen
	ActionPause            // Toggle pause
	ActionRestart          // Retry the current level
	ActionNext             // Next level after a victory
	ActionQuit             // Exit the program or session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
