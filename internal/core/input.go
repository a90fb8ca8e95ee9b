package core

// Action is a player intent, decoupled from the key or network message
// that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp          // toward -z
	ActionDown        // toward +z
	ActionLeft        // toward -x
	ActionRight       // toward +x
	ActionPause
	ActionRestart // only honored after game over
	ActionConfirm
	ActionBack // leave a paused or finished game
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsMove reports whether the action steers the snake.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
