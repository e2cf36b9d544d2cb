package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionClick          // Space, Enter - manual action
	ActionBuy            // 1-9 - purchase the upgrade at the selected index
	ActionUp             // k, Up arrow - move upgrade cursor
	ActionDown           // j, Down arrow - move upgrade cursor
	ActionBuyCursor      // b - purchase the upgrade under the cursor
	ActionAscend         // a - ascend when eligible
	ActionSave           // ctrl+s - save now
	ActionHelp           // ? - toggle full help
	ActionQuit           // q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionClick:
		return "Click"
	case ActionBuy:
		return "Buy"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionBuyCursor:
		return "BuyCursor"
	case ActionAscend:
		return "Ascend"
	case ActionSave:
		return "Save"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
