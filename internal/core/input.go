package core

// Action represents a semantic board action, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // move cursor up
	ActionDown                // move cursor down
	ActionLeft                // move cursor left
	ActionRight               // move cursor right
	ActionPlace               // anchor the selected brush at the cursor
	ActionErase               // remove the placed object under the cursor
	ActionToggleCell          // flip a single cell while stopped
	ActionRotateCW            // rotate the selected brush clockwise
	ActionRotateCCW           // rotate the selected brush counterclockwise
	ActionFlipV               // mirror the selected brush top-to-bottom
	ActionFlipH               // mirror the selected brush left-to-right
	ActionNextBrush           // cycle brush selection
	ActionRun                 // start/stop the automaton
	ActionStep                // advance exactly one generation
	ActionClear               // restore the level setup
	ActionReset               // return to the first advanced state
	ActionToggleGuides        // show/hide guidance lines
	ActionNextLevel           // load the following level
	ActionPrevLevel           // load the preceding level
	ActionQuit                // exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPlace:
		return "Place"
	case ActionErase:
		return "Erase"
	case ActionToggleCell:
		return "ToggleCell"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionFlipV:
		return "FlipV"
	case ActionFlipH:
		return "FlipH"
	case ActionNextBrush:
		return "NextBrush"
	case ActionRun:
		return "Run"
	case ActionStep:
		return "Step"
	case ActionClear:
		return "Clear"
	case ActionReset:
		return "Reset"
	case ActionToggleGuides:
		return "ToggleGuides"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
