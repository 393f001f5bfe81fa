package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionPrimary        // Space: flip gravity, echo ping, start from a title screen
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionColor1         // 1
	ActionColor2         // 2
	ActionColor3         // 3
	ActionColor4         // 4
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionPrimary: "Primary",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionColor1:  "Color1",
	ActionColor2:  "Color2",
	ActionColor3:  "Color3",
	ActionColor4:  "Color4",
}

// ColorSlot returns the 0-based color slot picked this frame, or -1.
// The highest slot wins when several are pressed.
func (f InputFrame) ColorSlot() int {
	for i, a := range [...]Action{ActionColor4, ActionColor3, ActionColor2, ActionColor1} {
		if f.Has(a) {
			return 3 - i
		}
	}
	return -1
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Direction returns the movement delta requested this frame.
// Vertical input wins over horizontal when both are present.
func (f InputFrame) Direction() (dx, dy int) {
	switch {
	case f.Has(ActionUp):
		return 0, -1
	case f.Has(ActionDown):
		return 0, 1
	case f.Has(ActionLeft):
		return -1, 0
	case f.Has(ActionRight):
		return 1, 0
	}
	return 0, 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
