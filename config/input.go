package config

// Action is a bitmask of logical inputs held during one frame.
type Action uint16

const ActionNone Action = 0

const (
	ActionMoveLeft Action = 1 << iota
	ActionMoveRight
	ActionUp
	ActionDown
	ActionJump
	ActionLight
	ActionHeavy
	ActionSpecial
	ActionGrab
)

// Pseudo actions used only in command sequences. They are resolved against
// the fighter's facing when a command is matched.
const (
	ActionForward Action = 1 << (iota + 12)
	ActionBack
)

// AttackActions are the buttons that can issue a move.
var AttackActions = []Action{ActionLight, ActionHeavy, ActionSpecial, ActionGrab}

// Has reports whether every bit of other is set.
func (a Action) Has(other Action) bool {
	return other != 0 && a&other == other
}

// Pressed reports whether action is held now but was not held in prev.
func (a Action) Pressed(prev, action Action) bool {
	return a.Has(action) && !prev.Has(action)
}

// Horizontal returns -1, 0 or 1 for the held left/right inputs.
func (a Action) Horizontal() float64 {
	left, right := a.Has(ActionMoveLeft), a.Has(ActionMoveRight)
	switch {
	case left && !right:
		return DirectionLeft
	case right && !left:
		return DirectionRight
	}
	return 0
}

var actionNames = []struct {
	action Action
	name   string
}{
	{ActionMoveLeft, "left"},
	{ActionMoveRight, "right"},
	{ActionUp, "up"},
	{ActionDown, "down"},
	{ActionJump, "jump"},
	{ActionLight, "light"},
	{ActionHeavy, "heavy"},
	{ActionSpecial, "special"},
	{ActionGrab, "grab"},
	{ActionForward, "forward"},
	{ActionBack, "back"},
}

func (a Action) String() string {
	if a == ActionNone {
		return "none"
	}
	s := ""
	for _, n := range actionNames {
		if a.Has(n.action) {
			if s != "" {
				s += "+"
			}
			s += n.name
		}
	}
	return s
}
