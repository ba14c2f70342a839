package components

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// AnimationData is a fighter's animation state machine. Exactly one state is
// authoritative; Previous only feeds the crossfade weights.
type AnimationData struct {
	Current config.StateID
	MoveID  string // set while Current is Attack
	Timer   int    // frames left in a timed state, 0 for untimed states

	Previous       config.StateID
	PreviousMoveID string
	Fade           *gween.Tween // incoming weight 0 -> 1 over the crossfade window
	Blend          float32      // current incoming weight

	// Last ground contact reported by motion events.
	Grounded bool
}

// Weights returns the incoming and outgoing blend weights.
func (a *AnimationData) Weights() (incoming, outgoing float32) {
	if a.Fade == nil {
		return 1, 0
	}
	return a.Blend, 1 - a.Blend
}

var Animation = donburi.NewComponentType[AnimationData]()
