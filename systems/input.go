package systems

import (
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SetInputs stores this frame's actions on each fighter. Fighters missing
// from the set hold nothing.
func SetInputs(w donburi.World, inputs messages.InputSet) {
	for _, e := range Fighters(w) {
		buffer := components.InputBuffer.Get(e)
		buffer.Current = inputs[components.Fighter.Get(e).ID]
	}
}

// UpdateInput turns held actions into movement intent, jumps and move
// issues. Must run BEFORE UpdatePhysics in the system order.
func UpdateInput(ecs *ecs.ECS) {
	w := ecs.World
	tick := clockOf(w).Tick
	ended := false
	if match, ok := MatchState(w); ok {
		ended = match.Ended()
	}

	for _, e := range Fighters(w) {
		physics := components.Physics.Get(e)
		buffer := components.InputBuffer.Get(e)
		combat := components.Combat.Get(e)

		raw := buffer.Current
		held := raw
		physics.Intent = components.MoveIntent{}

		// Hitstun and a decided match swallow input. The frame is still
		// buffered so coyote and command history keep advancing.
		if ended || combat.InHitstun() {
			held = cfg.ActionNone
			fighter := components.Fighter.Get(e)
			fighter.HeldDirection, fighter.HeldForwardFrames = 0, 0
		} else {
			faceOpponent(w, e)
			updateIntent(e, held)

			if held.Pressed(buffer.Previous, cfg.ActionJump) && combat.Move == nil {
				if accepted, coyote := HandleJumpInput(physics, buffer); accepted {
					emit(w, messages.TopicJumpPerformed, messages.JumpPerformedEvent{
						EntityID: components.Fighter.Get(e).ID,
						Coyote:   coyote,
					})
				}
			}

			issueFromInput(w, e, held, buffer)
		}

		BufferInput(buffer, held, physics.Grounded, tick)
		buffer.Previous = raw
	}
}

// faceOpponent turns a grounded, idle fighter toward the other fighter.
func faceOpponent(w donburi.World, e *donburi.Entry) {
	physics := components.Physics.Get(e)
	if !physics.Grounded || components.Combat.Get(e).Move != nil {
		return
	}
	other := opponentOf(w, e)
	if other == nil {
		return
	}
	dx := components.Physics.Get(other).Position.X - physics.Position.X
	if dx > 0 {
		physics.Facing = cfg.DirectionRight
	} else if dx < 0 {
		physics.Facing = cfg.DirectionLeft
	}
}

// updateIntent converts held directions into walk or run intent. A grounded
// fighter committed to a move stands still; airborne moves keep drift.
func updateIntent(e *donburi.Entry, held cfg.Action) {
	fighter := components.Fighter.Get(e)
	physics := components.Physics.Get(e)
	combat := components.Combat.Get(e)

	dir := held.Horizontal()
	if dir == 0 || (combat.Move != nil && physics.Grounded) {
		fighter.HeldDirection, fighter.HeldForwardFrames = 0, 0
		return
	}

	if fighter.HeldDirection == dir {
		fighter.HeldForwardFrames++
	} else {
		fighter.HeldDirection, fighter.HeldForwardFrames = dir, 1
	}

	speed := fighter.Character.WalkSpeed
	if fighter.HeldForwardFrames >= cfg.Combat.RunAfterFrames {
		speed = fighter.Character.RunSpeed
	}
	physics.Intent = components.MoveIntent{Direction: dir, Speed: speed}
}

// issueFromInput issues at most one move per frame. Command sequences are
// matched before plain button bindings.
func issueFromInput(w donburi.World, e *donburi.Entry, held cfg.Action, buffer *components.InputBufferData) {
	fighter := components.Fighter.Get(e)
	physics := components.Physics.Get(e)

	for _, button := range cfg.AttackActions {
		if !held.Pressed(buffer.Previous, button) {
			continue
		}
		if moveID, ok := matchCommand(fighter.Character, button, held, buffer, physics.Facing); ok {
			if IssueMove(w, e, moveID) {
				return
			}
		}
		if moveID, _, ok := fighter.Character.Move(button, !physics.Grounded); ok {
			if IssueMove(w, e, moveID) {
				return
			}
		}
	}
}

// matchCommand finds the first command whose direction sequence appears, in
// order, within the command window ending at the current frame.
func matchCommand(def *cfg.CharacterDef, button, held cfg.Action, buffer *components.InputBufferData, facing float64) (string, bool) {
	window := cfg.Combat.CommandWindow
	frames := make([]cfg.Action, 0, window)
	frames = append(frames, held)
	for back := 0; len(frames) < window; back++ {
		a, ok := buffer.Combo.At(back)
		if !ok {
			break
		}
		frames = append(frames, a)
	}

	for _, cmd := range def.Commands {
		if cmd.Button != button {
			continue
		}
		if sequenceMatches(cmd.Sequence, frames, facing) {
			return cmd.MoveID, true
		}
	}
	return "", false
}

// sequenceMatches walks frames newest first, consuming the sequence from
// its last element.
func sequenceMatches(seq []cfg.Action, frames []cfg.Action, facing float64) bool {
	i := len(seq) - 1
	for _, frame := range frames {
		if i < 0 {
			break
		}
		if frame.Has(resolveDirection(seq[i], facing)) {
			i--
		}
	}
	return i < 0
}

// resolveDirection maps forward/back onto left/right for the given facing.
func resolveDirection(a cfg.Action, facing float64) cfg.Action {
	forward, back := cfg.ActionMoveRight, cfg.ActionMoveLeft
	if facing < 0 {
		forward, back = back, forward
	}
	switch a {
	case cfg.ActionForward:
		return forward
	case cfg.ActionBack:
		return back
	}
	return a
}
