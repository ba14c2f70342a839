package systems

import (
	"math"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// lagEpsilon absorbs float residue left after counting hit-stop down in
// whole steps.
const lagEpsilon = 1e-9

// UpdatePhysics integrates every fighter by one clock step and publishes
// motion changes.
func UpdatePhysics(ecs *ecs.ECS) {
	dt := clockOf(ecs.World).DeltaTime
	for _, e := range Fighters(ecs.World) {
		physics := components.Physics.Get(e)
		Step(physics, dt)
		publishMotion(ecs.World, e, physics)
	}
}

// Step advances one fighter by dt seconds. While hit-stop is pending the
// step only consumes lag; position and velocity are left untouched.
func Step(physics *components.PhysicsData, dt float64) {
	if dt <= 0 {
		return
	}
	if cfg.Physics.MaxDeltaTime > 0 && dt > cfg.Physics.MaxDeltaTime {
		dt = cfg.Physics.MaxDeltaTime
	}

	if physics.ImpactLag > 0 {
		physics.ImpactLag -= dt
		if physics.ImpactLag < lagEpsilon {
			physics.ImpactLag = 0
		}
		return
	}

	// Apply gravity
	if !physics.Grounded {
		physics.Velocity.Y += cfg.Physics.Gravity * dt
		if physics.Velocity.Y > cfg.Physics.MaxFallSpeed {
			physics.Velocity.Y = cfg.Physics.MaxFallSpeed
		}
	}

	applyDrive(physics, dt)

	physics.Position = physics.Position.Add(physics.Velocity.Scale(dt))

	// Ground contact
	if physics.Position.Y >= physics.GroundLevel {
		physics.Position.Y = physics.GroundLevel
		if physics.Velocity.Y > 0 {
			physics.Velocity.Y = 0
		}
		physics.Grounded = physics.Velocity.Y >= 0
	} else {
		physics.Grounded = false
	}

	// Stage walls
	if physics.Bounded() {
		if physics.Position.X < physics.BoundsMin {
			physics.Position.X = physics.BoundsMin
			if physics.Velocity.X < 0 {
				physics.Velocity.X = 0
			}
		} else if physics.Position.X > physics.BoundsMax {
			physics.Position.X = physics.BoundsMax
			if physics.Velocity.X > 0 {
				physics.Velocity.X = 0
			}
		}
	}
}

// applyDrive steers horizontal velocity toward the input intent, or lets
// friction bleed it off when there is none.
func applyDrive(physics *components.PhysicsData, dt float64) {
	intent := physics.Intent
	if intent.Direction == 0 {
		friction := cfg.Physics.GroundFriction
		if !physics.Grounded {
			friction = cfg.Physics.AirFriction
		}
		physics.Velocity.X = gamemath.ApplyFriction(physics.Velocity.X, friction*dt)
		return
	}

	target := intent.Direction * intent.Speed
	if physics.Grounded {
		physics.Velocity.X = target
		return
	}

	// Air control nudges toward the target without exceeding it.
	delta := target - physics.Velocity.X
	step := cfg.Physics.AirAcceleration * dt
	if math.Abs(delta) <= step {
		physics.Velocity.X = target
	} else {
		physics.Velocity.X += math.Copysign(step, delta)
	}
}

// TriggerImpact freezes integration for the given number of frames. A
// longer pending freeze is never shortened.
func TriggerImpact(physics *components.PhysicsData, frames int) {
	if frames <= 0 {
		return
	}
	lag := cfg.FramesToSeconds(frames)
	if lag > physics.ImpactLag {
		physics.ImpactLag = lag
	}
}

// HandleJumpInput applies a jump if the fighter is grounded or left the
// ground within the coyote window. Accepting a coyote jump consumes the
// buffered grounded snapshots so the window grants one jump only.
//
// It must run before the current frame is buffered.
func HandleJumpInput(physics *components.PhysicsData, buffer *components.InputBufferData) (accepted, coyote bool) {
	if physics.InImpactLag() {
		return false, false
	}

	if !physics.Grounded {
		for back := 0; back < cfg.Physics.CoyoteFrames; back++ {
			frame, ok := buffer.History.At(back)
			if !ok {
				break
			}
			if frame.WasGrounded {
				coyote = true
				break
			}
		}
		if !coyote {
			return false, false
		}
	}

	physics.Velocity.Y = -physics.JumpForce
	physics.Grounded = false
	for back := 0; back < buffer.History.Len(); back++ {
		buffer.History.Ptr(back).WasGrounded = false
	}
	return true, coyote
}

// BufferInput records one frame of input with the grounded snapshot.
func BufferInput(buffer *components.InputBufferData, inputs cfg.Action, grounded bool, tick uint64) {
	buffer.Combo.Push(inputs)
	buffer.History.Push(messages.InputFrame{
		Inputs:      inputs,
		WasGrounded: grounded,
		Timestamp:   tick,
	})
}

// publishMotion emits character:move when a fighter's direction, ground
// contact or speed changed since the last publish.
func publishMotion(w donburi.World, e *donburi.Entry, physics *components.PhysicsData) {
	fighter := components.Fighter.Get(e)

	direction := 0.0
	if physics.Velocity.X > 0 {
		direction = cfg.DirectionRight
	} else if physics.Velocity.X < 0 {
		direction = cfg.DirectionLeft
	}
	evt := messages.CharacterMoveEvent{
		EntityID:  fighter.ID,
		Speed:     math.Abs(physics.Velocity.X),
		Direction: direction,
		Grounded:  physics.Grounded,
	}

	last := fighter.LastMove
	if fighter.MovePublished &&
		last.Direction == evt.Direction &&
		last.Grounded == evt.Grounded &&
		math.Abs(last.Speed-evt.Speed) < 1 {
		return
	}
	fighter.LastMove = evt
	fighter.MovePublished = true
	emit(w, messages.TopicCharacterMove, evt)
}

// ResetPhysics puts a fighter back on its spawn point at rest.
func ResetPhysics(e *donburi.Entry) {
	fighter := components.Fighter.Get(e)
	physics := components.Physics.Get(e)
	physics.Position = fighter.Spawn
	physics.Velocity = gamemath.Vector{}
	physics.Grounded = fighter.Spawn.Y >= physics.GroundLevel
	physics.ImpactLag = 0
	physics.Intent = components.MoveIntent{}
	if fighter.Slot == 0 {
		physics.Facing = cfg.DirectionRight
	} else {
		physics.Facing = cfg.DirectionLeft
	}
	fighter.HeldDirection, fighter.HeldForwardFrames = 0, 0
	fighter.LastMove = messages.CharacterMoveEvent{}
	fighter.MovePublished = false
}
