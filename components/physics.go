package components

import (
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/yohamta/donburi"
)

// MoveIntent is the horizontal drive requested by input for one step.
type MoveIntent struct {
	Direction float64 // -1, 0 or 1
	Speed     float64 // target speed, px/s
}

// PhysicsData is a fighter's kinematic state. Position is the point between
// the fighter's feet; y grows downward.
type PhysicsData struct {
	Position    gamemath.Vector
	Velocity    gamemath.Vector
	Grounded    bool
	Facing      float64 // -1 or 1
	JumpForce   float64
	GroundLevel float64
	ImpactLag   float64 // seconds of hit-stop remaining
	Weight      float64
	Intent      MoveIntent

	// Horizontal walls; both zero means the stage is unbounded.
	BoundsMin float64
	BoundsMax float64
}

// InImpactLag reports whether integration is frozen by hit-stop.
func (p *PhysicsData) InImpactLag() bool {
	return p.ImpactLag > 0
}

// Bounded reports whether stage walls are set.
func (p *PhysicsData) Bounded() bool {
	return p.BoundsMax > p.BoundsMin
}

var Physics = donburi.NewComponentType[PhysicsData]()
