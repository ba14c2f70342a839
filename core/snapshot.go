package core

import (
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/systems"
)

// FighterSnapshot is the presentation view of one fighter.
type FighterSnapshot struct {
	ID        string
	Character string

	Position gamemath.Vector
	Velocity gamemath.Vector
	Grounded bool
	Facing   float64

	State         cfg.StateID
	MoveID        string
	MovePhase     components.MovePhase
	MoveFrame     int
	HitstunFrames int
	InImpactLag   bool
	Blend         float32

	HP        int
	Resonance int

	Hurtbox  systems.Box
	Hitboxes []systems.Box
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick     uint64
	Alpha    float64
	Match    components.MatchData
	Fighters [2]FighterSnapshot
}

// Snapshot copies the current state. The result shares nothing with the
// simulation. After Dispose only the tick and scoreboard are filled in.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  m.Tick(),
		Alpha: m.Alpha(),
		Match: m.State(),
	}
	if m.disposed {
		return s
	}
	for i, e := range m.fighters {
		fighter := components.Fighter.Get(e)
		physics := components.Physics.Get(e)
		combat := components.Combat.Get(e)
		anim := components.Animation.Get(e)

		fs := FighterSnapshot{
			ID:            fighter.ID,
			Character:     fighter.Character.Name,
			Position:      physics.Position,
			Velocity:      physics.Velocity,
			Grounded:      physics.Grounded,
			Facing:        physics.Facing,
			State:         anim.Current,
			HitstunFrames: combat.HitstunFrames,
			InImpactLag:   physics.InImpactLag(),
			Hurtbox:       systems.Hurtbox(e),
			Hitboxes:      systems.ActiveHitboxes(e),
		}
		fs.Blend, _ = anim.Weights()
		if combat.Move != nil {
			fs.MoveID = combat.Move.MoveID
			fs.MovePhase = combat.Move.Phase()
			fs.MoveFrame = combat.Move.Frame
		} else {
			fs.MovePhase = components.PhaseDone
		}
		if side := s.Match.Side(fighter.ID); side != nil {
			fs.HP, fs.Resonance = side.HP, side.Resonance
		}
		s.Fighters[i] = fs
	}
	return s
}
