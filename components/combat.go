package components

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// MovePhase is the position of a move in its timeline.
type MovePhase int

const (
	PhaseStartup MovePhase = iota
	PhaseActive
	PhaseRecovery
	PhaseDone
)

func (p MovePhase) String() string {
	switch p {
	case PhaseStartup:
		return "startup"
	case PhaseActive:
		return "active"
	case PhaseRecovery:
		return "recovery"
	}
	return "done"
}

// HitRecord counts credits against one defender within an active window.
type HitRecord struct {
	Count     int
	LastFrame int
}

// MoveInstance is one issue of a move. A re-issue of the same move-id is a
// new instance with a fresh hit registry.
type MoveInstance struct {
	InstanceID uint64
	MoveID     string
	Attack     *config.AttackData
	Frame      int // 1-based frame of the timeline; 0 before the first advance

	Hits   map[string]*HitRecord // defender id -> credits
	Hitbox *resolv.Object        // present only during the active window
}

// Phase derives the timeline phase from the frame counter.
func (m *MoveInstance) Phase() MovePhase {
	a := m.Attack
	switch {
	case m.Frame <= a.StartupFrames:
		return PhaseStartup
	case m.Frame <= a.StartupFrames+a.ActiveFrames:
		return PhaseActive
	case m.Frame <= a.TotalFrames():
		return PhaseRecovery
	}
	return PhaseDone
}

// ActiveFrame returns the 0-based frame index inside the active window, or
// -1 outside it.
func (m *MoveInstance) ActiveFrame() int {
	if m.Phase() != PhaseActive {
		return -1
	}
	return m.Frame - m.Attack.StartupFrames - 1
}

// CanCredit reports whether the move may credit another hit on defender at
// the current frame.
func (m *MoveInstance) CanCredit(defender string) bool {
	rec, ok := m.Hits[defender]
	if !ok {
		return true
	}
	if rec.Count >= m.Attack.MaxHits() {
		return false
	}
	return m.Frame-rec.LastFrame >= m.Attack.MultiHitInterval
}

// Credit records a hit on defender at the current frame.
func (m *MoveInstance) Credit(defender string) {
	rec, ok := m.Hits[defender]
	if !ok {
		rec = &HitRecord{}
		m.Hits[defender] = rec
	}
	rec.Count++
	rec.LastFrame = m.Frame
}

// CombatData is a fighter's combat state.
type CombatData struct {
	Move          *MoveInstance
	HitstunFrames int
	NextInstance  uint64
}

// InHitstun reports whether the fighter ignores input.
func (c *CombatData) InHitstun() bool {
	return c.HitstunFrames > 0
}

var Combat = donburi.NewComponentType[CombatData]()

// HitboxData is attached to hitbox objects through resolv.Object.Data.
type HitboxData struct {
	Owner *donburi.Entry
	Move  *MoveInstance
}
