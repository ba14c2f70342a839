package components

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
)

// SideState is one fighter's scoreboard entry.
type SideState struct {
	ID        string `msgpack:"id"`
	HP        int    `msgpack:"hp"`
	Resonance int    `msgpack:"resonance"`
}

// MatchData stores the authoritative match state. Only the match systems
// write to it.
type MatchData struct {
	ID       string            `msgpack:"id"`
	Phase    config.MatchPhase `msgpack:"phase"`
	Timer    int               `msgpack:"timer"`    // frames remaining
	Duration int               `msgpack:"duration"` // total frames
	Sides    [2]SideState      `msgpack:"sides"`

	WinnerID    string             `msgpack:"winner"` // empty while active, on a draw, or after an abort
	Reason      messages.EndReason `msgpack:"reason"`
	EndPosition gamemath.Vector    `msgpack:"end_position"`

	// Position of the most recent credited hit, used as the KO position.
	LastHitPosition gamemath.Vector `msgpack:"last_hit"`
}

var Match = donburi.NewComponentType[MatchData]()

// NewMatchData creates an active match between two fighter ids.
func NewMatchData(id, p1, p2 string) MatchData {
	return MatchData{
		ID:       id,
		Phase:    config.MatchActive,
		Timer:    config.Match.DurationFrames,
		Duration: config.Match.DurationFrames,
		Sides: [2]SideState{
			{ID: p1, HP: config.Match.MaxHP},
			{ID: p2, HP: config.Match.MaxHP},
		},
	}
}

// Side returns the scoreboard entry for a fighter id.
func (m *MatchData) Side(id string) *SideState {
	for i := range m.Sides {
		if m.Sides[i].ID == id {
			return &m.Sides[i]
		}
	}
	return nil
}

// Ended reports whether the outcome is decided.
func (m *MatchData) Ended() bool {
	return m.Phase == config.MatchEnded
}

// Leader returns the id with more HP, or "" when tied.
func (m *MatchData) Leader() string {
	a, b := m.Sides[0], m.Sides[1]
	switch {
	case a.HP > b.HP:
		return a.ID
	case b.HP > a.HP:
		return b.ID
	}
	return ""
}

// TimerSeconds returns the remaining time rounded up to whole seconds.
func (m *MatchData) TimerSeconds() int {
	return (m.Timer + config.FrameRate - 1) / config.FrameRate
}
