// Package messages defines the event schema published on a match's event
// bus. Presentation collaborators (rendering, audio, VFX, HUD) depend on
// these payloads only.
package messages

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
)

// Topic names an event stream.
type Topic string

const (
	TopicCharacterMove Topic = "character:move"
	TopicJumpPerformed Topic = "jump:performed"
	TopicAttackStarted Topic = "attack:started"
	TopicAttackLanded  Topic = "attack:landed"
	TopicCharacterHit  Topic = "character:hit"
	TopicMatchEnded    Topic = "match:ended"
)

// CharacterMoveEvent is published when a fighter's horizontal motion or
// ground contact changes.
type CharacterMoveEvent struct {
	EntityID  string
	Speed     float64 // absolute horizontal speed, px/s
	Direction float64 // -1, 0 or 1
	Grounded  bool
}

// JumpPerformedEvent is published when a jump is accepted.
type JumpPerformedEvent struct {
	EntityID string
	Coyote   bool // accepted through the coyote window rather than ground contact
}

// AttackStartedEvent is published when a move is issued.
type AttackStartedEvent struct {
	EntityID    string
	MoveID      string
	Type        config.HitboxCategory
	TotalFrames int
	MeterCost   int
}

// AttackLandedEvent is published when a hit is credited.
type AttackLandedEvent struct {
	AttackerID    string
	DefenderID    string
	Damage        int
	HitPosition   gamemath.Vector
	Type          config.HitboxCategory
	MoveID        string
	HitstunFrames int
	Knockback     gamemath.Vector
	Countered     bool
}

// CharacterHitEvent follows AttackLandedEvent and carries the defender's
// resulting HP.
type CharacterHitEvent struct {
	DefenderID string
	NewHP      int
	AttackerID string
	Damage     int
}

// EndReason explains how a match finished.
type EndReason string

const (
	EndKO      EndReason = "ko"
	EndTimeout EndReason = "timeout"
	EndAborted EndReason = "aborted"
)

// MatchEndedEvent is published exactly once per match. WinnerID is empty
// on a draw or abort.
type MatchEndedEvent struct {
	WinnerID string
	Reason   EndReason
	Position gamemath.Vector // where the deciding blow landed, or the midpoint between fighters
}

// Draw reports whether the match ended without a winner.
func (e MatchEndedEvent) Draw() bool {
	return e.WinnerID == ""
}
