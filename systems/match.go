package systems

import (
	"math"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// RegisterMatchHandlers makes the match the single writer of HP and
// resonance. The returned function removes every subscription.
func RegisterMatchHandlers(w donburi.World, bus *eventbus.Bus) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.On(bus, messages.TopicCharacterHit, func(evt messages.CharacterHitEvent) {
			if match, ok := MatchState(w); ok {
				ApplyHit(match, evt)
			}
		}),
		eventbus.On(bus, messages.TopicAttackLanded, func(evt messages.AttackLandedEvent) {
			if match, ok := MatchState(w); ok && !match.Ended() {
				match.LastHitPosition = evt.HitPosition
			}
		}),
		eventbus.On(bus, messages.TopicAttackStarted, func(evt messages.AttackStartedEvent) {
			if evt.MeterCost <= 0 {
				return
			}
			if match, ok := MatchState(w); ok {
				SpendResonance(match, evt.EntityID, evt.MeterCost)
			}
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// ApplyHit subtracts damage from the defender and charges resonance on both
// sides. HP never leaves [0, MaxHP]. Hits after the match ended are ignored.
func ApplyHit(match *components.MatchData, evt messages.CharacterHitEvent) {
	if match.Ended() {
		return
	}
	defender := match.Side(evt.DefenderID)
	if defender == nil {
		return
	}
	defender.HP = gamemath.ClampInt(defender.HP-evt.Damage, 0, cfg.Match.MaxHP)
	addResonance(defender, float64(evt.Damage)*cfg.Match.ResonancePerDamageTaken)

	if attacker := match.Side(evt.AttackerID); attacker != nil {
		addResonance(attacker, float64(evt.Damage)*cfg.Match.ResonancePerDamageDealt)
	}
}

func addResonance(side *components.SideState, amount float64) {
	side.Resonance = gamemath.ClampInt(side.Resonance+int(math.Round(amount)), 0, cfg.Match.MaxResonance)
}

// SpendResonance deducts a move's meter cost.
func SpendResonance(match *components.MatchData, id string, cost int) {
	if side := match.Side(id); side != nil {
		side.Resonance = gamemath.ClampInt(side.Resonance-cost, 0, cfg.Match.MaxResonance)
	}
}

// UpdateMatch counts the timer down and decides the match once per tick.
// Both sides reaching zero HP on the same tick is a draw.
func UpdateMatch(e *ecs.ECS) {
	match, ok := MatchState(e.World)
	if !ok || match.Ended() {
		return
	}

	if match.Timer > 0 {
		match.Timer--
	}

	knockout := false
	for _, side := range match.Sides {
		if side.HP <= 0 {
			knockout = true
		}
	}

	switch {
	case knockout:
		finishMatch(e.World, match, messages.EndKO, match.LastHitPosition)
	case match.Timer == 0:
		finishMatch(e.World, match, messages.EndTimeout, fightersMidpoint(e.World))
	}
}

// finishMatch records the outcome and publishes match:ended. It runs at most
// once per match.
func finishMatch(w donburi.World, match *components.MatchData, reason messages.EndReason, at gamemath.Vector) {
	if match.Ended() {
		return
	}
	match.Phase = cfg.MatchEnded
	match.Reason = reason
	match.EndPosition = at
	if reason != messages.EndAborted {
		match.WinnerID = match.Leader()
	}

	loggerOf(w).Info("match ended",
		zap.String("match", match.ID),
		zap.String("reason", string(reason)),
		zap.String("winner", match.WinnerID),
		zap.Int("p1_hp", match.Sides[0].HP),
		zap.Int("p2_hp", match.Sides[1].HP),
	)

	emit(w, messages.TopicMatchEnded, messages.MatchEndedEvent{
		WinnerID: match.WinnerID,
		Reason:   reason,
		Position: at,
	})
}

func fightersMidpoint(w donburi.World) gamemath.Vector {
	fighters := Fighters(w)
	if len(fighters) < 2 {
		return gamemath.Vector{}
	}
	return midpoint(
		components.Physics.Get(fighters[0]).Position,
		components.Physics.Get(fighters[1]).Position,
	)
}

// AbortMatch ends an active match without a winner.
func AbortMatch(w donburi.World) {
	match, ok := MatchState(w)
	if !ok {
		return
	}
	finishMatch(w, match, messages.EndAborted, fightersMidpoint(w))
}

// ResetMatch restores full HP, empty resonance and a full timer, keeping
// the match id and fighter ids.
func ResetMatch(w donburi.World) {
	match, ok := MatchState(w)
	if !ok {
		return
	}
	duration := match.Duration
	*match = components.NewMatchData(match.ID, match.Sides[0].ID, match.Sides[1].ID)
	if duration > 0 {
		match.Duration, match.Timer = duration, duration
	}
}

// WithMatchActive wraps a system so it only runs while the match is
// undecided.
func WithMatchActive(system func(*ecs.ECS)) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if match, ok := MatchState(e.World); ok && match.Ended() {
			return
		}
		system(e)
	}
}
