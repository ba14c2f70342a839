package systems

import (
	"testing"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idle() *components.AnimationData {
	a := &components.AnimationData{}
	ResetAnimation(a)
	return a
}

func TestLocomotionStates(t *testing.T) {
	tests := []struct {
		name string
		evt  messages.CharacterMoveEvent
		want cfg.StateID
	}{
		{"standing", messages.CharacterMoveEvent{Grounded: true}, cfg.Idle},
		{"walking", messages.CharacterMoveEvent{Speed: 220, Direction: 1, Grounded: true}, cfg.Walk},
		{"running", messages.CharacterMoveEvent{Speed: 400, Direction: 1, Grounded: true}, cfg.Run},
		{"falling", messages.CharacterMoveEvent{Speed: 100, Direction: -1}, cfg.Fall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := idle()
			OnCharacterMove(a, tt.evt)
			assert.Equal(t, tt.want, a.Current)
			assert.Equal(t, tt.evt.Grounded, a.Grounded)
		})
	}
}

func TestJumpFallsThroughToFall(t *testing.T) {
	a := idle()
	OnJumpPerformed(a)
	require.Equal(t, cfg.Jump, a.Current)

	// Airborne motion does not cut the jump short.
	OnCharacterMove(a, messages.CharacterMoveEvent{})
	assert.Equal(t, cfg.Jump, a.Current)

	for i := 0; i < cfg.Animation.JumpFrames; i++ {
		TickAnimation(a)
	}
	assert.Equal(t, cfg.Fall, a.Current)

	OnCharacterMove(a, messages.CharacterMoveEvent{Grounded: true})
	assert.Equal(t, cfg.Idle, a.Current)
}

func TestAttackHoldsForTimeline(t *testing.T) {
	a := idle()
	OnAttackStarted(a, messages.AttackStartedEvent{EntityID: cfg.P1, MoveID: "jab", TotalFrames: 14})
	require.Equal(t, cfg.Attack, a.Current)
	assert.Equal(t, "jab", a.MoveID)

	for i := 0; i < 13; i++ {
		TickAnimation(a)
		OnCharacterMove(a, messages.CharacterMoveEvent{Speed: 220, Grounded: true})
	}
	assert.Equal(t, cfg.Attack, a.Current, "locomotion waits for the move")

	TickAnimation(a)
	assert.Equal(t, cfg.Idle, a.Current)
}

func TestReissuedAttackRestartsTimer(t *testing.T) {
	a := idle()
	evt := messages.AttackStartedEvent{MoveID: "jab", TotalFrames: 14}
	OnAttackStarted(a, evt)
	TickAnimation(a)
	TickAnimation(a)
	previous := a.Previous

	OnAttackStarted(a, evt)
	assert.Equal(t, 14, a.Timer)
	assert.Equal(t, previous, a.Previous, "same state keeps its crossfade source")
}

func TestHitstunInterruptsAttack(t *testing.T) {
	a := idle()
	OnAttackStarted(a, messages.AttackStartedEvent{MoveID: "straight", TotalFrames: 28})
	OnAttackLanded(a, messages.AttackLandedEvent{HitstunFrames: 3})
	require.Equal(t, cfg.Hitstun, a.Current)
	assert.Equal(t, cfg.Attack, a.Previous)

	a.Grounded = false
	for i := 0; i < 3; i++ {
		TickAnimation(a)
	}
	assert.Equal(t, cfg.Fall, a.Current)
}

func TestTerminalStatesAreNeverLeft(t *testing.T) {
	a := idle()
	OnMatchEnded(a, cfg.P1, messages.MatchEndedEvent{WinnerID: cfg.P1, Reason: messages.EndKO})
	require.Equal(t, cfg.Victory, a.Current)

	OnCharacterMove(a, messages.CharacterMoveEvent{Speed: 400, Grounded: true})
	OnJumpPerformed(a)
	OnAttackStarted(a, messages.AttackStartedEvent{MoveID: "jab", TotalFrames: 14})
	OnAttackLanded(a, messages.AttackLandedEvent{HitstunFrames: 10})
	OnMatchEnded(a, cfg.P1, messages.MatchEndedEvent{WinnerID: cfg.P2, Reason: messages.EndKO})
	assert.Equal(t, cfg.Victory, a.Current)
}

func TestMatchOutcomeStates(t *testing.T) {
	tests := []struct {
		name   string
		evt    messages.MatchEndedEvent
		p1, p2 cfg.StateID
	}{
		{"p1 wins", messages.MatchEndedEvent{WinnerID: cfg.P1, Reason: messages.EndKO}, cfg.Victory, cfg.KO},
		{"p2 wins on time", messages.MatchEndedEvent{WinnerID: cfg.P2, Reason: messages.EndTimeout}, cfg.KO, cfg.Victory},
		{"draw", messages.MatchEndedEvent{Reason: messages.EndKO}, cfg.KO, cfg.KO},
		{"aborted", messages.MatchEndedEvent{Reason: messages.EndAborted}, cfg.Idle, cfg.Idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a1, a2 := idle(), idle()
			OnMatchEnded(a1, cfg.P1, tt.evt)
			OnMatchEnded(a2, cfg.P2, tt.evt)
			assert.Equal(t, tt.p1, a1.Current)
			assert.Equal(t, tt.p2, a2.Current)
		})
	}
}

func TestCrossfadeBlendsOverWindow(t *testing.T) {
	a := idle()
	in, out := a.Weights()
	assert.Equal(t, float32(1), in)
	assert.Equal(t, float32(0), out)

	OnCharacterMove(a, messages.CharacterMoveEvent{Speed: 220, Grounded: true})
	require.NotNil(t, a.Fade)
	assert.Equal(t, cfg.Idle, a.Previous)

	for i := 0; i < cfg.Animation.CrossfadeFrames/2; i++ {
		AdvanceFade(a, cfg.FrameDuration)
	}
	in, out = a.Weights()
	assert.InDelta(t, 0.5, in, 0.1)
	assert.InDelta(t, 1, in+out, 1e-6)

	// One extra frame absorbs float32 rounding at the end of the window.
	for i := 0; i < cfg.Animation.CrossfadeFrames; i++ {
		AdvanceFade(a, cfg.FrameDuration)
	}
	assert.Nil(t, a.Fade)
	in, _ = a.Weights()
	assert.Equal(t, float32(1), in)
}

func TestResetAnimationLeavesTerminal(t *testing.T) {
	a := idle()
	OnMatchEnded(a, cfg.P1, messages.MatchEndedEvent{Reason: messages.EndTimeout})
	require.Equal(t, cfg.KO, a.Current)

	ResetAnimation(a)
	assert.Equal(t, cfg.Idle, a.Current)
	assert.Equal(t, cfg.StateNone, a.Previous)
	assert.True(t, a.Grounded)
}

func TestAnimationFrozenDuringImpactLag(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	e := tw.fighters[0]
	require.True(t, IssueMove(tw.ecs.World, e, "jab"))
	a := components.Animation.Get(e)
	require.Equal(t, cfg.Attack, a.Current)

	tw.step(nil)
	timer := a.Timer
	TriggerImpact(components.Physics.Get(e), 3)
	tw.step(nil)
	tw.step(nil)
	assert.Equal(t, timer, a.Timer)
}
