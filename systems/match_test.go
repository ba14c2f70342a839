package systems

import (
	"testing"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoreboard() *components.MatchData {
	m := components.NewMatchData("m", cfg.P1, cfg.P2)
	return &m
}

func TestApplyHitChargesBothSides(t *testing.T) {
	m := newScoreboard()
	ApplyHit(m, messages.CharacterHitEvent{AttackerID: cfg.P1, DefenderID: cfg.P2, Damage: 15, NewHP: 85})

	assert.Equal(t, 100, m.Sides[0].HP)
	assert.Equal(t, 85, m.Sides[1].HP)
	assert.Equal(t, 8, m.Sides[0].Resonance)
	assert.Equal(t, 4, m.Sides[1].Resonance)
}

func TestApplyHitClampsAtZero(t *testing.T) {
	m := newScoreboard()
	m.Sides[1].HP = 10
	ApplyHit(m, messages.CharacterHitEvent{AttackerID: cfg.P1, DefenderID: cfg.P2, Damage: 200})
	assert.Zero(t, m.Sides[1].HP)
}

func TestResonanceCapsAtMax(t *testing.T) {
	m := newScoreboard()
	m.Sides[0].Resonance = cfg.Match.MaxResonance - 1
	ApplyHit(m, messages.CharacterHitEvent{AttackerID: cfg.P1, DefenderID: cfg.P2, Damage: 20})
	assert.Equal(t, cfg.Match.MaxResonance, m.Sides[0].Resonance)
}

func TestApplyHitIgnoredAfterEnd(t *testing.T) {
	m := newScoreboard()
	m.Phase = cfg.MatchEnded
	ApplyHit(m, messages.CharacterHitEvent{AttackerID: cfg.P1, DefenderID: cfg.P2, Damage: 30})
	assert.Equal(t, 100, m.Sides[1].HP)
	assert.Zero(t, m.Sides[0].Resonance)
}

func TestApplyHitUnknownDefender(t *testing.T) {
	m := newScoreboard()
	before := *m
	ApplyHit(m, messages.CharacterHitEvent{AttackerID: cfg.P1, DefenderID: "nobody", Damage: 30})
	assert.Equal(t, before, *m)
}

func TestSpendResonance(t *testing.T) {
	m := newScoreboard()
	m.Sides[0].Resonance = 30
	SpendResonance(m, cfg.P1, 25)
	assert.Equal(t, 5, m.Sides[0].Resonance)

	SpendResonance(m, cfg.P1, 25)
	assert.Zero(t, m.Sides[0].Resonance)
}

func TestLeader(t *testing.T) {
	m := newScoreboard()
	assert.Empty(t, m.Leader())
	m.Sides[0].HP = 40
	assert.Equal(t, cfg.P2, m.Leader())
}

func TestDoubleKnockoutIsDraw(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	m := tw.match()
	m.Sides[0].HP, m.Sides[1].HP = 0, 0

	tw.step(nil)
	require.True(t, m.Ended())
	assert.Equal(t, messages.EndKO, m.Reason)
	assert.Empty(t, m.WinnerID)
	for _, e := range tw.fighters {
		assert.Equal(t, cfg.KO, components.Animation.Get(e).Current)
	}
}

func TestTimeoutPicksLeader(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	m := tw.match()
	m.Timer = 2
	m.Sides[1].HP = 50

	tw.step(nil)
	assert.False(t, m.Ended())
	assert.Equal(t, 1, m.Timer)

	tw.step(nil)
	require.True(t, m.Ended())
	assert.Equal(t, messages.EndTimeout, m.Reason)
	assert.Equal(t, cfg.P1, m.WinnerID)
	assert.Equal(t, 450.0, m.EndPosition.X)
	assert.Equal(t, cfg.Victory, components.Animation.Get(tw.fighters[0]).Current)
	assert.Equal(t, cfg.KO, components.Animation.Get(tw.fighters[1]).Current)
}

func TestTimeoutWithEqualHPIsDraw(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	tw.match().Timer = 1
	tw.step(nil)

	m := tw.match()
	require.True(t, m.Ended())
	assert.Empty(t, m.WinnerID)
}

func TestMatchEndedPublishedOnce(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	tw.match().Timer = 1
	tw.steps(10)
	AbortMatch(tw.ecs.World)

	assert.Equal(t, 1, tw.count(messages.TopicMatchEnded))
	assert.Equal(t, messages.EndTimeout, tw.match().Reason)
	assert.Zero(t, tw.match().Timer)
}

func TestEndedMatchSwallowsInput(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	tw.match().Timer = 1
	tw.step(nil)
	require.True(t, tw.match().Ended())

	tw.step(messages.InputSet{cfg.P1: cfg.ActionMoveRight | cfg.ActionLight})
	p := components.Physics.Get(tw.fighters[0])
	assert.Zero(t, p.Velocity.X)
	assert.Nil(t, components.Combat.Get(tw.fighters[0]).Move)
	assert.False(t, IssueMove(tw.ecs.World, tw.fighters[0], "jab"))
}

func TestAbortMatch(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	AbortMatch(tw.ecs.World)

	m := tw.match()
	require.True(t, m.Ended())
	assert.Equal(t, messages.EndAborted, m.Reason)
	assert.Empty(t, m.WinnerID)
	assert.Equal(t, 1, tw.count(messages.TopicMatchEnded))
	for _, e := range tw.fighters {
		assert.Equal(t, cfg.Idle, components.Animation.Get(e).Current)
	}
}

func TestResetMatchKeepsDuration(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	m := tw.match()
	m.Duration, m.Timer = 300, 12
	m.Sides[0].HP, m.Sides[1].Resonance = 20, 70
	AbortMatch(tw.ecs.World)

	ResetMatch(tw.ecs.World)
	assert.False(t, m.Ended())
	assert.Equal(t, 300, m.Timer)
	assert.Equal(t, "test", m.ID)
	assert.Equal(t, 100, m.Sides[0].HP)
	assert.Zero(t, m.Sides[1].Resonance)
	assert.Empty(t, m.Reason)
}

func TestTimerSecondsRoundsUp(t *testing.T) {
	m := newScoreboard()
	m.Timer = 61
	assert.Equal(t, 2, m.TimerSeconds())
	m.Timer = 60
	assert.Equal(t, 1, m.TimerSeconds())
}
