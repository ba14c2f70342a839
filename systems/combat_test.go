package systems

import (
	"testing"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (tw *testWorld) issue(slot int, moveID string) bool {
	return IssueMove(tw.ecs.World, tw.fighters[slot], moveID)
}

func (tw *testWorld) index(topic messages.Topic) int {
	for i, e := range tw.events {
		if e == topic {
			return i
		}
	}
	return -1
}

func TestStraightLandsOnce(t *testing.T) {
	tw := newTestWorld(t, 400, 460)
	require.True(t, tw.issue(0, "straight"))

	// Startup is 8 frames; the hitbox is live on frame 9.
	tw.steps(8)
	assert.Zero(t, tw.count(messages.TopicAttackLanded))
	tw.step(nil)
	require.Equal(t, 1, tw.count(messages.TopicAttackLanded))
	assert.Less(t, tw.index(messages.TopicAttackLanded), tw.index(messages.TopicCharacterHit))

	m := tw.match()
	assert.Equal(t, 85, m.Sides[1].HP)
	assert.Equal(t, 8, m.Sides[0].Resonance)
	assert.Equal(t, 4, m.Sides[1].Resonance)

	defender := tw.fighters[1]
	assert.Equal(t, 20, components.Combat.Get(defender).HitstunFrames)
	assert.Equal(t, cfg.Hitstun, components.Animation.Get(defender).Current)
	dp := components.Physics.Get(defender)
	assert.Greater(t, dp.Velocity.X, 0.0, "launched away from the attacker")
	assert.Less(t, dp.Velocity.Y, 0.0, "launched upward")
	assert.True(t, dp.InImpactLag())
	assert.True(t, components.Physics.Get(tw.fighters[0]).InImpactLag())

	tw.steps(30)
	assert.Equal(t, 1, tw.count(messages.TopicAttackLanded))
	assert.Equal(t, 85, m.Sides[1].HP)
}

func TestCharacterHitCarriesPredictedHP(t *testing.T) {
	tw := newTestWorld(t, 400, 460)
	var hit messages.CharacterHitEvent
	tw.bus.Subscribe(messages.TopicCharacterHit, func(p any) { hit = p.(messages.CharacterHitEvent) })

	require.True(t, tw.issue(0, "straight"))
	tw.steps(9)
	assert.Equal(t, cfg.P2, hit.DefenderID)
	assert.Equal(t, cfg.P1, hit.AttackerID)
	assert.Equal(t, 15, hit.Damage)
	assert.Equal(t, 85, hit.NewHP)
}

func TestKnockoutEndsMatch(t *testing.T) {
	tw := newTestWorld(t, 400, 460)
	tw.match().Sides[1].HP = 10
	require.True(t, tw.issue(0, "straight"))
	tw.steps(9)

	m := tw.match()
	require.True(t, m.Ended())
	assert.Equal(t, messages.EndKO, m.Reason)
	assert.Equal(t, cfg.P1, m.WinnerID)
	assert.Zero(t, m.Sides[1].HP)
	assert.Equal(t, m.LastHitPosition, m.EndPosition)
	assert.NotZero(t, m.EndPosition.X)

	assert.Equal(t, cfg.Victory, components.Animation.Get(tw.fighters[0]).Current)
	assert.Equal(t, cfg.KO, components.Animation.Get(tw.fighters[1]).Current)

	tw.steps(20)
	assert.Equal(t, 1, tw.count(messages.TopicMatchEnded))
}

func TestCounterReturnsDamage(t *testing.T) {
	tw := newTestWorld(t, 400, 460)
	var landed messages.AttackLandedEvent
	tw.bus.Subscribe(messages.TopicAttackLanded, func(p any) { landed = p.(messages.AttackLandedEvent) })

	require.True(t, tw.issue(1, "iron_guard"))
	require.True(t, tw.issue(0, "straight"))
	tw.steps(9)

	require.Equal(t, 1, tw.count(messages.TopicAttackLanded))
	assert.True(t, landed.Countered)
	assert.Equal(t, cfg.P2, landed.AttackerID)
	assert.Equal(t, "iron_guard", landed.MoveID)

	m := tw.match()
	assert.Equal(t, 88, m.Sides[0].HP)
	assert.Equal(t, 100, m.Sides[1].HP)
	assert.Nil(t, components.Combat.Get(tw.fighters[0]).Move, "countered move is interrupted")
}

func TestCounterHasNoHitbox(t *testing.T) {
	tw := newTestWorld(t, 400, 460)
	require.True(t, tw.issue(1, "iron_guard"))
	tw.steps(5)
	assert.Equal(t, components.PhaseActive, components.Combat.Get(tw.fighters[1]).Move.Phase())
	assert.Empty(t, ActiveHitboxes(tw.fighters[1]))
	assert.Zero(t, tw.count(messages.TopicAttackLanded))
}

func TestProjectileTravels(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	tw.match().Sides[0].Resonance = 25
	require.True(t, tw.issue(0, "resonance_wave"))
	assert.Zero(t, tw.match().Sides[0].Resonance)

	tw.steps(13)
	first := ActiveHitboxes(tw.fighters[0])
	require.Len(t, first, 1)
	assert.Equal(t, 230.0, first[0].Center.X)

	tw.steps(6)
	later := ActiveHitboxes(tw.fighters[0])
	require.Len(t, later, 1)
	assert.InDelta(t, 230+480*6.0/60, later[0].Center.X, 1e-9)
}

func TestIssueMoveRules(t *testing.T) {
	t.Run("unknown move", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		assert.False(t, tw.issue(0, "hadoken"))
		assert.Zero(t, tw.count(messages.TopicAttackStarted))
	})

	t.Run("aerial on the ground", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		assert.False(t, tw.issue(0, "air_kick"))
	})

	t.Run("ground move in the air", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		components.Physics.Get(tw.fighters[0]).Grounded = false
		assert.False(t, tw.issue(0, "jab"))
		assert.True(t, tw.issue(0, "air_kick"))
	})

	t.Run("hitstun", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		components.Combat.Get(tw.fighters[0]).HitstunFrames = 5
		assert.False(t, tw.issue(0, "jab"))
	})

	t.Run("meter", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		assert.False(t, tw.issue(0, "resonance_wave"))
		tw.match().Sides[0].Resonance = 30
		assert.True(t, tw.issue(0, "resonance_wave"))
		assert.Equal(t, 5, tw.match().Sides[0].Resonance)
	})

	t.Run("cancel only in recovery", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		require.True(t, tw.issue(0, "jab"))
		assert.False(t, tw.issue(0, "straight"))

		tw.steps(6)
		assert.False(t, tw.issue(0, "straight"), "still active")

		tw.step(nil)
		require.Equal(t, components.PhaseRecovery, components.Combat.Get(tw.fighters[0]).Move.Phase())
		assert.True(t, tw.issue(0, "straight"))
		move := components.Combat.Get(tw.fighters[0]).Move
		assert.Equal(t, "straight", move.MoveID)
		assert.Equal(t, uint64(2), move.InstanceID)
	})

	t.Run("non-cancelable", func(t *testing.T) {
		tw := newTestWorld(t, 200, 700)
		require.True(t, tw.issue(0, "straight"))
		tw.steps(14)
		require.Equal(t, components.PhaseRecovery, components.Combat.Get(tw.fighters[0]).Move.Phase())
		assert.False(t, tw.issue(0, "jab"))
	})
}

func TestMoveEndsAfterTimeline(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	require.True(t, tw.issue(0, "jab"))
	tw.steps(14)
	require.NotNil(t, components.Combat.Get(tw.fighters[0]).Move)
	tw.step(nil)
	assert.Nil(t, components.Combat.Get(tw.fighters[0]).Move)
}

func TestAerialEndsOnLanding(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	tw.step(messages.InputSet{cfg.P1: cfg.ActionJump})
	tw.steps(25)
	require.True(t, tw.issue(0, "air_drop"))

	p := components.Physics.Get(tw.fighters[0])
	for i := 0; i < 120 && !p.Grounded; i++ {
		tw.step(nil)
	}
	require.True(t, p.Grounded)
	assert.Nil(t, components.Combat.Get(tw.fighters[0]).Move, "landing cuts the move short")
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Center: gamemath.Vector{X: 0, Y: 0}, Radius: 10}
	assert.True(t, a.Overlaps(Box{Center: gamemath.Vector{X: 15, Y: 0}, Radius: 10}))
	assert.False(t, a.Overlaps(Box{Center: gamemath.Vector{X: 25, Y: 0}, Radius: 10}))
}

func TestResetCombatClearsMoveAndHitbox(t *testing.T) {
	tw := newTestWorld(t, 200, 700)
	require.True(t, tw.issue(0, "jab"))
	tw.steps(4)
	move := components.Combat.Get(tw.fighters[0]).Move
	require.NotNil(t, move.Hitbox)

	components.Combat.Get(tw.fighters[0]).HitstunFrames = 9
	ResetCombat(tw.ecs.World, tw.fighters[0])
	combat := components.Combat.Get(tw.fighters[0])
	assert.Nil(t, combat.Move)
	assert.Nil(t, move.Hitbox)
	assert.Zero(t, combat.HitstunFrames)
}
