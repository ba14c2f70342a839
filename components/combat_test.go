package components

import (
	"testing"

	"github.com/automoto/doomerang-arena/config"
	"github.com/stretchr/testify/assert"
)

func newInstance(a *config.AttackData) *MoveInstance {
	return &MoveInstance{InstanceID: 1, MoveID: "test", Attack: a, Hits: map[string]*HitRecord{}}
}

func TestMovePhases(t *testing.T) {
	m := newInstance(&config.AttackData{StartupFrames: 8, ActiveFrames: 4, RecoveryFrames: 16})

	tests := []struct {
		frame  int
		phase  MovePhase
		active int
	}{
		{0, PhaseStartup, -1},
		{8, PhaseStartup, -1},
		{9, PhaseActive, 0},
		{12, PhaseActive, 3},
		{13, PhaseRecovery, -1},
		{28, PhaseRecovery, -1},
		{29, PhaseDone, -1},
	}
	for _, tt := range tests {
		m.Frame = tt.frame
		assert.Equal(t, tt.phase, m.Phase(), "frame %d", tt.frame)
		assert.Equal(t, tt.active, m.ActiveFrame(), "frame %d", tt.frame)
	}
}

func TestSingleHitCreditsOnce(t *testing.T) {
	m := newInstance(&config.AttackData{StartupFrames: 1, ActiveFrames: 10, RecoveryFrames: 1})
	m.Frame = 2
	assert.True(t, m.CanCredit("p2"))
	m.Credit("p2")
	m.Frame = 9
	assert.False(t, m.CanCredit("p2"))
	assert.True(t, m.CanCredit("p3"), "registry is per defender")
}

func TestMultiHitSpacing(t *testing.T) {
	m := newInstance(&config.AttackData{
		StartupFrames: 5, ActiveFrames: 12, RecoveryFrames: 18,
		MultiHit: 3, MultiHitInterval: 4,
	})

	credited := 0
	for m.Frame = 6; m.Frame <= 17; m.Frame++ {
		if m.CanCredit("p2") {
			m.Credit("p2")
			credited++
		}
	}
	assert.Equal(t, 3, credited)
	assert.Equal(t, 14, m.Hits["p2"].LastFrame)
}

func TestFreshInstanceHasFreshRegistry(t *testing.T) {
	a := &config.AttackData{StartupFrames: 1, ActiveFrames: 3, RecoveryFrames: 1}
	first := newInstance(a)
	first.Credit("p2")

	second := newInstance(a)
	assert.True(t, second.CanCredit("p2"))
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{3, 4, 5}, r.Slice())

	newest, ok := r.At(0)
	assert.True(t, ok)
	assert.Equal(t, 5, newest)
	_, ok = r.At(3)
	assert.False(t, ok)

	*r.Ptr(2) = 30
	assert.Equal(t, []int{30, 4, 5}, r.Slice())

	r.Clear()
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Ptr(0))
}

func TestMatchDataLeaderAndSide(t *testing.T) {
	m := NewMatchData("m", config.P1, config.P2)
	assert.False(t, m.Ended())
	assert.Equal(t, config.Match.DurationFrames, m.Timer)
	assert.Nil(t, m.Side("p3"))

	m.Side(config.P2).HP = 1
	assert.Equal(t, config.P1, m.Leader())
}
