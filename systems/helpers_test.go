package systems

import (
	"testing"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap/zaptest"
)

const testGround = 448.0

type testWorld struct {
	ecs      *ecs.ECS
	bus      *eventbus.Bus
	fighters [2]*donburi.Entry
	events   []messages.Topic
}

// newTestWorld builds a match world with two roster fighters standing at
// the given x positions.
func newTestWorld(t *testing.T, x1, x2 float64) *testWorld {
	t.Helper()
	logger := zaptest.NewLogger(t)
	tw := &testWorld{
		ecs: ecs.NewECS(donburi.NewWorld()),
		bus: eventbus.New(logger),
	}

	m := factory.CreateMatch(tw.ecs, factory.MatchSettings{
		ID: "test", Width: 960, Height: 544, Bus: tw.bus, Logger: logger,
	})
	arena := factory.Arena{GroundLevel: testGround, WallMin: 32, WallMax: 928}

	for slot, name := range []string{"kaito", "brann"} {
		c, err := cfg.LoadCharacter(name)
		require.NoError(t, err)
		x := x1
		if slot == 1 {
			x = x2
		}
		tw.fighters[slot] = factory.CreateFighter(tw.ecs, components.Space.Get(m), slot, c.CharacterDef,
			gamemath.Vector{X: x, Y: testGround}, arena)
	}

	for _, topic := range []messages.Topic{
		messages.TopicCharacterMove, messages.TopicJumpPerformed, messages.TopicAttackStarted,
		messages.TopicAttackLanded, messages.TopicCharacterHit, messages.TopicMatchEnded,
	} {
		topic := topic
		tw.bus.Subscribe(topic, func(any) { tw.events = append(tw.events, topic) })
	}
	RegisterMatchHandlers(tw.ecs.World, tw.bus)
	RegisterAnimationHandlers(tw.ecs.World, tw.bus)

	tw.ecs.AddSystem(UpdateInput)
	tw.ecs.AddSystem(UpdatePhysics)
	tw.ecs.AddSystem(UpdateCombat)
	tw.ecs.AddSystem(UpdateAnimation)
	tw.ecs.AddSystem(WithMatchActive(UpdateMatch))
	return tw
}

func (tw *testWorld) step(inputs messages.InputSet) {
	clockOf(tw.ecs.World).Tick++
	SetInputs(tw.ecs.World, inputs)
	tw.ecs.Update()
}

func (tw *testWorld) steps(n int) {
	for i := 0; i < n; i++ {
		tw.step(nil)
	}
}

func (tw *testWorld) match() *components.MatchData {
	m, _ := MatchState(tw.ecs.World)
	return m
}

func (tw *testWorld) count(topic messages.Topic) int {
	n := 0
	for _, e := range tw.events {
		if e == topic {
			n++
		}
	}
	return n
}
