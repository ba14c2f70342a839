// Package factory spawns the entities a match is made of.
package factory

import (
	"github.com/automoto/doomerang-arena/archetypes"
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// SpaceCellSize is the resolv broadphase cell size in pixels.
const SpaceCellSize = 16

// MatchSettings describes the match entry to spawn.
type MatchSettings struct {
	ID             string
	Width, Height  int
	DurationFrames int // 0 keeps the configured round length
	Bus            *eventbus.Bus
	Logger         *zap.Logger
}

// CreateMatch spawns the entry holding the match-scoped singletons: the
// scoreboard, the clock, the runtime services and the collision space.
func CreateMatch(ecs *ecs.ECS, s MatchSettings) *donburi.Entry {
	match := archetypes.Match.Spawn(ecs)

	data := components.NewMatchData(s.ID, cfg.P1, cfg.P2)
	if s.DurationFrames > 0 {
		data.Duration, data.Timer = s.DurationFrames, s.DurationFrames
	}
	components.Match.SetValue(match, data)
	components.Clock.SetValue(match, components.ClockData{DeltaTime: cfg.FrameDuration})
	components.Runtime.SetValue(match, components.RuntimeData{Bus: s.Bus, Logger: s.Logger})
	components.Space.Set(match, resolv.NewSpace(s.Width, s.Height, SpaceCellSize, SpaceCellSize))
	return match
}
