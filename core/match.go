// Package core owns a match: it builds the ECS world, wires the event bus,
// runs the systems in fixed steps and exposes the read-only snapshot that
// presentation layers consume.
package core

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/records"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/leveldata"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/automoto/doomerang-arena/systems/factory"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Options configures a match.
type Options struct {
	ID             string
	Logger         *zap.Logger
	Stage          *leveldata.Stage
	DurationFrames int
}

// Option mutates Options.
type Option func(*Options)

// WithID fixes the match id instead of generating one.
func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}

// WithLogger sets the match logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithStage sets the stage geometry.
func WithStage(stage *leveldata.Stage) Option {
	return func(o *Options) { o.Stage = stage }
}

// WithDuration overrides the round length in frames.
func WithDuration(frames int) Option {
	return func(o *Options) { o.DurationFrames = frames }
}

// Match is one fight between two fighters. It is not safe for concurrent
// use: a single goroutine, usually a GameLoop, drives it.
type Match struct {
	id       string
	ecs      *ecs.ECS
	bus      *eventbus.Bus
	logger   *zap.Logger
	stage    *leveldata.Stage
	stepper  FixedStep
	entry    *donburi.Entry
	fighters [2]*donburi.Entry

	unsubscribe []func()
	disposed    bool

	// Scoreboard and tick as they were at Dispose, once the entities are gone.
	final     components.MatchData
	finalTick uint64
}

// ErrDisposed is returned by operations on a disposed match.
var ErrDisposed = errors.New("match disposed")

// NewMatch creates a match between two roster characters. p1 fights from
// the first spawn point, p2 from the second.
func NewMatch(p1, p2 string, opts ...Option) (*Match, error) {
	c1, err := cfg.LoadCharacter(p1)
	if err != nil {
		return nil, err
	}
	c2, err := cfg.LoadCharacter(p2)
	if err != nil {
		return nil, err
	}
	return newMatch(c1, c2, opts...)
}

// NewMatchFromDefs creates a match from character definitions that are not
// in the roster. Definitions are validated the same way roster entries are.
func NewMatchFromDefs(p1, p2 *cfg.CharacterDef, opts ...Option) (*Match, error) {
	c1, err := cfg.Prepare(p1)
	if err != nil {
		return nil, err
	}
	c2, err := cfg.Prepare(p2)
	if err != nil {
		return nil, err
	}
	return newMatch(c1, c2, opts...)
}

func newMatch(c1, c2 *cfg.LoadedCharacter, opts ...Option) (*Match, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Stage == nil {
		o.Stage = leveldata.DefaultStage()
	}
	if len(o.Stage.Spawns) < 2 {
		return nil, fmt.Errorf("stage %q: %w", o.Stage.Name, leveldata.ErrTooFewSpawns)
	}

	logger := o.Logger.With(zap.String("match", o.ID))
	world := donburi.NewWorld()
	m := &Match{
		id:      o.ID,
		ecs:     ecs.NewECS(world),
		bus:     eventbus.New(logger),
		logger:  logger,
		stage:   o.Stage,
		stepper: NewFixedStep(),
	}

	m.entry = factory.CreateMatch(m.ecs, factory.MatchSettings{
		ID:             o.ID,
		Width:          o.Stage.Width,
		Height:         o.Stage.Height,
		DurationFrames: o.DurationFrames,
		Bus:            m.bus,
		Logger:         logger,
	})
	data := components.Match.Get(m.entry)

	for slot, c := range []*cfg.LoadedCharacter{c1, c2} {
		m.fighters[slot] = m.spawnFighter(slot, c)
	}

	// Match handlers first: HP is settled before presentation sees a hit.
	m.unsubscribe = append(m.unsubscribe,
		systems.RegisterMatchHandlers(world, m.bus),
		systems.RegisterAnimationHandlers(world, m.bus),
	)

	m.ecs.AddSystem(systems.UpdateInput)
	m.ecs.AddSystem(systems.UpdatePhysics)
	m.ecs.AddSystem(systems.UpdateCombat)
	m.ecs.AddSystem(systems.UpdateAnimation)
	m.ecs.AddSystem(systems.WithMatchActive(systems.UpdateMatch))

	logger.Info("match created",
		zap.String("p1", c1.Name),
		zap.String("p2", c2.Name),
		zap.String("stage", o.Stage.Name),
		zap.Int("duration_frames", data.Duration),
	)
	return m, nil
}

func (m *Match) spawnFighter(slot int, c *cfg.LoadedCharacter) *donburi.Entry {
	for _, adj := range c.Adjustments {
		m.logger.Warn("character data adjusted",
			zap.String("fighter", factory.FighterID(slot)),
			zap.String("character", c.Name),
			zap.Stringer("adjustment", adj),
		)
	}

	spawn := m.stage.Spawns[slot]
	return factory.CreateFighter(m.ecs, m.Space(), slot, c.CharacterDef,
		gamemath.Vector{X: spawn.X, Y: spawn.Y},
		factory.Arena{
			GroundLevel: m.stage.GroundLevel,
			WallMin:     m.stage.WallMin,
			WallMax:     m.stage.WallMax,
		},
	)
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// Bus returns the match event bus for presentation subscribers.
func (m *Match) Bus() *eventbus.Bus { return m.bus }

// World exposes the ECS world for read-only inspection.
func (m *Match) World() donburi.World { return m.ecs.World }

// Stage returns the stage geometry.
func (m *Match) Stage() *leveldata.Stage { return m.stage }

// Space exposes the collision space for debug overlays. It is nil after
// Dispose.
func (m *Match) Space() *resolv.Space {
	if m.disposed {
		return nil
	}
	return components.Space.Get(m.entry)
}

// Tick returns the number of fixed steps simulated since creation or reset.
func (m *Match) Tick() uint64 {
	if m.disposed {
		return m.finalTick
	}
	return components.Clock.Get(m.entry).Tick
}

// Ended reports whether the outcome is decided.
func (m *Match) Ended() bool {
	s := m.State()
	return s.Ended()
}

// State returns a copy of the scoreboard.
func (m *Match) State() components.MatchData {
	if m.disposed {
		return m.final
	}
	return *components.Match.Get(m.entry)
}

// Alpha is the render interpolation fraction left over by the last Update.
func (m *Match) Alpha() float64 {
	return m.stepper.Alpha()
}

// Update advances the simulation by dt seconds of wall time, running as
// many fixed steps as fit, and returns the number of steps run. inputs is
// held for every step of the call.
func (m *Match) Update(dt float64, inputs messages.InputSet) int {
	if m.disposed {
		return 0
	}
	steps := m.stepper.Advance(dt)
	for i := 0; i < steps; i++ {
		m.StepFrame(inputs)
	}
	return steps
}

// StepFrame runs exactly one fixed step. Systems run in order: input,
// kinetics, combat, animation, match.
func (m *Match) StepFrame(inputs messages.InputSet) {
	if m.disposed {
		return
	}
	clock := components.Clock.Get(m.entry)
	clock.Tick++
	clock.DeltaTime = cfg.FrameDuration

	systems.SetInputs(m.ecs.World, inputs)
	m.ecs.Update()
}

// Issue starts a move for a fighter outside the input path, for scripted
// fighters and tests. It follows the same rules as a button press.
func (m *Match) Issue(fighterID, moveID string) bool {
	e, ok := systems.FindFighter(m.ecs.World, fighterID)
	if !ok || m.disposed {
		return false
	}
	return systems.IssueMove(m.ecs.World, e, moveID)
}

// Abort ends the match without a winner. It is a no-op once ended.
func (m *Match) Abort() {
	if m.disposed {
		return
	}
	systems.AbortMatch(m.ecs.World)
}

// Reset returns both fighters to their spawns and restores a fresh
// scoreboard under the same match id. Terminal animation states are left.
func (m *Match) Reset() {
	if m.disposed {
		return
	}
	w := m.ecs.World
	for _, e := range m.fighters {
		systems.ResetCombat(w, e)
		systems.ResetPhysics(e)
		components.InputBuffer.Get(e).Clear()
		systems.ResetAnimation(components.Animation.Get(e))
	}
	systems.ResetMatch(w)
	components.Clock.Get(m.entry).Tick = 0
	m.stepper.Reset()
	m.logger.Info("match reset")
}

// Dispose releases every subscription and removes collision objects and
// entities. The match does nothing afterwards; State and Tick keep
// reporting the last values.
func (m *Match) Dispose() {
	if m.disposed {
		return
	}
	for _, u := range m.unsubscribe {
		u()
	}
	m.unsubscribe = nil

	m.final = m.State()
	m.finalTick = m.Tick()

	w := m.ecs.World
	space := m.Space()
	for i, e := range m.fighters {
		systems.ResetCombat(w, e)
		if obj := components.Hurtbox.Get(e).Object; obj != nil {
			space.Remove(obj)
		}
		w.Remove(e.Entity())
		m.fighters[i] = nil
	}
	w.Remove(m.entry.Entity())
	m.entry = nil
	m.bus.Clear()
	m.disposed = true
	m.logger.Debug("match disposed")
}

// EncodeState serialises the scoreboard.
func (m *Match) EncodeState() ([]byte, error) {
	return records.EncodeMatchState(m.State())
}

// RestoreState replaces the scoreboard with a previously encoded one. The
// encoded match must have the same fighter ids.
func (m *Match) RestoreState(data []byte) error {
	if m.disposed {
		return ErrDisposed
	}
	restored, err := records.DecodeMatchState(data)
	if err != nil {
		return err
	}
	current := components.Match.Get(m.entry)
	for i := range current.Sides {
		if restored.Sides[i].ID != current.Sides[i].ID {
			return fmt.Errorf("restore state: side %d is %q, want %q", i, restored.Sides[i].ID, current.Sides[i].ID)
		}
	}
	*current = restored
	return nil
}
