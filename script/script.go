// Package script replays input sequences for fighters that no one is
// holding a keyboard for: the headless binary, demos and long-run tests.
//
// A script never reads the match. It is either a fixed list of timed steps
// or an endless sequence drawn from a seeded generator, so the same seed
// always produces the same inputs.
package script

import (
	"math/rand"

	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/core"
	"github.com/automoto/doomerang-arena/shared/messages"
)

// Step holds a set of actions for a number of frames.
type Step struct {
	Hold   cfg.Action
	Frames int
}

// Script yields one fighter's held actions frame by frame.
type Script struct {
	ID string

	steps []Step
	pos   int
	left  int

	rng   *rand.Rand
	style cfg.ScriptStyleConfig
}

// New creates a fixed script. Once the steps run out it holds nothing.
func New(id string, steps ...Step) *Script {
	s := &Script{ID: id, steps: steps}
	s.rewind()
	return s
}

// Random creates an endless script drawn from a seeded generator.
func Random(id string, style cfg.ScriptStyle, seed int64) *Script {
	tuning, ok := cfg.Script.Styles[style]
	if !ok {
		tuning = cfg.Script.Styles[cfg.ScriptStyleMixed]
	}
	return &Script{
		ID:    id,
		rng:   rand.New(rand.NewSource(seed)),
		style: tuning,
	}
}

func (s *Script) rewind() {
	s.pos, s.left = 0, 0
	if len(s.steps) > 0 {
		s.left = s.steps[0].Frames
	}
}

// Next returns the actions to hold this frame and advances by one frame.
func (s *Script) Next() cfg.Action {
	for s.left <= 0 {
		if s.pos+1 < len(s.steps) {
			s.pos++
			s.left = s.steps[s.pos].Frames
			continue
		}
		if s.rng == nil {
			return cfg.ActionNone
		}
		s.steps = append(s.steps[:0], s.generate())
		s.pos, s.left = 0, s.steps[0].Frames
	}
	s.left--
	return s.steps[s.pos].Hold
}

// generate draws one step. Steps are at least one frame long.
func (s *Script) generate() Step {
	t := s.style

	var hold cfg.Action
	switch s.rng.Intn(3) {
	case 1:
		hold = cfg.ActionMoveLeft
	case 2:
		hold = cfg.ActionMoveRight
	}
	if s.rng.Float64() < t.JumpChance {
		hold |= cfg.ActionJump
	}
	if s.rng.Float64() < t.AttackChance {
		if s.rng.Float64() < t.SpecialChance {
			hold |= cfg.ActionSpecial
		} else if s.rng.Intn(3) == 0 {
			hold |= cfg.ActionHeavy
		} else {
			hold |= cfg.ActionLight
		}
	}

	frames := t.HoldMin
	if t.HoldMax > t.HoldMin {
		frames += s.rng.Intn(t.HoldMax - t.HoldMin + 1)
	}
	if frames < 1 {
		frames = 1
	}
	return Step{Hold: hold, Frames: frames}
}

// Controller merges an optional human input source with scripted fighters.
type Controller struct {
	Human   core.InputSource
	Scripts []*Script
}

// Poll implements core.InputSource. A script overrides human input for
// its fighter.
func (c *Controller) Poll(tick uint64) messages.InputSet {
	set := messages.InputSet{}
	if c.Human != nil {
		for id, a := range c.Human.Poll(tick) {
			set[id] = a
		}
	}
	for _, s := range c.Scripts {
		set[s.ID] = s.Next()
	}
	return set
}
