package core

import cfg "github.com/automoto/doomerang-arena/config"

// stepEpsilon keeps accumulated float error from dropping a step when the
// caller passes exact multiples of the step length.
const stepEpsilon = 1e-9

// FixedStep converts variable frame times into a whole number of fixed
// simulation steps.
type FixedStep struct {
	Step         float64
	MaxFrameTime float64
	MaxSteps     int

	accumulator float64
}

// NewFixedStep creates an accumulator using the configured step guards.
func NewFixedStep() FixedStep {
	return FixedStep{
		Step:         cfg.FrameDuration,
		MaxFrameTime: cfg.Step.MaxFrameTime,
		MaxSteps:     cfg.Step.MaxStepsPerFrame,
	}
}

// Advance adds dt seconds and returns how many steps to run. Frame time
// above MaxFrameTime is discarded; steps beyond MaxSteps are dropped
// together with their accumulated time.
func (f *FixedStep) Advance(dt float64) int {
	if dt <= 0 {
		return 0
	}
	if f.MaxFrameTime > 0 && dt > f.MaxFrameTime {
		dt = f.MaxFrameTime
	}
	f.accumulator += dt

	steps := 0
	for f.accumulator+stepEpsilon >= f.Step {
		f.accumulator -= f.Step
		steps++
		if f.MaxSteps > 0 && steps >= f.MaxSteps {
			if f.accumulator > f.Step {
				f.accumulator = 0
			}
			break
		}
	}
	if f.accumulator < 0 {
		f.accumulator = 0
	}
	return steps
}

// Alpha is the fraction of a step left in the accumulator, for render
// interpolation.
func (f *FixedStep) Alpha() float64 {
	return f.accumulator / f.Step
}

// Reset drops accumulated time.
func (f *FixedStep) Reset() {
	f.accumulator = 0
}
