package config

// FrameRate is the fixed simulation rate. Frame counts in move data are
// expressed against it.
const FrameRate = 60

// FrameDuration is the length of one simulation step in seconds.
const FrameDuration = 1.0 / FrameRate

// PhysicsConfig contains kinematic integration values. Distances are in
// stage pixels, times in seconds; y grows downward.
type PhysicsConfig struct {
	// Global physics
	Gravity      float64 // px/s² applied while airborne
	MaxFallSpeed float64 // px/s cap on downward velocity

	// Friction, as horizontal deceleration in px/s²
	GroundFriction float64
	AirFriction    float64

	// Horizontal acceleration toward the input direction while airborne
	AirAcceleration float64

	// Input forgiveness
	CoyoteFrames    int // buffered frames searched for a grounded snapshot
	InputBufferSize int // ring buffer capacity for combo detection

	// Step guard
	MaxDeltaTime float64 // dt above this is clamped before integration
}

// CombatConfig contains combat-related configuration values
type CombatConfig struct {
	// Knockback
	KnockbackScale float64 // converts knockback distance into launch speed (px/s per unit)

	// Hit-stop applied when an attack omits HitStopFrames
	DefaultHitStopFrames int

	// Frames a forward input stays "held" before walking turns into running
	RunAfterFrames int

	// Special command sequences must complete within this many buffered frames
	CommandWindow int
}

// AnimationConfig contains animation-state values
type AnimationConfig struct {
	// Crossfade window between outgoing and incoming states (frames)
	CrossfadeFrames int

	// Jump state duration before the machine falls through to Fall (frames)
	JumpFrames int

	// Horizontal speed above which a grounded fighter shows Run instead of Walk
	RunSpeedThreshold float64
}

// MatchConfig contains match lifecycle values
type MatchConfig struct {
	// Duration of a round in frames
	DurationFrames int

	// HP and resonance bounds
	MaxHP        int
	MaxResonance int

	// Resonance gained per point of damage dealt / taken
	ResonancePerDamageDealt float64
	ResonancePerDamageTaken float64
}

// StepConfig controls the fixed-timestep accumulator in the core loop.
type StepConfig struct {
	MaxFrameTime     float64 // wall-clock dt above this is discarded (spiral of death guard)
	MaxStepsPerFrame int
}

// Global configuration instances
var Physics PhysicsConfig
var Combat CombatConfig
var Animation AnimationConfig
var Match MatchConfig
var Step StepConfig

// Direction constants for fighter facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

// Fighter slots. The first two fighters of a match always use these ids.
const (
	P1 = "p1"
	P2 = "p2"
)

func init() {
	Physics = PhysicsConfig{
		Gravity:      2400,
		MaxFallSpeed: 1400,

		GroundFriction: 3000,
		AirFriction:    500,

		AirAcceleration: 1800,

		CoyoteFrames:    4,
		InputBufferSize: 6,

		MaxDeltaTime: FrameDuration,
	}

	Combat = CombatConfig{
		KnockbackScale:       8.0,
		DefaultHitStopFrames: 4,
		RunAfterFrames:       18,
		CommandWindow:        6,
	}

	Animation = AnimationConfig{
		CrossfadeFrames:   6,
		JumpFrames:        18,
		RunSpeedThreshold: 300,
	}

	Match = MatchConfig{
		DurationFrames:          99 * FrameRate,
		MaxHP:                   100,
		MaxResonance:            100,
		ResonancePerDamageDealt: 0.5,
		ResonancePerDamageTaken: 0.25,
	}

	Step = StepConfig{
		MaxFrameTime:     0.25,
		MaxStepsPerFrame: 8,
	}
}

// FramesToSeconds converts a frame count at FrameRate into seconds.
func FramesToSeconds(frames int) float64 {
	return float64(frames) / FrameRate
}
