package config

// ScriptStyle selects how a generated input script mixes its actions.
type ScriptStyle int

const (
	ScriptStyleWalk ScriptStyle = iota
	ScriptStyleMixed
	ScriptStylePressure
)

// ScriptStyleConfig holds the odds and hold lengths for a generated script.
// Scripts never look at the match; every step is drawn from these values.
type ScriptStyleConfig struct {
	HoldMin       int     // Shortest hold in frames
	HoldMax       int     // Longest hold in frames
	AttackChance  float64 // Probability a step presses an attack button
	SpecialChance float64 // Share of attack presses that use special
	JumpChance    float64 // Probability a step jumps
}

// ScriptConfigData holds all input script configuration
type ScriptConfigData struct {
	Styles map[ScriptStyle]ScriptStyleConfig
}

// Script holds generated input script configuration
var Script ScriptConfigData

func init() {
	Script = ScriptConfigData{
		Styles: map[ScriptStyle]ScriptStyleConfig{
			ScriptStyleWalk: {
				HoldMin:      20,
				HoldMax:      60,
				AttackChance: 0.1,
				JumpChance:   0.1,
			},
			ScriptStyleMixed: {
				HoldMin:       8,
				HoldMax:       30,
				AttackChance:  0.4,
				SpecialChance: 0.2,
				JumpChance:    0.1,
			},
			ScriptStylePressure: {
				HoldMin:       4,
				HoldMax:       12, // Short holds, so buttons are pressed often
				AttackChance:  0.7,
				SpecialChance: 0.3,
				JumpChance:    0.05,
			},
		},
	}
}
