package config

import (
	"fmt"
	"sort"
)

// BindingKey selects a move from a pressed attack button and the fighter's
// air state.
type BindingKey struct {
	Button   Action
	Airborne bool
}

// Command is a special-move input sequence: directions entered in order,
// finished by a button press. Directions use ActionForward/ActionBack so the
// same command works on either side of the stage.
type Command struct {
	Sequence []Action
	Button   Action
	MoveID   string
}

// CharacterDef is a fighter's static data. Variants differ by data only.
type CharacterDef struct {
	Name      string
	Weight    float64
	JumpForce float64 // px/s initial upward speed
	WalkSpeed float64
	RunSpeed  float64

	HurtboxRadius float64
	HurtboxHeight float64 // centre of the hurtbox above the feet

	Moves    MoveSet
	Bindings map[BindingKey]string
	Commands []Command
}

// LoadedCharacter is a validated, sanitised copy of a roster entry.
type LoadedCharacter struct {
	*CharacterDef
	Adjustments []Adjustment
}

// Characters is the built-in roster.
var Characters map[string]*CharacterDef

func init() {
	Characters = map[string]*CharacterDef{
		"kaito": kaito(),
		"brann": brann(),
	}
}

// CharacterNames returns the roster names, sorted.
func CharacterNames() []string {
	names := make([]string, 0, len(Characters))
	for name := range Characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadCharacter resolves a roster entry and validates it.
func LoadCharacter(name string) (*LoadedCharacter, error) {
	def, ok := Characters[name]
	if !ok {
		return nil, fmt.Errorf("load character %q: %w", name, ErrUnknownCharacter)
	}
	return Prepare(def)
}

// Prepare validates a character definition and returns a sanitised copy.
// Every move-id reachable from a binding or command must exist in the move
// set; a miss is a *ConfigurationError.
func Prepare(def *CharacterDef) (*LoadedCharacter, error) {
	if def == nil {
		return nil, &ConfigurationError{Reason: "nil definition"}
	}
	if def.Name == "" {
		return nil, &ConfigurationError{Reason: "empty name"}
	}

	moves, adj := def.Moves.sanitized()

	for key, moveID := range def.Bindings {
		if _, ok := moves.Get(moveID); !ok {
			return nil, &ConfigurationError{
				Character: def.Name,
				MoveID:    moveID,
				Reason:    fmt.Sprintf("bound to %s (airborne=%t) but missing from move set", key.Button, key.Airborne),
			}
		}
	}
	for _, cmd := range def.Commands {
		if _, ok := moves.Get(cmd.MoveID); !ok {
			return nil, &ConfigurationError{
				Character: def.Name,
				MoveID:    cmd.MoveID,
				Reason:    "referenced by a command but missing from move set",
			}
		}
		if len(cmd.Sequence) == 0 || cmd.Button == ActionNone {
			return nil, &ConfigurationError{
				Character: def.Name,
				MoveID:    cmd.MoveID,
				Reason:    "command needs a direction sequence and a button",
			}
		}
	}

	cp := *def
	cp.Moves = *moves
	cp.Bindings = make(map[BindingKey]string, len(def.Bindings))
	for k, v := range def.Bindings {
		cp.Bindings[k] = v
	}
	cp.Commands = make([]Command, len(def.Commands))
	copy(cp.Commands, def.Commands)
	// Longest sequences first so "down, forward" wins over "down".
	sort.SliceStable(cp.Commands, func(i, j int) bool {
		return len(cp.Commands[i].Sequence) > len(cp.Commands[j].Sequence)
	})

	if cp.Weight < 0 {
		adj = append(adj, Adjustment{MoveID: "-", Field: "Weight", From: cp.Weight, To: 0})
		cp.Weight = 0
	}
	if cp.HurtboxRadius <= 0 {
		adj = append(adj, Adjustment{MoveID: "-", Field: "HurtboxRadius", From: cp.HurtboxRadius, To: 20})
		cp.HurtboxRadius = 20
	}
	return &LoadedCharacter{CharacterDef: &cp, Adjustments: adj}, nil
}

// Move returns the move bound to a button for the given air state.
func (c *CharacterDef) Move(button Action, airborne bool) (string, *AttackData, bool) {
	moveID, ok := c.Bindings[BindingKey{Button: button, Airborne: airborne}]
	if !ok {
		return "", nil, false
	}
	attack, ok := c.Moves.Get(moveID)
	return moveID, attack, ok
}

func kaito() *CharacterDef {
	return &CharacterDef{
		Name:          "kaito",
		Weight:        90,
		JumpForce:     900,
		WalkSpeed:     220,
		RunSpeed:      400,
		HurtboxRadius: 22,
		HurtboxHeight: 40,
		Moves: MoveSet{
			Light: map[string]*AttackData{
				"jab": {
					Name: "Jab", Damage: 6, KnockbackPower: 30, LaunchAngle: 20, HitstunFrames: 12,
					StartupFrames: 3, ActiveFrames: 3, RecoveryFrames: 8,
					Category: CategoryGround, CanCancel: true,
					HitboxRadius: 16, HitboxOffsetX: 34, HitboxOffsetY: 44,
				},
				"straight": {
					Name: "Straight", Damage: 15, KnockbackPower: 60, LaunchAngle: 35, HitstunFrames: 20,
					StartupFrames: 8, ActiveFrames: 4, RecoveryFrames: 16,
					Category: CategoryGround,
					HitboxRadius: 20, HitboxOffsetX: 40, HitboxOffsetY: 40, HitStopFrames: 6,
				},
			},
			Special: map[string]*AttackData{
				"resonance_wave": {
					Name: "Resonance Wave", Damage: 12, KnockbackPower: 45, LaunchAngle: 15, HitstunFrames: 18,
					StartupFrames: 12, ActiveFrames: 30, RecoveryFrames: 20,
					Category: CategoryProjectile,
					HitboxRadius: 14, HitboxOffsetX: 30, HitboxOffsetY: 40,
					ProjectileSpeed: 480, MeterCost: 25,
				},
				"rising_arc": {
					Name: "Rising Arc", Damage: 5, KnockbackPower: 40, LaunchAngle: 80, HitstunFrames: 16,
					StartupFrames: 5, ActiveFrames: 12, RecoveryFrames: 18,
					Category: CategoryGround,
					HitboxRadius: 24, HitboxOffsetX: 26, HitboxOffsetY: 56,
					MultiHit: 3, MultiHitInterval: 4,
				},
				"parry": {
					Name: "Parry", Damage: 10, KnockbackPower: 50, LaunchAngle: 30, HitstunFrames: 22,
					StartupFrames: 2, ActiveFrames: 10, RecoveryFrames: 20,
					Category: CategoryCounter,
					HitboxRadius: 26, HitboxOffsetX: 0, HitboxOffsetY: 40, HitStopFrames: 10,
				},
			},
			Aerial: map[string]*AttackData{
				"air_kick": {
					Name: "Air Kick", Damage: 9, KnockbackPower: 40, LaunchAngle: 30, HitstunFrames: 14,
					StartupFrames: 4, ActiveFrames: 6, RecoveryFrames: 10,
					Category: CategoryAerial, CanCancel: true,
					HitboxRadius: 18, HitboxOffsetX: 30, HitboxOffsetY: 30,
				},
				"air_drop": {
					Name: "Air Drop", Damage: 13, KnockbackPower: 50, LaunchAngle: -60, HitstunFrames: 18,
					StartupFrames: 7, ActiveFrames: 5, RecoveryFrames: 14,
					Category: CategoryAerial,
					HitboxRadius: 20, HitboxOffsetX: 10, HitboxOffsetY: 0,
				},
			},
			Grab: map[string]*AttackData{
				"throw": {
					Name: "Throw", Damage: 12, KnockbackPower: 70, LaunchAngle: 45, HitstunFrames: 30,
					StartupFrames: 5, ActiveFrames: 2, RecoveryFrames: 25,
					Category: CategoryGround,
					HitboxRadius: 14, HitboxOffsetX: 26, HitboxOffsetY: 40,
				},
			},
		},
		Bindings: map[BindingKey]string{
			{Button: ActionLight}:                 "jab",
			{Button: ActionHeavy}:                 "straight",
			{Button: ActionSpecial}:               "resonance_wave",
			{Button: ActionGrab}:                  "throw",
			{Button: ActionLight, Airborne: true}: "air_kick",
			{Button: ActionHeavy, Airborne: true}: "air_drop",
		},
		Commands: []Command{
			{Sequence: []Action{ActionDown, ActionForward}, Button: ActionSpecial, MoveID: "rising_arc"},
			{Sequence: []Action{ActionDown}, Button: ActionSpecial, MoveID: "parry"},
		},
	}
}

func brann() *CharacterDef {
	return &CharacterDef{
		Name:          "brann",
		Weight:        130,
		JumpForce:     820,
		WalkSpeed:     170,
		RunSpeed:      320,
		HurtboxRadius: 26,
		HurtboxHeight: 44,
		Moves: MoveSet{
			Light: map[string]*AttackData{
				"palm": {
					Name: "Palm", Damage: 8, KnockbackPower: 35, LaunchAngle: 15, HitstunFrames: 12,
					StartupFrames: 5, ActiveFrames: 3, RecoveryFrames: 10,
					Category: CategoryGround, CanCancel: true,
					HitboxRadius: 20, HitboxOffsetX: 38, HitboxOffsetY: 46,
				},
				"hammer": {
					Name: "Hammer", Damage: 20, KnockbackPower: 80, LaunchAngle: 40, HitstunFrames: 24,
					StartupFrames: 14, ActiveFrames: 5, RecoveryFrames: 22,
					Category: CategoryGround,
					HitboxRadius: 26, HitboxOffsetX: 44, HitboxOffsetY: 36, HitStopFrames: 8,
				},
			},
			Special: map[string]*AttackData{
				"quake": {
					Name: "Quake", Damage: 14, KnockbackPower: 55, LaunchAngle: 70, HitstunFrames: 20,
					StartupFrames: 16, ActiveFrames: 8, RecoveryFrames: 24,
					Category: CategoryGround,
					HitboxRadius: 40, HitboxOffsetX: 30, HitboxOffsetY: 10,
					MeterCost: 30,
				},
				"iron_guard": {
					Name: "Iron Guard", Damage: 12, KnockbackPower: 60, LaunchAngle: 25, HitstunFrames: 24,
					StartupFrames: 3, ActiveFrames: 12, RecoveryFrames: 22,
					Category: CategoryCounter,
					HitboxRadius: 30, HitboxOffsetX: 0, HitboxOffsetY: 44, HitStopFrames: 10,
				},
			},
			Aerial: map[string]*AttackData{
				"body_drop": {
					Name: "Body Drop", Damage: 14, KnockbackPower: 45, LaunchAngle: 20, HitstunFrames: 16,
					StartupFrames: 6, ActiveFrames: 8, RecoveryFrames: 14,
					Category: CategoryAerial,
					HitboxRadius: 28, HitboxOffsetX: 12, HitboxOffsetY: 10,
				},
			},
			Grab: map[string]*AttackData{
				"suplex": {
					Name: "Suplex", Damage: 18, KnockbackPower: 75, LaunchAngle: 60, HitstunFrames: 32,
					StartupFrames: 7, ActiveFrames: 2, RecoveryFrames: 30,
					Category: CategoryGround,
					HitboxRadius: 16, HitboxOffsetX: 30, HitboxOffsetY: 44,
				},
			},
		},
		Bindings: map[BindingKey]string{
			{Button: ActionLight}:                 "palm",
			{Button: ActionHeavy}:                 "hammer",
			{Button: ActionSpecial}:               "quake",
			{Button: ActionGrab}:                  "suplex",
			{Button: ActionLight, Airborne: true}: "body_drop",
			{Button: ActionHeavy, Airborne: true}: "body_drop",
		},
		Commands: []Command{
			{Sequence: []Action{ActionDown}, Button: ActionSpecial, MoveID: "iron_guard"},
		},
	}
}
