package factory

import (
	"github.com/automoto/doomerang-arena/archetypes"
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Arena is the stage geometry a fighter is held to.
type Arena struct {
	GroundLevel float64
	WallMin     float64
	WallMax     float64
}

// FighterID returns the id of the fighter in a slot.
func FighterID(slot int) string {
	if slot == 1 {
		return cfg.P2
	}
	return cfg.P1
}

// CreateFighter spawns a fighter standing on its spawn point, facing the
// middle of the stage, with its hurtbox registered in space.
func CreateFighter(ecs *ecs.ECS, space *resolv.Space, slot int, c *cfg.CharacterDef, spawn gamemath.Vector, arena Arena) *donburi.Entry {
	fighter := archetypes.Fighter.Spawn(ecs)

	components.Fighter.SetValue(fighter, components.FighterData{
		ID:        FighterID(slot),
		Slot:      slot,
		Character: c,
		Spawn:     spawn,
	})

	facing := cfg.DirectionRight
	if slot == 1 {
		facing = cfg.DirectionLeft
	}
	components.Physics.SetValue(fighter, components.PhysicsData{
		Position:    spawn,
		Grounded:    spawn.Y >= arena.GroundLevel,
		Facing:      facing,
		JumpForce:   c.JumpForce,
		GroundLevel: arena.GroundLevel,
		Weight:      c.Weight,
		BoundsMin:   arena.WallMin,
		BoundsMax:   arena.WallMax,
	})
	components.InputBuffer.SetValue(fighter, components.NewInputBuffer(cfg.Physics.InputBufferSize))
	components.Combat.SetValue(fighter, components.CombatData{})
	components.Animation.SetValue(fighter, components.AnimationData{
		Current:  cfg.Idle,
		Previous: cfg.StateNone,
		Blend:    1,
		Grounded: true,
	})

	r := c.HurtboxRadius
	obj := resolv.NewObject(spawn.X-r, spawn.Y-c.HurtboxHeight-r, r*2, r*2, tags.ResolvHurtbox)
	obj.Data = fighter
	if space != nil {
		space.Add(obj)
	}
	components.Hurtbox.SetValue(fighter, components.HurtboxData{Object: obj})

	return fighter
}
