package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// HurtboxData links a fighter to the object standing in for its hurt
// region in the match's collision space. The object's Data points back at
// the fighter entry so hitbox checks can resolve the defender.
type HurtboxData struct {
	Object *resolv.Object
}

var Hurtbox = donburi.NewComponentType[HurtboxData]()

// Space is the per-match collision space holding hurtboxes and hitboxes.
var Space = donburi.NewComponentType[resolv.Space]()
