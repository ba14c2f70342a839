package components

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
)

// FighterData identifies a fighter and carries per-fighter bookkeeping that
// is not physics or combat state.
type FighterData struct {
	ID        string
	Slot      int
	Character *config.CharacterDef
	Spawn     gamemath.Vector

	HeldDirection     float64                     // direction of the current walk
	HeldForwardFrames int                         // consecutive frames walking in HeldDirection
	LastMove          messages.CharacterMoveEvent // last published motion, for de-duplication
	MovePublished     bool
}

var Fighter = donburi.NewComponentType[FighterData]()
