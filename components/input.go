package components

import (
	"github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/yohamta/donburi"
)

// InputBufferData stores a fighter's input for the current and previous
// frame plus two bounded histories: raw actions for command detection and
// grounded snapshots for coyote time.
type InputBufferData struct {
	Current  config.Action
	Previous config.Action

	Combo   *Ring[config.Action]
	History *Ring[messages.InputFrame]
}

// NewInputBuffer creates empty histories of the given capacity.
func NewInputBuffer(capacity int) InputBufferData {
	return InputBufferData{
		Combo:   NewRing[config.Action](capacity),
		History: NewRing[messages.InputFrame](capacity),
	}
}

// Clear drops both histories and the held state.
func (b *InputBufferData) Clear() {
	b.Current, b.Previous = config.ActionNone, config.ActionNone
	b.Combo.Clear()
	b.History.Clear()
}

var InputBuffer = donburi.NewComponentType[InputBufferData]()
