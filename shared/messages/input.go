package messages

import "github.com/automoto/doomerang-arena/config"

// InputFrame is one buffered frame of raw input with the grounded snapshot
// taken when it was recorded.
type InputFrame struct {
	Inputs      config.Action
	WasGrounded bool
	Timestamp   uint64 // simulation tick
}

// InputSet maps fighter ids to the actions held this frame.
type InputSet map[string]config.Action
