// Package records persists finished matches and serialises match state.
package records

import (
	"fmt"

	"github.com/automoto/doomerang-arena/components"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMatchState serialises a scoreboard with msgpack.
func EncodeMatchState(state components.MatchData) ([]byte, error) {
	data, err := msgpack.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("encode match state: %w", err)
	}
	return data, nil
}

// DecodeMatchState is the inverse of EncodeMatchState.
func DecodeMatchState(data []byte) (components.MatchData, error) {
	var state components.MatchData
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return components.MatchData{}, fmt.Errorf("decode match state: %w", err)
	}
	return state, nil
}
