package config

import (
	"errors"
	"fmt"
)

// ErrUnknownCharacter is returned when a roster lookup misses.
var ErrUnknownCharacter = errors.New("unknown character")

// ConfigurationError reports a character definition that cannot be used in
// a match. It is raised at load time so a match never starts with a dangling
// move reference.
type ConfigurationError struct {
	Character string
	MoveID    string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.MoveID != "" {
		return fmt.Sprintf("character %q: move %q: %s", e.Character, e.MoveID, e.Reason)
	}
	return fmt.Sprintf("character %q: %s", e.Character, e.Reason)
}
