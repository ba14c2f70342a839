// Package input maps keyboard state onto fighter actions for local play.
package input

import (
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
)

// Layout binds each action to one or more keys.
type Layout map[cfg.Action][]ebiten.Key

// P1Layout is the left-hand layout.
var P1Layout = Layout{
	cfg.ActionMoveLeft:  {ebiten.KeyA},
	cfg.ActionMoveRight: {ebiten.KeyD},
	cfg.ActionUp:        {ebiten.KeyW},
	cfg.ActionDown:      {ebiten.KeyS},
	cfg.ActionJump:      {ebiten.KeySpace},
	cfg.ActionLight:     {ebiten.KeyF},
	cfg.ActionHeavy:     {ebiten.KeyG},
	cfg.ActionSpecial:   {ebiten.KeyH},
	cfg.ActionGrab:      {ebiten.KeyR},
}

// P2Layout is the right-hand layout.
var P2Layout = Layout{
	cfg.ActionMoveLeft:  {ebiten.KeyArrowLeft},
	cfg.ActionMoveRight: {ebiten.KeyArrowRight},
	cfg.ActionUp:        {ebiten.KeyArrowUp},
	cfg.ActionDown:      {ebiten.KeyArrowDown},
	cfg.ActionJump:      {ebiten.KeyNumpad0, ebiten.KeyShiftRight},
	cfg.ActionLight:     {ebiten.KeyNumpad1, ebiten.KeyJ},
	cfg.ActionHeavy:     {ebiten.KeyNumpad2, ebiten.KeyK},
	cfg.ActionSpecial:   {ebiten.KeyNumpad3, ebiten.KeyL},
	cfg.ActionGrab:      {ebiten.KeyNumpad4, ebiten.KeyU},
}

// Read returns the actions whose keys are reported held by pressed.
func (l Layout) Read(pressed func(ebiten.Key) bool) cfg.Action {
	var held cfg.Action
	for action, keys := range l {
		for _, key := range keys {
			if pressed(key) {
				held |= action
				break
			}
		}
	}
	return held
}

// Keyboard polls both fighters from the local keyboard.
type Keyboard struct {
	P1 Layout
	P2 Layout
}

// NewKeyboard uses the default layouts.
func NewKeyboard() *Keyboard {
	return &Keyboard{P1: P1Layout, P2: P2Layout}
}

// Poll implements core.InputSource. It must be called from the ebiten
// update goroutine.
func (k *Keyboard) Poll(uint64) messages.InputSet {
	return messages.InputSet{
		cfg.P1: k.P1.Read(ebiten.IsKeyPressed),
		cfg.P2: k.P2.Read(ebiten.IsKeyPressed),
	}
}
