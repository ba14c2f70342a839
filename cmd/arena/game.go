package main

import (
	"image/color"

	"github.com/automoto/doomerang-arena/core"
	"github.com/automoto/doomerang-arena/fonts"
	"github.com/automoto/doomerang-arena/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorGround  = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	colorHurtbox = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	colorHitbox  = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	colorLag     = color.RGBA{R: 250, G: 220, B: 90, A: 255}
)

// game renders a match with vector primitives. Sprites and audio live
// outside the simulation and are not part of this binary.
type game struct {
	match *core.Match
	input core.InputSource
	debug bool
}

func newGame(match *core.Match, input core.InputSource, debug bool) *game {
	return &game{match: match, input: input, debug: debug}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.match.Ended() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.match.Reset()
		}
		return nil
	}
	g.match.Update(1/float64(ebiten.TPS()), g.input.Poll(g.match.Tick()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	snap := g.match.Snapshot()
	stage := g.match.Stage()

	vector.StrokeLine(screen, 0, float32(stage.GroundLevel), float32(stage.Width), float32(stage.GroundLevel), 2, colorGround, false)
	vector.StrokeLine(screen, float32(stage.WallMin), 0, float32(stage.WallMin), float32(stage.GroundLevel), 1, colorGround, false)
	vector.StrokeLine(screen, float32(stage.WallMax), 0, float32(stage.WallMax), float32(stage.GroundLevel), 1, colorGround, false)

	for _, f := range snap.Fighters {
		clr := colorHurtbox
		if f.InImpactLag {
			clr = colorLag
		}
		drawBox(screen, f.Hurtbox, clr)
		for _, hb := range f.Hitboxes {
			drawBox(screen, hb, colorHitbox)
		}
		label := f.State.String()
		if f.MoveID != "" {
			label += " " + f.MoveID
		}
		text.Draw(screen, label, fonts.HUDSmall.Get(),
			int(f.Position.X)-24, int(f.Hurtbox.Center.Y-f.Hurtbox.Radius)-8, colorText)
	}

	if g.debug {
		drawDebug(screen, g.match.Space())
	}
	drawMatchHUD(screen, snap, stage.Width, stage.Height)
}

func drawBox(screen *ebiten.Image, b systems.Box, clr color.Color) {
	vector.StrokeCircle(screen, float32(b.Center.X), float32(b.Center.Y), float32(b.Radius), 1, clr, true)
}

func (g *game) Layout(int, int) (int, int) {
	stage := g.match.Stage()
	return stage.Width, stage.Height
}
