package main

import (
	"fmt"
	"image/color"

	"github.com/automoto/doomerang-arena/core"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/fonts"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorPanel     = color.RGBA{0, 0, 0, 180}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorHP        = color.RGBA{90, 210, 110, 255}
	colorHPLow     = color.RGBA{230, 80, 60, 255}
	colorResonance = color.RGBA{110, 150, 255, 255}
	colorTitle     = color.RGBA{255, 165, 0, 255}
	colorTie       = color.RGBA{255, 230, 80, 255}
)

const (
	barWidth  = 300
	barHeight = 12
	barMargin = 16
)

// drawMatchHUD renders the timer, both fighters' bars and, once the match
// is decided, the result banner.
func drawMatchHUD(screen *ebiten.Image, snap core.Snapshot, width, height int) {
	drawMatchTimer(screen, snap, width)
	for i, f := range snap.Fighters {
		drawFighterBars(screen, i, f, width)
	}
	if snap.Match.Ended() {
		drawMatchResults(screen, snap, width, height)
	}
}

func drawMatchTimer(screen *ebiten.Image, snap core.Snapshot, width int) {
	timeStr := fmt.Sprintf("%02d", snap.Match.TimerSeconds())

	timerWidth := float32(48)
	timerX := float32(width)/2 - timerWidth/2
	vector.FillRect(screen, timerX, 5, timerWidth, 28, colorPanel, false)

	textX := width/2 - len(timeStr)*5
	text.Draw(screen, timeStr, fonts.HUD.Get(), textX, 25, colorText)
}

// drawFighterBars draws HP and resonance growing inward from the screen
// edge of the fighter's slot.
func drawFighterBars(screen *ebiten.Image, slot int, f core.FighterSnapshot, width int) {
	x := float32(barMargin)
	if slot == 1 {
		x = float32(width - barMargin - barWidth)
	}

	hpFrac := float32(f.HP) / float32(cfg.Match.MaxHP)
	resFrac := float32(f.Resonance) / float32(cfg.Match.MaxResonance)
	hpColor := colorHP
	if hpFrac < 0.25 {
		hpColor = colorHPLow
	}

	vector.FillRect(screen, x, 10, barWidth, barHeight, colorPanel, false)
	vector.FillRect(screen, x, 26, barWidth, barHeight/2, colorPanel, false)
	if slot == 0 {
		vector.FillRect(screen, x+barWidth*(1-hpFrac), 10, barWidth*hpFrac, barHeight, hpColor, false)
		vector.FillRect(screen, x, 26, barWidth*resFrac, barHeight/2, colorResonance, false)
	} else {
		vector.FillRect(screen, x, 10, barWidth*hpFrac, barHeight, hpColor, false)
		vector.FillRect(screen, x+barWidth*(1-resFrac), 26, barWidth*resFrac, barHeight/2, colorResonance, false)
	}

	label := fmt.Sprintf("%s %d", f.Character, f.HP)
	text.Draw(screen, label, fonts.HUDSmall.Get(), int(x), 50, colorText)
}

func drawMatchResults(screen *ebiten.Image, snap core.Snapshot, width, height int) {
	vector.FillRect(screen, 0, 0, float32(width), float32(height), color.RGBA{0, 0, 0, 160}, false)

	var title string
	switch snap.Match.Reason {
	case messages.EndTimeout:
		title = "TIME"
	case messages.EndAborted:
		title = "NO CONTEST"
	default:
		title = "K.O."
	}
	text.Draw(screen, title, fonts.Banner.Get(), width/2-len(title)*10, height/2-40, colorTitle)

	winnerStr := "Draw!"
	winnerColor := colorTie
	for _, f := range snap.Fighters {
		if f.ID == snap.Match.WinnerID {
			winnerStr = fmt.Sprintf("%s wins", f.Character)
			winnerColor = colorText
		}
	}
	text.Draw(screen, winnerStr, fonts.HUD.Get(), width/2-len(winnerStr)*4, height/2, winnerColor)

	hint := "ENTER to restart, ESC to quit"
	text.Draw(screen, hint, fonts.HUDSmall.Get(), width/2-len(hint)*3, height-30, colorText)
}
