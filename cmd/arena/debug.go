package main

import (
	"image/color"

	"github.com/automoto/doomerang-arena/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
)

// drawDebug outlines every object in the collision space: the broadphase
// squares the combat system checks before its circle test.
func drawDebug(screen *ebiten.Image, space *resolv.Space) {
	if space == nil {
		return
	}
	for _, obj := range space.Objects() {
		c := color.RGBA{0, 255, 255, 255} // Cyan default
		if obj.HasTags(tags.ResolvHitbox) {
			c = color.RGBA{255, 0, 0, 255}
		} else if obj.HasTags(tags.ResolvHurtbox) {
			c = color.RGBA{0, 0, 255, 255}
		}

		x, y := float32(obj.X), float32(obj.Y)
		w, h := float32(obj.W), float32(obj.H)
		vector.FillRect(screen, x, y, w, 1, c, false)     // Top
		vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
		vector.FillRect(screen, x, y, 1, h, c, false)     // Left
		vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
	}
}
