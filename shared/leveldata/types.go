// Package leveldata provides TMX stage parsing for the match core.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
package leveldata

// Stage holds everything the simulation needs from a stage file.
type Stage struct {
	Name        string
	Width       int
	Height      int
	GroundLevel float64 // y of the floor surface
	WallMin     float64 // left wall x
	WallMax     float64 // right wall x
	Spawns      []SpawnPoint
}

// SpawnPoint represents a fighter spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// DefaultStage is a flat walled floor used when no stage file is given.
func DefaultStage() *Stage {
	return &Stage{
		Name:        "default",
		Width:       960,
		Height:      544,
		GroundLevel: 448,
		WallMin:     32,
		WallMax:     928,
		Spawns: []SpawnPoint{
			{X: 256, Y: 448, Index: 0},
			{X: 704, Y: 448, Index: 1},
		},
	}
}
