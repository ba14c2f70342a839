package components

import "github.com/yohamta/donburi"

// ClockData is the simulation clock, advanced once per fixed step.
type ClockData struct {
	Tick      uint64
	DeltaTime float64
}

var Clock = donburi.NewComponentType[ClockData]()
