package components

import (
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// RuntimeData gives systems access to match-scoped services.
type RuntimeData struct {
	Bus    *eventbus.Bus
	Logger *zap.Logger
}

var Runtime = donburi.NewComponentType[RuntimeData]()
