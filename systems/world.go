package systems

import (
	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// matchEntry returns the singleton entry holding match-scoped components.
func matchEntry(w donburi.World) (*donburi.Entry, bool) {
	return tags.Match.First(w)
}

func runtimeOf(w donburi.World) *components.RuntimeData {
	if e, ok := matchEntry(w); ok {
		return components.Runtime.Get(e)
	}
	return nil
}

// emit publishes on the match bus, if one is attached.
func emit(w donburi.World, topic messages.Topic, payload any) {
	if rt := runtimeOf(w); rt != nil && rt.Bus != nil {
		rt.Bus.Emit(topic, payload)
	}
}

func busOf(w donburi.World) *eventbus.Bus {
	if rt := runtimeOf(w); rt != nil {
		return rt.Bus
	}
	return nil
}

func loggerOf(w donburi.World) *zap.Logger {
	if rt := runtimeOf(w); rt != nil && rt.Logger != nil {
		return rt.Logger
	}
	return zap.NewNop()
}

func clockOf(w donburi.World) *components.ClockData {
	if e, ok := matchEntry(w); ok {
		return components.Clock.Get(e)
	}
	return &components.ClockData{}
}

func spaceOf(w donburi.World) *resolv.Space {
	if e, ok := matchEntry(w); ok {
		return components.Space.Get(e)
	}
	return nil
}

// MatchState returns the match data, if the world has a match.
func MatchState(w donburi.World) (*components.MatchData, bool) {
	e, ok := matchEntry(w)
	if !ok {
		return nil, false
	}
	return components.Match.Get(e), true
}

// FindFighter looks a fighter up by id.
func FindFighter(w donburi.World, id string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tags.Fighter.Each(w, func(e *donburi.Entry) {
		if found == nil && components.Fighter.Get(e).ID == id {
			found = e
		}
	})
	return found, found != nil
}

// Fighters returns fighter entries ordered by slot.
func Fighters(w donburi.World) []*donburi.Entry {
	var out []*donburi.Entry
	tags.Fighter.Each(w, func(e *donburi.Entry) {
		out = append(out, e)
	})
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && components.Fighter.Get(out[j]).Slot < components.Fighter.Get(out[j-1]).Slot; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// opponentOf returns the other fighter of a 1v1 match.
func opponentOf(w donburi.World, e *donburi.Entry) *donburi.Entry {
	for _, other := range Fighters(w) {
		if other != e {
			return other
		}
	}
	return nil
}
