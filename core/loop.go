package core

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/doomerang-arena/shared/messages"
	"go.uber.org/zap"
)

// InputSource supplies the actions held for the next step.
type InputSource interface {
	Poll(tick uint64) messages.InputSet
}

// InputFunc adapts a function to InputSource.
type InputFunc func(tick uint64) messages.InputSet

// Poll calls f.
func (f InputFunc) Poll(tick uint64) messages.InputSet { return f(tick) }

// GameLoop drives a match from a wall-clock ticker on its own goroutine.
// While Run is active the loop owns the match; read it again only after
// Done is closed.
type GameLoop struct {
	match    *Match
	input    InputSource
	tickRate int
	logger   *zap.Logger

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewGameLoop creates a loop polling input tickRate times per second.
func NewGameLoop(match *Match, input InputSource, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		match:    match,
		input:    input,
		tickRate: tickRate,
		logger:   match.logger.Named("loop"),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or the match ends.
func (g *GameLoop) Run() {
	g.running.Store(true)
	defer func() {
		g.running.Store(false)
		close(g.done)
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.logger.Info("game loop started", zap.Int("tick_rate", g.tickRate))

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			g.logger.Info("game loop stopped", zap.Uint64("tick", g.match.Tick()))
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.tick(dt)
			if g.match.Ended() {
				g.logger.Info("game loop finished", zap.Uint64("tick", g.match.Tick()))
				return
			}
		}
	}
}

func (g *GameLoop) tick(dt float64) {
	var inputs messages.InputSet
	if g.input != nil {
		inputs = g.input.Poll(g.match.Tick())
	}
	g.match.Update(dt, inputs)
}

// Stop asks Run to return. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// Done is closed when Run returns.
func (g *GameLoop) Done() <-chan struct{} {
	return g.done
}

// Running reports whether Run is active.
func (g *GameLoop) Running() bool {
	return g.running.Load()
}
