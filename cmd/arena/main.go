package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/doomerang-arena/assets"
	"github.com/automoto/doomerang-arena/core"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/fonts"
	"github.com/automoto/doomerang-arena/input"
	"github.com/automoto/doomerang-arena/records"
	"github.com/automoto/doomerang-arena/script"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	p1 := flag.String("p1", "kaito", "Character for player 1")
	p2 := flag.String("p2", "brann", "Character for player 2")
	stageName := flag.String("stage", "dojo", "Bundled stage name")
	headless := flag.Bool("headless", false, "Run both fighters from input scripts without a window")
	scripted := flag.Bool("scripted", false, "Player 2 follows an input script in windowed mode")
	style := flag.Int("style", int(cfg.ScriptStyleMixed), "Input script style (0 walk, 1 mixed, 2 pressure)")
	seconds := flag.Int("time", 99, "Round length in seconds")
	tickRate := flag.Int("tickrate", 60, "Headless loop tick rate")
	seed := flag.Int64("seed", 42, "Input script seed")
	saveRecord := flag.Bool("record", true, "Save the result to the local match history")
	history := flag.Bool("history", false, "Print the local match history and exit")
	debug := flag.Bool("debug", false, "Verbose logging and collision overlay (F3 toggles in game)")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var store *records.Store
	if *saveRecord || *history {
		store, err = records.Open("doomerang-arena", logger)
		if err != nil {
			logger.Warn("match history unavailable", zap.Error(err))
		}
	}
	if *history {
		printHistory(logger, store)
		return
	}

	stage, err := assets.LoadStage(*stageName)
	if err != nil {
		logger.Fatal("load stage", zap.Error(err))
	}

	match, err := core.NewMatch(*p1, *p2,
		core.WithLogger(logger),
		core.WithStage(stage),
		core.WithDuration(*seconds*cfg.FrameRate),
	)
	if err != nil {
		logger.Fatal("create match", zap.Error(err))
	}
	defer match.Dispose()

	logEvents(match.Bus(), logger)
	scriptStyle := cfg.ScriptStyle(*style)

	if *headless {
		controller := &script.Controller{
			Scripts: []*script.Script{
				script.Random(cfg.P1, scriptStyle, *seed),
				script.Random(cfg.P2, scriptStyle, *seed+1),
			},
		}
		runHeadless(match, controller, *tickRate, logger)
	} else {
		controller := &script.Controller{Human: input.NewKeyboard()}
		if *scripted {
			controller.Scripts = []*script.Script{script.Random(cfg.P2, scriptStyle, *seed)}
		}
		if err := fonts.LoadDefaults(); err != nil {
			logger.Fatal("load fonts", zap.Error(err))
		}
		runWindowed(match, controller, *debug, logger)
	}

	if store != nil && match.Ended() {
		rec := records.NewRecord(match.State(), *p1, *p2, int(match.Tick()), time.Now().Unix())
		if err := store.Save(rec); err != nil {
			logger.Warn("save match record", zap.Error(err))
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runHeadless(match *core.Match, source core.InputSource, tickRate int, logger *zap.Logger) {
	loop := core.NewGameLoop(match, source, tickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutting down")
			loop.Stop()
		case <-loop.Done():
		}
	}()

	loop.Run()
	if !match.Ended() {
		match.Abort()
	}

	s := match.State()
	logger.Info("result",
		zap.String("winner", s.WinnerID),
		zap.String("reason", string(s.Reason)),
		zap.Int("p1_hp", s.Sides[0].HP),
		zap.Int("p2_hp", s.Sides[1].HP),
	)
}

func runWindowed(match *core.Match, source core.InputSource, debug bool, logger *zap.Logger) {
	stage := match.Stage()
	ebiten.SetWindowSize(stage.Width, stage.Height)
	ebiten.SetWindowTitle("Doomerang Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame(match, source, debug)); err != nil && err != ebiten.Termination {
		logger.Error("game exited", zap.Error(err))
	}
}

func printHistory(logger *zap.Logger, store *records.Store) {
	if store == nil {
		return
	}
	list, err := store.List()
	if err != nil {
		logger.Fatal("read history", zap.Error(err))
	}
	for _, r := range list {
		winner := r.WinnerID
		if winner == "" {
			winner = "draw"
		}
		log.Printf("%s  %s vs %s  %s (%s)  hp %d/%d  %s",
			time.Unix(r.FinishedAt, 0).Format(time.DateTime),
			r.P1Character, r.P2Character, winner, r.Reason,
			r.FinalHP[0], r.FinalHP[1], r.ID)
	}
}

// logEvents mirrors gameplay events into the debug log.
func logEvents(bus *eventbus.Bus, logger *zap.Logger) {
	l := logger.Named("events")
	eventbus.On(bus, messages.TopicAttackLanded, func(e messages.AttackLandedEvent) {
		l.Debug("attack landed",
			zap.String("attacker", e.AttackerID),
			zap.String("defender", e.DefenderID),
			zap.String("move", e.MoveID),
			zap.Int("damage", e.Damage),
			zap.Bool("countered", e.Countered),
		)
	})
	eventbus.On(bus, messages.TopicJumpPerformed, func(e messages.JumpPerformedEvent) {
		l.Debug("jump", zap.String("fighter", e.EntityID), zap.Bool("coyote", e.Coyote))
	})
	eventbus.On(bus, messages.TopicMatchEnded, func(e messages.MatchEndedEvent) {
		l.Info("match ended", zap.String("winner", e.WinnerID), zap.Bool("draw", e.Draw()))
	})
}
