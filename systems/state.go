package systems

import (
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/eventbus"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// RegisterAnimationHandlers subscribes the fighters' animation machines to
// the simulation events that drive them. The returned function removes
// every subscription.
func RegisterAnimationHandlers(w donburi.World, bus *eventbus.Bus) (unsubscribe func()) {
	anim := func(id string) *components.AnimationData {
		e, ok := FindFighter(w, id)
		if !ok {
			return nil
		}
		return components.Animation.Get(e)
	}

	unsubs := []func(){
		eventbus.On(bus, messages.TopicCharacterMove, func(evt messages.CharacterMoveEvent) {
			if a := anim(evt.EntityID); a != nil {
				OnCharacterMove(a, evt)
			}
		}),
		eventbus.On(bus, messages.TopicJumpPerformed, func(evt messages.JumpPerformedEvent) {
			if a := anim(evt.EntityID); a != nil {
				OnJumpPerformed(a)
			}
		}),
		eventbus.On(bus, messages.TopicAttackStarted, func(evt messages.AttackStartedEvent) {
			if a := anim(evt.EntityID); a != nil {
				OnAttackStarted(a, evt)
			}
		}),
		eventbus.On(bus, messages.TopicAttackLanded, func(evt messages.AttackLandedEvent) {
			if a := anim(evt.DefenderID); a != nil {
				OnAttackLanded(a, evt)
			}
		}),
		eventbus.On(bus, messages.TopicMatchEnded, func(evt messages.MatchEndedEvent) {
			for _, e := range Fighters(w) {
				OnMatchEnded(components.Animation.Get(e), components.Fighter.Get(e).ID, evt)
			}
			loggerOf(w).Debug("animation terminal", zap.String("winner", evt.WinnerID))
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// UpdateAnimation counts down timed states and advances crossfades.
func UpdateAnimation(ecs *ecs.ECS) {
	dt := clockOf(ecs.World).DeltaTime
	for _, e := range Fighters(ecs.World) {
		a := components.Animation.Get(e)
		AdvanceFade(a, dt)
		if components.Physics.Get(e).InImpactLag() {
			continue
		}
		TickAnimation(a)
	}
}

// SetState switches the machine to a new state. Terminal states are never
// left. Re-entering the current state only refreshes its timer.
func SetState(a *components.AnimationData, to cfg.StateID, moveID string, frames int) {
	if a.Current.Terminal() {
		return
	}
	if a.Current == to && a.MoveID == moveID {
		a.Timer = frames
		return
	}

	a.Previous, a.PreviousMoveID = a.Current, a.MoveID
	a.Current, a.MoveID, a.Timer = to, moveID, frames

	fade := float32(cfg.FramesToSeconds(cfg.Animation.CrossfadeFrames))
	if fade <= 0 {
		a.Fade, a.Blend = nil, 1
		return
	}
	a.Fade = gween.New(0, 1, fade, ease.Linear)
	a.Blend = 0
}

// AdvanceFade moves the crossfade forward by dt seconds.
func AdvanceFade(a *components.AnimationData, dt float64) {
	if a.Fade == nil {
		return
	}
	blend, done := a.Fade.Update(float32(dt))
	a.Blend = blend
	if done {
		a.Fade, a.Blend = nil, 1
	}
}

// TickAnimation counts one frame off a timed state and falls through to the
// locomotion state when it completes.
func TickAnimation(a *components.AnimationData) {
	if a.Timer <= 0 {
		return
	}
	a.Timer--
	if a.Timer > 0 {
		return
	}
	switch a.Current {
	case cfg.Jump, cfg.Attack, cfg.Hitstun:
		if a.Grounded {
			SetState(a, cfg.Idle, "", 0)
		} else {
			SetState(a, cfg.Fall, "", 0)
		}
	}
}

// busy reports whether a timed state owns the machine.
func busy(a *components.AnimationData) bool {
	return a.Current == cfg.Attack || a.Current == cfg.Hitstun
}

// OnCharacterMove picks the locomotion state from a motion update.
func OnCharacterMove(a *components.AnimationData, evt messages.CharacterMoveEvent) {
	a.Grounded = evt.Grounded
	if busy(a) {
		return
	}

	if !evt.Grounded {
		if a.Current != cfg.Jump {
			SetState(a, cfg.Fall, "", 0)
		}
		return
	}

	switch {
	case evt.Speed <= 0:
		SetState(a, cfg.Idle, "", 0)
	case evt.Speed >= cfg.Animation.RunSpeedThreshold:
		SetState(a, cfg.Run, "", 0)
	default:
		SetState(a, cfg.Walk, "", 0)
	}
}

// OnJumpPerformed enters the timed jump state.
func OnJumpPerformed(a *components.AnimationData) {
	a.Grounded = false
	if busy(a) {
		return
	}
	SetState(a, cfg.Jump, "", cfg.Animation.JumpFrames)
}

// OnAttackStarted plays the move for its full timeline. Re-issuing the
// same move restarts its timer.
func OnAttackStarted(a *components.AnimationData, evt messages.AttackStartedEvent) {
	SetState(a, cfg.Attack, evt.MoveID, evt.TotalFrames)
}

// OnAttackLanded puts the defender into hitstun.
func OnAttackLanded(a *components.AnimationData, evt messages.AttackLandedEvent) {
	frames := evt.HitstunFrames
	if frames < 1 {
		frames = 1
	}
	SetState(a, cfg.Hitstun, "", frames)
}

// OnMatchEnded sends the winner to Victory and everyone else, including
// both fighters of a draw, to KO.
func OnMatchEnded(a *components.AnimationData, id string, evt messages.MatchEndedEvent) {
	if evt.Reason == messages.EndAborted {
		return
	}
	if evt.WinnerID == id {
		SetState(a, cfg.Victory, "", 0)
	} else {
		SetState(a, cfg.KO, "", 0)
	}
}

// ResetAnimation returns the machine to Idle, leaving terminal states.
func ResetAnimation(a *components.AnimationData) {
	*a = components.AnimationData{
		Current:  cfg.Idle,
		Previous: cfg.StateNone,
		Blend:    1,
		Grounded: true,
	}
}
