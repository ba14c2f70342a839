package systems

import (
	"github.com/automoto/doomerang-arena/components"
	cfg "github.com/automoto/doomerang-arena/config"
	"github.com/automoto/doomerang-arena/shared/gamemath"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/automoto/doomerang-arena/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Box is a circular hit or hurt region in stage coordinates.
type Box struct {
	Owner  string
	Center gamemath.Vector
	Radius float64
}

// Overlaps reports whether two boxes touch. The narrow phase goes through
// resolv's circle shapes.
func (b Box) Overlaps(o Box) bool {
	a := resolv.NewCircle(b.Center.X, b.Center.Y, b.Radius)
	c := resolv.NewCircle(o.Center.X, o.Center.Y, o.Radius)
	return a.Intersection(0, 0, c) != nil
}

// UpdateCombat advances move timelines, keeps the collision space in sync
// and resolves hitbox/hurtbox overlaps into hits.
func UpdateCombat(ecs *ecs.ECS) {
	w := ecs.World
	fighters := Fighters(w)

	for _, e := range fighters {
		advanceCombat(w, e)
	}
	for _, e := range fighters {
		syncHurtbox(e)
		syncHitbox(w, e)
	}

	if match, ok := MatchState(w); ok && match.Ended() {
		return
	}

	// Hits of every fighter are collected before any is applied. Defenders'
	// moves are interrupted last.
	var hits []pendingHit
	for _, e := range fighters {
		hits = collectHits(e, hits)
	}
	for _, h := range hits {
		applyHit(w, h)
	}
	for _, h := range hits {
		endMove(w, h.defender)
	}
}

// pendingHit is an overlap credited this tick and not yet applied.
type pendingHit struct {
	attacker  *donburi.Entry
	defender  *donburi.Entry
	move      *components.MoveInstance
	at        gamemath.Vector
	countered bool
}

// advanceCombat steps hitstun and the active move. Both are frozen while the
// fighter is in hit-stop.
func advanceCombat(w donburi.World, e *donburi.Entry) {
	physics := components.Physics.Get(e)
	combat := components.Combat.Get(e)
	if physics.InImpactLag() {
		return
	}

	if combat.HitstunFrames > 0 {
		combat.HitstunFrames--
	}

	move := combat.Move
	if move == nil {
		return
	}
	move.Frame++

	// Aerial moves end on landing.
	if move.Attack.Category == cfg.CategoryAerial && physics.Grounded {
		endMove(w, e)
		return
	}
	if move.Phase() == components.PhaseDone {
		endMove(w, e)
	}
}

// endMove clears the active move and drops its hitbox from the space.
func endMove(w donburi.World, e *donburi.Entry) {
	combat := components.Combat.Get(e)
	if combat.Move == nil {
		return
	}
	if hb := combat.Move.Hitbox; hb != nil {
		if space := spaceOf(w); space != nil {
			space.Remove(hb)
		}
		combat.Move.Hitbox = nil
	}
	combat.Move = nil
}

// Hurtbox returns the fighter's hurt region.
func Hurtbox(e *donburi.Entry) Box {
	fighter := components.Fighter.Get(e)
	physics := components.Physics.Get(e)
	return Box{
		Owner: fighter.ID,
		Center: gamemath.Vector{
			X: physics.Position.X,
			Y: physics.Position.Y - fighter.Character.HurtboxHeight,
		},
		Radius: fighter.Character.HurtboxRadius,
	}
}

// ActiveHitboxes returns the fighter's live hit regions: one during the
// active window of a striking move, none otherwise. Counter moves have no
// hitbox; they answer through the hurtbox.
func ActiveHitboxes(e *donburi.Entry) []Box {
	combat := components.Combat.Get(e)
	move := combat.Move
	if move == nil || move.Phase() != components.PhaseActive || move.Attack.Category == cfg.CategoryCounter {
		return nil
	}
	return []Box{hitboxFor(e, move)}
}

func hitboxFor(e *donburi.Entry, move *components.MoveInstance) Box {
	physics := components.Physics.Get(e)
	a := move.Attack

	forward := a.HitboxOffsetX
	if a.Category == cfg.CategoryProjectile {
		forward += a.ProjectileSpeed * cfg.FramesToSeconds(move.ActiveFrame())
	}
	return Box{
		Owner: components.Fighter.Get(e).ID,
		Center: gamemath.Vector{
			X: physics.Position.X + physics.Facing*forward,
			Y: physics.Position.Y - a.HitboxOffsetY,
		},
		Radius: a.HitboxRadius,
	}
}

// placeCircle moves a resolv object so its bounding square encloses box.
func placeCircle(obj *resolv.Object, box Box) {
	obj.X = box.Center.X - box.Radius
	obj.Y = box.Center.Y - box.Radius
	obj.W = box.Radius * 2
	obj.H = box.Radius * 2
	obj.Update()
}

func syncHurtbox(e *donburi.Entry) {
	obj := components.Hurtbox.Get(e).Object
	if obj == nil {
		return
	}
	placeCircle(obj, Hurtbox(e))
}

// syncHitbox spawns, moves or removes the hitbox object for the current
// move phase.
func syncHitbox(w donburi.World, e *donburi.Entry) {
	combat := components.Combat.Get(e)
	move := combat.Move
	if move == nil {
		return
	}
	space := spaceOf(w)
	boxes := ActiveHitboxes(e)

	if len(boxes) == 0 {
		if move.Hitbox != nil {
			if space != nil {
				space.Remove(move.Hitbox)
			}
			move.Hitbox = nil
		}
		return
	}

	box := boxes[0]
	if move.Hitbox == nil {
		obj := resolv.NewObject(0, 0, box.Radius*2, box.Radius*2, tags.ResolvHitbox)
		obj.Data = &components.HitboxData{Owner: e, Move: move}
		if space != nil {
			space.Add(obj)
		}
		move.Hitbox = obj
	}
	placeCircle(move.Hitbox, box)
}

// collectHits credits the attacker's live hitbox against every overlapping
// hurtbox it has not exhausted and appends the resulting hits.
func collectHits(attacker *donburi.Entry, hits []pendingHit) []pendingHit {
	combat := components.Combat.Get(attacker)
	move := combat.Move
	if move == nil || move.Hitbox == nil || components.Physics.Get(attacker).InImpactLag() {
		return hits
	}

	check := move.Hitbox.Check(0, 0, tags.ResolvHurtbox)
	if check == nil {
		return hits
	}
	hitbox := hitboxFor(attacker, move)
	attackerID := components.Fighter.Get(attacker).ID

	for _, obj := range check.Objects {
		defender, ok := obj.Data.(*donburi.Entry)
		if !ok || defender == attacker || !defender.Valid() {
			continue
		}
		defenderID := components.Fighter.Get(defender).ID
		if !move.CanCredit(defenderID) {
			continue
		}
		hurtbox := Hurtbox(defender)
		if !hitbox.Overlaps(hurtbox) {
			continue
		}

		// A live counter nullifies the hit and answers with its own.
		counter := components.Combat.Get(defender).Move
		if counter != nil &&
			counter.Attack.Category == cfg.CategoryCounter &&
			counter.Phase() == components.PhaseActive &&
			counter.CanCredit(attackerID) {
			move.Credit(defenderID)
			counter.Credit(attackerID)
			return append(hits, pendingHit{
				attacker:  defender,
				defender:  attacker,
				move:      counter,
				at:        Hurtbox(attacker).Center,
				countered: true,
			})
		}

		move.Credit(defenderID)
		hits = append(hits, pendingHit{
			attacker: attacker,
			defender: defender,
			move:     move,
			at:       midpoint(hitbox.Center, hurtbox.Center),
		})
	}
	return hits
}

func midpoint(a, b gamemath.Vector) gamemath.Vector {
	return gamemath.Vector{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// applyHit launches the defender, freezes both fighters and publishes the
// hit. The defender's move is interrupted by the caller once every hit of
// the tick is applied. HP is owned by the match; the predicted value is
// reported on character:hit.
func applyHit(w donburi.World, h pendingHit) {
	attacker, defender, move := h.attacker, h.defender, h.move
	a := move.Attack
	ap := components.Physics.Get(attacker)
	dp := components.Physics.Get(defender)
	attackerID := components.Fighter.Get(attacker).ID
	defenderID := components.Fighter.Get(defender).ID

	// Knockback pushes the defender away from the attacker
	away := ap.Facing
	if dp.Position.X > ap.Position.X {
		away = cfg.DirectionRight
	} else if dp.Position.X < ap.Position.X {
		away = cfg.DirectionLeft
	}
	kb := gamemath.ComputeKnockback(a.KnockbackPower, dp.Weight, a.LaunchAngle)
	launch := gamemath.Vector{
		X: away * kb.Velocity.X,
		Y: -kb.Velocity.Y,
	}.Scale(cfg.Combat.KnockbackScale)
	dp.Velocity = launch
	if launch.Y < 0 {
		dp.Grounded = false
	}

	dc := components.Combat.Get(defender)
	if a.HitstunFrames > dc.HitstunFrames {
		dc.HitstunFrames = a.HitstunFrames
	}

	hitStop := a.HitStopFrames
	if hitStop == 0 {
		hitStop = cfg.Combat.DefaultHitStopFrames
	}
	TriggerImpact(dp, hitStop)
	TriggerImpact(ap, hitStop)

	newHP := 0
	if match, ok := MatchState(w); ok {
		if side := match.Side(defenderID); side != nil {
			newHP = gamemath.ClampInt(side.HP-a.Damage, 0, cfg.Match.MaxHP)
		}
	}

	loggerOf(w).Debug("hit",
		zap.String("attacker", attackerID),
		zap.String("defender", defenderID),
		zap.String("move", move.MoveID),
		zap.Int("damage", a.Damage),
		zap.Bool("countered", h.countered),
	)

	emit(w, messages.TopicAttackLanded, messages.AttackLandedEvent{
		AttackerID:    attackerID,
		DefenderID:    defenderID,
		Damage:        a.Damage,
		HitPosition:   h.at,
		Type:          a.Category,
		MoveID:        move.MoveID,
		HitstunFrames: a.HitstunFrames,
		Knockback:     launch,
		Countered:     h.countered,
	})
	emit(w, messages.TopicCharacterHit, messages.CharacterHitEvent{
		DefenderID: defenderID,
		NewHP:      newHP,
		AttackerID: attackerID,
		Damage:     a.Damage,
	})
}

// IssueMove starts moveID on the fighter. It fails while the fighter is in
// hitstun, while the current move cannot be cancelled, when the move's
// category does not fit the fighter's air state, or when resonance is short
// of the move's cost. An unknown move-id is logged and refused.
func IssueMove(w donburi.World, e *donburi.Entry, moveID string) bool {
	fighter := components.Fighter.Get(e)
	physics := components.Physics.Get(e)
	combat := components.Combat.Get(e)

	match, hasMatch := MatchState(w)
	if hasMatch && match.Ended() {
		return false
	}
	if combat.InHitstun() || physics.InImpactLag() {
		return false
	}

	attack, ok := fighter.Character.Moves.Get(moveID)
	if !ok {
		loggerOf(w).Error("unknown move",
			zap.String("fighter", fighter.ID),
			zap.String("character", fighter.Character.Name),
			zap.String("move", moveID),
		)
		return false
	}

	if (attack.Category == cfg.CategoryAerial) == physics.Grounded {
		return false
	}
	if attack.MeterCost > 0 {
		if !hasMatch {
			return false
		}
		side := match.Side(fighter.ID)
		if side == nil || side.Resonance < attack.MeterCost {
			return false
		}
	}

	if current := combat.Move; current != nil {
		if !current.Attack.CanCancel || current.Phase() != components.PhaseRecovery {
			return false
		}
		endMove(w, e)
	}

	combat.NextInstance++
	combat.Move = &components.MoveInstance{
		InstanceID: combat.NextInstance,
		MoveID:     moveID,
		Attack:     attack,
		Hits:       make(map[string]*components.HitRecord),
	}

	emit(w, messages.TopicAttackStarted, messages.AttackStartedEvent{
		EntityID:    fighter.ID,
		MoveID:      moveID,
		Type:        attack.Category,
		TotalFrames: attack.TotalFrames(),
		MeterCost:   attack.MeterCost,
	})
	return true
}

// ResetCombat drops any move and hitstun.
func ResetCombat(w donburi.World, e *donburi.Entry) {
	endMove(w, e)
	components.Combat.Get(e).HitstunFrames = 0
}
