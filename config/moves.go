package config

import "fmt"

// HitboxCategory classifies where and how a move's hitbox applies.
type HitboxCategory int

const (
	CategoryGround HitboxCategory = iota
	CategoryAerial
	CategoryProjectile
	CategoryCounter
)

func (c HitboxCategory) String() string {
	switch c {
	case CategoryGround:
		return "GROUND"
	case CategoryAerial:
		return "AERIAL"
	case CategoryProjectile:
		return "PROJECTILE"
	case CategoryCounter:
		return "COUNTER"
	}
	return "UNKNOWN"
}

// MovePartition is the MoveSet bucket a move-id lives in.
type MovePartition int

const (
	PartitionLight MovePartition = iota
	PartitionSpecial
	PartitionAerial
	PartitionGrab
)

// AttackData describes a single move. Values are immutable once a
// character is loaded.
type AttackData struct {
	Name           string
	Damage         int
	KnockbackPower float64
	LaunchAngle    float64 // degrees, 0 = straight away from the attacker, 90 = straight up
	HitstunFrames  int

	StartupFrames  int
	ActiveFrames   int
	RecoveryFrames int

	Category  HitboxCategory
	CanCancel bool

	// Hitbox geometry relative to the fighter's feet, x mirrored by facing.
	HitboxRadius  float64
	HitboxOffsetX float64
	HitboxOffsetY float64 // height above the feet

	HitStopFrames    int     // 0 uses Combat.DefaultHitStopFrames
	MultiHit         int     // max credited hits per defender per active window; <=1 means one
	MultiHitInterval int     // frames between credits of a multi-hit move
	ProjectileSpeed  float64 // px/s the hitbox travels forward during the active window
	MeterCost        int     // resonance spent on issue
}

// TotalFrames is the full move timeline length.
func (a *AttackData) TotalFrames() int {
	return a.StartupFrames + a.ActiveFrames + a.RecoveryFrames
}

// MaxHits is the number of credits one defender can receive per active window.
func (a *AttackData) MaxHits() int {
	if a.MultiHit > 1 {
		return a.MultiHit
	}
	return 1
}

// Adjustment records a value the sanitiser replaced.
type Adjustment struct {
	MoveID string
	Field  string
	From   float64
	To     float64
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s.%s: %v -> %v", a.MoveID, a.Field, a.From, a.To)
}

// Sanitize returns a copy of the attack with malformed values clamped to
// safe defaults, and the list of changes made.
func (a AttackData) Sanitize(moveID string) (AttackData, []Adjustment) {
	var adj []Adjustment
	clampInt := func(field string, v *int, min, def int) {
		if *v < min {
			adj = append(adj, Adjustment{MoveID: moveID, Field: field, From: float64(*v), To: float64(def)})
			*v = def
		}
	}
	clampFloat := func(field string, v *float64, min, def float64) {
		if *v < min {
			adj = append(adj, Adjustment{MoveID: moveID, Field: field, From: *v, To: def})
			*v = def
		}
	}

	clampInt("StartupFrames", &a.StartupFrames, 1, 1)
	clampInt("ActiveFrames", &a.ActiveFrames, 1, 1)
	clampInt("RecoveryFrames", &a.RecoveryFrames, 1, 1)
	clampInt("Damage", &a.Damage, 0, 0)
	clampInt("HitstunFrames", &a.HitstunFrames, 0, 0)
	clampInt("HitStopFrames", &a.HitStopFrames, 0, 0)
	clampInt("MultiHit", &a.MultiHit, 0, 0)
	clampInt("MultiHitInterval", &a.MultiHitInterval, 0, 0)
	clampInt("MeterCost", &a.MeterCost, 0, 0)
	clampFloat("KnockbackPower", &a.KnockbackPower, 0, 0)
	clampFloat("HitboxRadius", &a.HitboxRadius, 1, 8)
	clampFloat("ProjectileSpeed", &a.ProjectileSpeed, 0, 0)

	if a.Category < CategoryGround || a.Category > CategoryCounter {
		adj = append(adj, Adjustment{MoveID: moveID, Field: "Category", From: float64(a.Category), To: float64(CategoryGround)})
		a.Category = CategoryGround
	}
	if a.MultiHit > 1 && a.MultiHitInterval < 1 {
		adj = append(adj, Adjustment{MoveID: moveID, Field: "MultiHitInterval", From: float64(a.MultiHitInterval), To: 1})
		a.MultiHitInterval = 1
	}
	return a, adj
}

// MoveSet maps move ids to attack definitions, partitioned the way a
// character sheet lists them.
type MoveSet struct {
	Light   map[string]*AttackData
	Special map[string]*AttackData
	Aerial  map[string]*AttackData
	Grab    map[string]*AttackData
}

func (m *MoveSet) partitions() []map[string]*AttackData {
	return []map[string]*AttackData{m.Light, m.Special, m.Aerial, m.Grab}
}

// Get looks a move up across all partitions.
func (m *MoveSet) Get(moveID string) (*AttackData, bool) {
	for _, p := range m.partitions() {
		if a, ok := p[moveID]; ok {
			return a, true
		}
	}
	return nil, false
}

// PartitionOf reports which bucket a move-id belongs to.
func (m *MoveSet) PartitionOf(moveID string) (MovePartition, bool) {
	for i, p := range m.partitions() {
		if _, ok := p[moveID]; ok {
			return MovePartition(i), true
		}
	}
	return 0, false
}

// IDs returns every move id in the set.
func (m *MoveSet) IDs() []string {
	var ids []string
	for _, p := range m.partitions() {
		for id := range p {
			ids = append(ids, id)
		}
	}
	return ids
}

// sanitized deep-copies the move set, clamping every attack.
func (m *MoveSet) sanitized() (*MoveSet, []Adjustment) {
	var all []Adjustment
	cp := func(src map[string]*AttackData) map[string]*AttackData {
		dst := make(map[string]*AttackData, len(src))
		for id, a := range src {
			if a == nil {
				continue
			}
			clean, adj := a.Sanitize(id)
			all = append(all, adj...)
			dst[id] = &clean
		}
		return dst
	}
	return &MoveSet{
		Light:   cp(m.Light),
		Special: cp(m.Special),
		Aerial:  cp(m.Aerial),
		Grab:    cp(m.Grab),
	}, all
}
