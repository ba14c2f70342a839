package config

// StateID identifies a fighter animation state.
type StateID int

// MatchPhase represents the lifecycle of a match.
type MatchPhase int

const (
	MatchActive MatchPhase = iota // Fighters can act, timer runs
	MatchEnded                    // Outcome decided, state frozen
)

func (p MatchPhase) String() string {
	switch p {
	case MatchActive:
		return "active"
	case MatchEnded:
		return "ended"
	}
	return "unknown"
}

// StateNone marks an absent previous state.
const StateNone StateID = -1

// Fighter animation states
const (
	Idle StateID = iota
	Walk
	Run
	Jump
	Fall
	Attack
	Hitstun
	KO
	Victory
)

// StateNames maps StateID to a stable name for logs and the HUD.
var StateNames = map[StateID]string{
	StateNone: "none",
	Idle:      "idle",
	Walk:      "walk",
	Run:       "run",
	Jump:      "jump",
	Fall:      "fall",
	Attack:    "attack",
	Hitstun:   "hitstun",
	KO:        "ko",
	Victory:   "victory",
}

func (s StateID) String() string {
	if name, ok := StateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state only leaves through an explicit reset.
func (s StateID) Terminal() bool {
	return s == KO || s == Victory
}
