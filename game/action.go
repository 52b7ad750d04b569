package game

import "fmt"

// ActionType is the closed set of player and system moves.
type ActionType int

const (
	Noop ActionType = iota
	Pass
	Move
	MoveCautious
	OpenDoor
	CloseDoor
	Shoot
	Burst
	Melee
	UseRoom
	Escape
	EndPlayerPhase
	NextPhase
)

var actionTypeNames = map[ActionType]string{
	Noop:           "NOOP",
	Pass:           "PASS",
	Move:           "MOVE",
	MoveCautious:   "MOVE_CAUTIOUS",
	OpenDoor:       "OPEN_DOOR",
	CloseDoor:      "CLOSE_DOOR",
	Shoot:          "SHOOT",
	Burst:          "BURST",
	Melee:          "MELEE",
	UseRoom:        "USE_ROOM",
	Escape:         "ESCAPE",
	EndPlayerPhase: "END_PLAYER_PHASE",
	NextPhase:      "NEXT_PHASE",
}

var actionTypesByName = func() map[string]ActionType {
	m := make(map[string]ActionType, len(actionTypeNames))
	for t, n := range actionTypeNames {
		m[n] = t
	}
	return m
}()

func (t ActionType) String() string {
	if n, ok := actionTypeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// ParseActionType maps a wire name to its tag. Unknown names are a
// boundary error: they must be rejected before reaching the transition
// function.
func ParseActionType(name string) (ActionType, error) {
	if t, ok := actionTypesByName[name]; ok {
		return t, nil
	}
	return Noop, fmt.Errorf("unknown action type %q", name)
}

// NoiseTarget selects where a move's noise lands.
type NoiseTarget string

const (
	NoiseCorridor NoiseTarget = "corridor"
	NoiseRoom     NoiseTarget = "room"
)

// Action is one player or system move. It is an immutable comparable
// value: equality is structural, and the searcher keys tree children by
// it. Fields beyond Type are optional parameters; variants that do not use
// a field leave it zero and the transition ignores it.
type Action struct {
	Type ActionType
	// To is the destination room for MOVE/MOVE_CAUTIOUS and the adjacent
	// room for OPEN_DOOR/CLOSE_DOOR.
	To string
	// NoiseEdge is the open edge nominated to receive a cautious move's
	// noise. The zero Edge means no nomination.
	NoiseEdge Edge
	// NoiseRoll overrides the noise target (corridor by default).
	NoiseRoll NoiseTarget
}

func (a Action) String() string {
	s := a.Type.String()
	if a.To != "" {
		s += " to=" + a.To
	}
	if a.NoiseEdge != (Edge{}) {
		s += " noise_edge=" + a.NoiseEdge.String()
	}
	if a.NoiseRoll != "" {
		s += " noise_roll=" + string(a.NoiseRoll)
	}
	return s
}
