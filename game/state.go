package game

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

type Phase int

const (
	SetupPhase Phase = iota // initial marker only, never cycled through
	PlayerPhase
	EnemyPhase
	EventPhase
	CleanupPhase
)

var phaseNames = map[Phase]string{
	SetupPhase:   "SETUP",
	PlayerPhase:  "PLAYER",
	EnemyPhase:   "ENEMY",
	EventPhase:   "EVENT",
	CleanupPhase: "CLEANUP",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// Next returns the fixed successor in the round cycle. SETUP feeds into
// PLAYER; the cycle proper is PLAYER → ENEMY → EVENT → CLEANUP → PLAYER.
func (p Phase) Next() Phase {
	switch p {
	case SetupPhase:
		return PlayerPhase
	case PlayerPhase:
		return EnemyPhase
	case EnemyPhase:
		return EventPhase
	case EventPhase:
		return CleanupPhase
	case CleanupPhase:
		return PlayerPhase
	}
	return PlayerPhase
}

// GameState is the complete snapshot of one simulation instant: everything
// that changes during play (the Board is static and shared). Transitions
// never mutate a snapshot; they Copy it and write the new value, so old
// snapshots stay valid for tree search branching.
type GameState struct {
	Board *Board

	Turn  int
	Phase Phase
	Round int

	PlayerRoom string

	Oxygen        int
	Health        int
	Ammo          int
	AmmoMax       int
	ActionsInTurn int

	LifeSupportActive bool

	Fires     map[string]struct{}
	Doors     map[Edge]struct{}
	Noise     map[Edge]int
	RoomNoise map[string]int
	Intruders map[string]int

	WeaponJammed  bool
	SeriousWounds int

	SelfDestructArmed bool
	DestructionTimer  int

	EventDeck      int
	EventDeckCards []string
	Bag            map[string]int
	BagDevCount    int
	AttackDeck     int

	// Informational: intruders standing in burning rooms at the last
	// ENEMY phase.
	IntruderBurnLast int

	// Exploration state; empty DiscoveredRooms disables the mechanic.
	DiscoveredRooms      map[string]struct{}
	ExplorationDeckCards []string
	SecureTokens         map[Edge]struct{}

	GameOver bool
	Win      bool

	// Carried for reproducibility of randomized agents layered on top;
	// the engine itself is deterministic given an action.
	Seed *int64
}

// NewGameState returns the starting snapshot for a board, with the player
// in startRoom and the standard resource loadout.
func NewGameState(b *Board, startRoom string) *GameState {
	return &GameState{
		Board:             b,
		Phase:             PlayerPhase,
		Round:             1,
		PlayerRoom:        startRoom,
		Oxygen:            5,
		Health:            5,
		Ammo:              3,
		AmmoMax:           5,
		LifeSupportActive: true,
		Fires:             make(map[string]struct{}),
		Doors:             make(map[Edge]struct{}),
		Noise:             make(map[Edge]int),
		RoomNoise:         make(map[string]int),
		Intruders:         make(map[string]int),
		EventDeck:         10,
		Bag:               make(map[string]int),
		AttackDeck:        10,
		DiscoveredRooms:   make(map[string]struct{}),
		SecureTokens:      make(map[Edge]struct{}),
	}
}

// Copy deep-copies the snapshot. The Board is shared; every container is
// cloned so the copy can be written without aliasing the original.
func (gs *GameState) Copy() *GameState {
	next := *gs

	next.Fires = make(map[string]struct{}, len(gs.Fires))
	for r := range gs.Fires {
		next.Fires[r] = struct{}{}
	}
	next.Doors = make(map[Edge]struct{}, len(gs.Doors))
	for e := range gs.Doors {
		next.Doors[e] = struct{}{}
	}
	next.Noise = make(map[Edge]int, len(gs.Noise))
	for e, n := range gs.Noise {
		next.Noise[e] = n
	}
	next.RoomNoise = make(map[string]int, len(gs.RoomNoise))
	for r, n := range gs.RoomNoise {
		next.RoomNoise[r] = n
	}
	next.Intruders = make(map[string]int, len(gs.Intruders))
	for r, hp := range gs.Intruders {
		next.Intruders[r] = hp
	}
	next.Bag = make(map[string]int, len(gs.Bag))
	for k, n := range gs.Bag {
		next.Bag[k] = n
	}
	next.EventDeckCards = append([]string(nil), gs.EventDeckCards...)
	next.ExplorationDeckCards = append([]string(nil), gs.ExplorationDeckCards...)
	next.DiscoveredRooms = make(map[string]struct{}, len(gs.DiscoveredRooms))
	for r := range gs.DiscoveredRooms {
		next.DiscoveredRooms[r] = struct{}{}
	}
	next.SecureTokens = make(map[Edge]struct{}, len(gs.SecureTokens))
	for e := range gs.SecureTokens {
		next.SecureTokens[e] = struct{}{}
	}
	if gs.Seed != nil {
		seed := *gs.Seed
		next.Seed = &seed
	}

	return &next
}

// Terminal reports whether the game has ended; callers must check it, the
// transition function itself does not halt.
func (gs *GameState) Terminal() bool {
	return gs.GameOver
}

// Reward is the terminal payoff: 1 for an escape, 0 otherwise.
func (gs *GameState) Reward() float64 {
	if gs.GameOver && gs.Win {
		return 1
	}
	return 0
}

// LegalActions implements State via the standard rules.
func (gs *GameState) LegalActions() []Action {
	return Rules{}.LegalActions(gs)
}

// Apply implements State via the standard rules.
func (gs *GameState) Apply(a Action) State {
	return Rules{}.Apply(gs, a)
}

// Hash folds the position (everything except the raw turn counter and
// seed) into an fnv-1a digest. Map iteration order is neutralized by
// hashing sorted keys.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	w := func(v int64) {
		binary.Write(h, binary.LittleEndian, v)
	}
	ws := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	w(int64(gs.Phase))
	w(int64(gs.Round))
	ws(gs.PlayerRoom)
	w(int64(gs.Oxygen))
	w(int64(gs.Health))
	w(int64(gs.Ammo))
	w(int64(gs.ActionsInTurn))
	w(boolBit(gs.LifeSupportActive))
	w(boolBit(gs.WeaponJammed))
	w(int64(gs.SeriousWounds))
	w(boolBit(gs.SelfDestructArmed))
	w(int64(gs.DestructionTimer))
	w(int64(gs.EventDeck))
	w(int64(gs.BagDevCount))
	w(int64(gs.AttackDeck))
	w(boolBit(gs.GameOver))
	w(boolBit(gs.Win))

	for _, r := range sortedKeys(gs.Fires) {
		ws(r)
	}
	for _, e := range sortedEdgeKeys(gs.Doors) {
		ws(e.String())
	}
	for _, e := range sortedEdges(gs.Noise) {
		ws(e.String())
		w(int64(gs.Noise[e]))
	}
	for _, r := range sortedIntKeys(gs.RoomNoise) {
		ws(r)
		w(int64(gs.RoomNoise[r]))
	}
	for _, r := range sortedIntKeys(gs.Intruders) {
		ws(r)
		w(int64(gs.Intruders[r]))
	}
	for _, k := range sortedIntKeys(gs.Bag) {
		ws(k)
		w(int64(gs.Bag[k]))
	}
	for _, c := range gs.EventDeckCards {
		ws(c)
	}
	for _, c := range gs.ExplorationDeckCards {
		ws(c)
	}
	for _, r := range sortedKeys(gs.DiscoveredRooms) {
		ws(r)
	}
	for _, e := range sortedEdgeKeys(gs.SecureTokens) {
		ws(e.String())
	}

	return StateHash(h.Sum64())
}

func boolBit(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedIntKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEdgeKeys(m map[Edge]struct{}) []Edge {
	out := make([]Edge, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sortEdges(out)
	return out
}

func sortedEdges(m map[Edge]int) []Edge {
	out := make([]Edge, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sortEdges(out)
	return out
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
}
