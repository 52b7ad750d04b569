package game

// StateHash compactly identifies a game position so callers can detect
// transpositions and repeated states.
type StateHash uint64

// State is the contract every consumer of the engine builds on: an
// immutable snapshot that lists its legal actions and derives a successor.
// Operations on State always return a new value, never mutate in place.
type State interface {
	LegalActions() []Action
	Apply(Action) State
	Terminal() bool
	Reward() float64
	Hash() StateHash
}

// Evaluate scores a non-terminal state between -1 and 1 indicating how
// favorable the position is to escaping (positive) before the ship or the
// player gives out.
type Evaluate func(State) float64
