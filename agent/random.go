package agent

import (
	"golang.org/x/exp/rand"

	"derelict/game"
)

// Random picks uniformly among legal actions.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) FindAction(state game.State) game.Action {
	actions := state.LegalActions()
	return actions[a.rng.Intn(len(actions))]
}
