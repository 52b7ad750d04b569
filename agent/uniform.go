package agent

import (
	"golang.org/x/exp/rand"

	"derelict/game"
)

// Policy assigns a probability to each legal action. Probabilities are
// normalized by the caller against their sum; zero-sum policies degrade to
// uniform.
type Policy func(state game.State, actions []game.Action) []float64

// UniformPolicy weights every action equally.
func UniformPolicy(state game.State, actions []game.Action) []float64 {
	if len(actions) == 0 {
		return nil
	}
	p := 1.0 / float64(len(actions))
	out := make([]float64, len(actions))
	for i := range out {
		out[i] = p
	}
	return out
}

// Sampler draws actions from a policy distribution.
type Sampler struct {
	policy Policy
	rng    *rand.Rand
}

func NewSampler(policy Policy, seed uint64) *Sampler {
	if policy == nil {
		policy = UniformPolicy
	}
	return &Sampler{policy: policy, rng: rand.New(rand.NewSource(seed))}
}

func (a *Sampler) FindAction(state game.State) game.Action {
	actions := state.LegalActions()
	probs := a.policy(state, actions)

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		return actions[a.rng.Intn(len(actions))]
	}

	roll := a.rng.Float64() * total
	for i, p := range probs {
		roll -= p
		if roll <= 0 {
			return actions[i]
		}
	}
	return actions[len(actions)-1]
}
