package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"derelict/game"
	"derelict/searcher"
)

func legalSet(state game.State) map[game.Action]bool {
	set := make(map[game.Action]bool)
	for _, a := range state.LegalActions() {
		set[a] = true
	}
	return set
}

func TestRandomPicksLegalActions(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "A")
	legal := legalSet(state)
	a := NewRandom(7)

	for i := 0; i < 100; i++ {
		require.True(t, legal[a.FindAction(state)], "every pick must be legal")
	}
}

func TestRandomIsReproducible(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "A")

	first := NewRandom(42)
	second := NewRandom(42)
	for i := 0; i < 20; i++ {
		require.Equal(t, first.FindAction(state), second.FindAction(state),
			"same seed, same sequence")
	}
}

func TestSamplerUniformCoversActions(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "A")
	a := NewSampler(UniformPolicy, 1)

	seen := make(map[game.Action]bool)
	for i := 0; i < 500; i++ {
		seen[a.FindAction(state)] = true
	}
	require.Len(t, seen, len(state.LegalActions()),
		"a uniform sampler eventually draws every action")
}

func TestSamplerRespectsPolicyWeights(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "A")
	target := state.LegalActions()[2]

	spiked := func(s game.State, actions []game.Action) []float64 {
		out := make([]float64, len(actions))
		for i, a := range actions {
			if a == target {
				out[i] = 1
			}
		}
		return out
	}

	a := NewSampler(spiked, 3)
	for i := 0; i < 50; i++ {
		require.Equal(t, target, a.FindAction(state))
	}
}

func TestSamplerZeroSumPolicyFallsBackToUniform(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "A")
	zero := func(s game.State, actions []game.Action) []float64 {
		return make([]float64, len(actions))
	}
	legal := legalSet(state)

	a := NewSampler(zero, 5)
	for i := 0; i < 50; i++ {
		require.True(t, legal[a.FindAction(state)])
	}
}

func TestSearcherRecordsMetrics(t *testing.T) {
	state := game.NewGameState(game.CreateBoard(), "E")
	a := NewSearcher(searcher.NewMCTS(1, searcher.WithEpisodes(200), searcher.WithMetrics()))

	action := a.FindAction(state)

	require.Equal(t, game.Escape, action.Type)
	require.Equal(t, 200, a.LastMetric().Episodes)
}
