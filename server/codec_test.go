package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"derelict/game"
)

func TestEncodeStateFlattensEdgeMaps(t *testing.T) {
	gs := game.NewGameState(game.CreateBoard(), "A")
	gs.Noise[game.NewEdge("B", "A")] = 2
	gs.Noise[game.NewEdge("C", "D")] = 1
	gs.Doors[game.NewEdge("D", "E")] = struct{}{}
	gs.Fires["C"] = struct{}{}
	gs.Intruders["B"] = 2

	out := encodeState(gs)

	require.Equal(t, []EdgeNoise{{Edge: "A-B", Count: 2}, {Edge: "C-D", Count: 1}}, out.Noise,
		"edges are canonical strings in sorted order")
	require.Equal(t, []string{"D-E"}, out.Doors)
	require.Equal(t, []string{"C"}, out.Fires)
	require.Equal(t, map[string]int{"B": 2}, out.Intruders)
}

func TestDecodeAction(t *testing.T) {
	t.Run("move with destination", func(t *testing.T) {
		a, err := decodeAction(ActionIn{Type: "MOVE", Params: map[string]any{"to": "B"}})
		require.NoError(t, err)
		require.Equal(t, game.Action{Type: game.Move, To: "B"}, a)
	})

	t.Run("cautious move with noise edge", func(t *testing.T) {
		a, err := decodeAction(ActionIn{Type: "MOVE_CAUTIOUS", Params: map[string]any{
			"to":         "B",
			"noise_edge": "C-B",
		}})
		require.NoError(t, err)
		require.Equal(t, game.NewEdge("B", "C"), a.NoiseEdge, "edge strings canonicalize either order")
	})

	t.Run("noise roll", func(t *testing.T) {
		a, err := decodeAction(ActionIn{Type: "MOVE", Params: map[string]any{
			"to":         "B",
			"noise_roll": "room",
		}})
		require.NoError(t, err)
		require.Equal(t, game.NoiseRoom, a.NoiseRoll)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := decodeAction(ActionIn{Type: "WARP"})
		require.ErrorContains(t, err, "unknown action type")
	})

	t.Run("unknown noise roll", func(t *testing.T) {
		_, err := decodeAction(ActionIn{Type: "MOVE", Params: map[string]any{"noise_roll": "ceiling"}})
		require.ErrorContains(t, err, "unknown noise roll")
	})

	t.Run("malformed edge", func(t *testing.T) {
		_, err := decodeAction(ActionIn{Type: "MOVE_CAUTIOUS", Params: map[string]any{"noise_edge": "AB"}})
		require.ErrorContains(t, err, "malformed edge")
	})

	t.Run("non-string param", func(t *testing.T) {
		_, err := decodeAction(ActionIn{Type: "MOVE", Params: map[string]any{"to": 7}})
		require.ErrorContains(t, err, "must be a string")
	})
}

func TestEncodeActionRoundTrip(t *testing.T) {
	in := game.Action{
		Type:      game.MoveCautious,
		To:        "B",
		NoiseEdge: game.NewEdge("B", "C"),
	}

	wire := encodeAction(in)
	back, err := decodeAction(ActionIn{Type: wire.Type, Params: wire.Params})

	require.NoError(t, err)
	require.Equal(t, in, back)
}
