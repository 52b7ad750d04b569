package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEdgeCanonicalization(t *testing.T) {
	require.Equal(t, NewEdge("A", "B"), NewEdge("B", "A"))
	require.Equal(t, "A-B", NewEdge("B", "A").String())
	require.Equal(t, "B", NewEdge("A", "B").Other("A"))
	require.Equal(t, "", NewEdge("A", "B").Other("C"))
	require.True(t, NewEdge("A", "B").Incident("B"))
}

func TestBoardNeighborsAreSorted(t *testing.T) {
	b := NewBoard()
	for _, r := range []string{"HUB", "Z", "M", "A"} {
		b.AddRoom(r, Default)
	}
	b.AddCorridor("HUB", "Z")
	b.AddCorridor("HUB", "A")
	b.AddCorridor("HUB", "M")

	require.Equal(t, []string{"A", "M", "Z"}, b.Neighbors("HUB"))
}

func TestCorridorToUndeclaredRoomIgnored(t *testing.T) {
	b := NewBoard()
	b.AddRoom("A", Default)
	b.AddCorridor("A", "GHOST")

	require.False(t, b.HasEdge("A", "GHOST"))
	require.Empty(t, b.Edges)
}

func TestRoomTypeDefaultsWhenUnlabeled(t *testing.T) {
	b := NewBoard()
	b.AddRoom("A", Default)
	b.AddRoom("B", Armory)

	require.Equal(t, Default, b.RoomType("A"))
	require.Equal(t, Armory, b.RoomType("B"))
	require.Equal(t, Default, b.RoomType("UNKNOWN"))
}

func TestTrainingBoardLayout(t *testing.T) {
	b := CreateBoard()

	require.Len(t, b.Rooms, 5)
	require.Equal(t, []string{"B"}, b.Neighbors("A"))
	require.Equal(t, []string{"A", "C"}, b.Neighbors("B"))
	require.Equal(t, Control, b.RoomType("B"))
	require.Equal(t, Armory, b.RoomType("C"))
	require.Equal(t, Surgery, b.RoomType("D"))
	require.Equal(t, EngineRoom, b.RoomType("E"))
	require.Equal(t, FireControl, b.RoomType("A"))
}

func TestShipBoardIsConnected(t *testing.T) {
	b := CreateShipBoard()

	require.Len(t, b.Rooms, 14)
	require.True(t, b.HasRoom(ShipStartRoom))
	require.Equal(t, EngineRoom, b.RoomType("ENGINE"))

	// BFS from the start room must reach every room.
	seen := map[string]bool{ShipStartRoom: true}
	queue := []string{ShipStartRoom}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range b.Neighbors(current) {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	require.Len(t, seen, len(b.Rooms), "every room is reachable from the start")
}

func TestParseBoard(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data := []byte(`
rooms:
  A: FIRE_CONTROL
  B: ""
  C: ENGINE
corridors:
  - [A, B]
  - [B, C]
`)
		b, err := ParseBoard(data)
		require.NoError(t, err)
		require.Len(t, b.Rooms, 3)
		require.True(t, b.HasEdge("A", "B"))
		require.Equal(t, FireControl, b.RoomType("A"))
		require.Equal(t, Default, b.RoomType("B"))
	})

	t.Run("unknown room type", func(t *testing.T) {
		_, err := ParseBoard([]byte("rooms:\n  A: CASINO\n"))
		require.ErrorContains(t, err, "unknown type")
	})

	t.Run("corridor to undeclared room", func(t *testing.T) {
		_, err := ParseBoard([]byte("rooms:\n  A: \"\"\ncorridors:\n  - [A, B]\n"))
		require.ErrorContains(t, err, "undeclared room")
	})

	t.Run("no rooms", func(t *testing.T) {
		_, err := ParseBoard([]byte("corridors: []\n"))
		require.ErrorContains(t, err, "no rooms")
	})

	t.Run("malformed corridor", func(t *testing.T) {
		_, err := ParseBoard([]byte("rooms:\n  A: \"\"\ncorridors:\n  - [A]\n"))
		require.ErrorContains(t, err, "two endpoints")
	})
}
