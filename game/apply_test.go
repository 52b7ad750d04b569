package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyNeverMutatesInput(t *testing.T) {
	s := testState()
	s.Noise[NewEdge("A", "B")] = 1

	next := s.Apply(Action{Type: Move, To: "B"}).(*GameState)

	require.Equal(t, "A", s.PlayerRoom, "input snapshot must be untouched")
	require.Equal(t, 1, s.Noise[NewEdge("A", "B")])
	require.Equal(t, "B", next.PlayerRoom)
}

func TestMoveThroughClosedDoorIsNoop(t *testing.T) {
	s := testState()
	s.Doors[NewEdge("A", "B")] = struct{}{}

	next := s.Apply(Action{Type: Move, To: "B"}).(*GameState)

	require.Equal(t, "A", next.PlayerRoom, "blocked move leaves the player in place")
	require.Equal(t, s.Turn+1, next.Turn, "turn still advances on a normalized NOOP")
	require.Zero(t, next.ActionsInTurn)
}

func TestMoveToNonNeighborIsNoop(t *testing.T) {
	s := testState()

	next := s.Apply(Action{Type: Move, To: "E"}).(*GameState)

	require.Equal(t, "A", next.PlayerRoom)
	require.Equal(t, s.Turn+1, next.Turn)
}

func TestOxygenLossWhenLifeSupportOff(t *testing.T) {
	s := testState()
	s.LifeSupportActive = false

	s1 := s.Apply(Action{Type: Move, To: "B"}).(*GameState)
	require.Equal(t, 1, s1.ActionsInTurn)
	require.Equal(t, 5, s1.Oxygen, "oxygen drops at turn end, not per action")

	s2 := s1.Apply(Action{Type: Pass}).(*GameState)
	require.Equal(t, 4, s2.Oxygen, "oxygen drops by 1 at turn end without life support")
	require.Zero(t, s2.ActionsInTurn, "action counter resets at turn end")
}

func TestFireDamageAtTurnEnd(t *testing.T) {
	s := testState()
	s.Fires["A"] = struct{}{}

	next := s.Apply(Action{Type: Pass}).(*GameState)

	require.Equal(t, 4, next.Health, "standing in a burning room costs 1 health at turn end")
}

func TestTwoActionsEndTheTurn(t *testing.T) {
	s := testState()
	s.LifeSupportActive = false

	s1 := s.Apply(Action{Type: Move, To: "B"}).(*GameState)
	s2 := s1.Apply(Action{Type: Move, To: "C"}).(*GameState)

	require.Zero(t, s2.ActionsInTurn, "second action triggers turn end")
	require.Equal(t, 4, s2.Oxygen)
}

func TestOpenDoorEnablesMovement(t *testing.T) {
	s := testState()
	s.Doors[NewEdge("A", "B")] = struct{}{}

	opened := s.Apply(Action{Type: OpenDoor, To: "B"}).(*GameState)

	require.NotContains(t, opened.Doors, NewEdge("A", "B"))
	require.True(t, hasAction(opened.LegalActions(), Move, "B"))
	require.Equal(t, 1, opened.ActionsInTurn, "operating a door is an action")
}

func TestCloseDoorBlocksMovement(t *testing.T) {
	s := testState()

	closed := s.Apply(Action{Type: CloseDoor, To: "B"}).(*GameState)

	require.Contains(t, closed.Doors, NewEdge("A", "B"))
	require.False(t, hasAction(closed.LegalActions(), Move, "B"))
}

func TestRedundantDoorOperationIsNoop(t *testing.T) {
	s := testState()

	next := s.Apply(Action{Type: OpenDoor, To: "B"}).(*GameState)

	require.Zero(t, next.ActionsInTurn, "opening an already open door costs nothing")
	require.NotContains(t, next.Doors, NewEdge("A", "B"))
}

func TestPlayerActionsIgnoredOutsidePlayerPhase(t *testing.T) {
	s := testState()
	s.Phase = EnemyPhase

	next := s.Apply(Action{Type: Move, To: "B"}).(*GameState)

	require.Equal(t, "A", next.PlayerRoom)
	require.Equal(t, EnemyPhase, next.Phase)
	require.Equal(t, s.Turn+1, next.Turn)
}
