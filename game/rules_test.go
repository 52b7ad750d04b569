package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testState() *GameState {
	return NewGameState(CreateBoard(), "A")
}

func hasAction(actions []Action, t ActionType, to string) bool {
	for _, a := range actions {
		if a.Type == t && a.To == to {
			return true
		}
	}
	return false
}

func countType(actions []Action, t ActionType) int {
	n := 0
	for _, a := range actions {
		if a.Type == t {
			n++
		}
	}
	return n
}

func TestLegalActionsIncludeMoveAndPass(t *testing.T) {
	s := testState()

	actions := s.LegalActions()

	require.True(t, hasAction(actions, Move, "B"), "MOVE to neighbor B should be legal")
	require.Equal(t, 1, countType(actions, Pass), "PASS should be legal")
	require.Equal(t, 1, countType(actions, Noop), "NOOP is always legal")
}

func TestLegalActionsNeverEmpty(t *testing.T) {
	s := testState()
	s.Phase = EnemyPhase

	actions := s.LegalActions()

	require.NotEmpty(t, actions)
	require.Equal(t, Noop, actions[len(actions)-1].Type, "NOOP should come last")
	require.Equal(t, 1, countType(actions, NextPhase), "NEXT_PHASE drives non-player phases")
	require.Zero(t, countType(actions, Move), "no player moves outside PLAYER")
}

func TestClosedDoorBlocksMoveLegality(t *testing.T) {
	s := testState()
	s.Doors[NewEdge("A", "B")] = struct{}{}

	actions := s.LegalActions()

	require.False(t, hasAction(actions, Move, "B"), "MOVE through a closed door is not legal")
	require.False(t, hasAction(actions, MoveCautious, "B"))
	require.True(t, hasAction(actions, OpenDoor, "B"), "OPEN_DOOR is offered instead")
	require.False(t, hasAction(actions, CloseDoor, "B"))
}

func TestShootRequiresAmmoAndIntruder(t *testing.T) {
	t.Run("no intruder", func(t *testing.T) {
		s := testState()
		actions := s.LegalActions()
		require.Zero(t, countType(actions, Shoot))
		require.Zero(t, countType(actions, Melee))
	})

	t.Run("intruder present but no ammo", func(t *testing.T) {
		s := testState()
		s.Intruders["A"] = 2
		s.Ammo = 0
		actions := s.LegalActions()
		require.Zero(t, countType(actions, Shoot), "SHOOT needs ammo")
		require.Zero(t, countType(actions, Burst))
		require.Equal(t, 1, countType(actions, Melee), "MELEE never needs ammo")
	})

	t.Run("intruder present with ammo", func(t *testing.T) {
		s := testState()
		s.Intruders["A"] = 2
		actions := s.LegalActions()
		require.Equal(t, 1, countType(actions, Shoot))
		require.Equal(t, 1, countType(actions, Burst))
	})

	t.Run("jammed weapon", func(t *testing.T) {
		s := testState()
		s.Intruders["A"] = 2
		s.WeaponJammed = true
		actions := s.LegalActions()
		require.Zero(t, countType(actions, Shoot))
		require.Zero(t, countType(actions, Burst))
	})
}

func TestEndPlayerPhaseOnlyAtTurnBoundary(t *testing.T) {
	s := testState()
	require.Equal(t, 1, countType(s.LegalActions(), EndPlayerPhase))

	mid := s.Apply(Action{Type: Move, To: "B"}).(*GameState)
	require.Equal(t, 1, mid.ActionsInTurn)
	require.Zero(t, countType(mid.LegalActions(), EndPlayerPhase),
		"cannot end the phase mid-turn")
}

func TestEscapeOnlyInEngineRoom(t *testing.T) {
	s := testState()
	require.Zero(t, countType(s.LegalActions(), Escape))

	s.PlayerRoom = "E"
	require.Equal(t, 1, countType(s.LegalActions(), Escape))
}

func TestUseRoomOfferedOnConsoles(t *testing.T) {
	s := testState()
	for _, room := range []string{"A", "B", "C", "D", "E"} {
		s.PlayerRoom = room
		require.Equal(t, 1, countType(s.LegalActions(), UseRoom), "room %s has a console", room)
	}
}
