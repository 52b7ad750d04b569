package game

// Rules is the stateless rules engine: a legality predicate and a
// transition function over GameState snapshots. Both are pure; Apply
// always returns a fresh snapshot and never touches its input.
type Rules struct{}

// usableRooms are the console types USE_ROOM responds to.
var usableRooms = map[RoomType]bool{
	Control:     true,
	Armory:      true,
	Surgery:     true,
	EngineRoom:  true,
	FireControl: true,
}

// LegalActions computes the exhaustive ordered list of actions legal in
// this exact state: movement, doors, combat, room use, PASS, phase
// control, then NOOP. The order is stable so callers can index into it.
// It never returns an empty list; NOOP is always present.
func (Rules) LegalActions(s *GameState) []Action {
	var actions []Action

	if s.Phase == PlayerPhase {
		neighbors := s.Board.Neighbors(s.PlayerRoom)

		for _, n := range neighbors {
			if s.doorClosed(s.PlayerRoom, n) {
				continue
			}
			actions = append(actions, Action{Type: Move, To: n})
		}
		for _, n := range neighbors {
			if s.doorClosed(s.PlayerRoom, n) {
				continue
			}
			actions = append(actions, Action{Type: MoveCautious, To: n})
		}

		for _, n := range neighbors {
			if s.doorClosed(s.PlayerRoom, n) {
				actions = append(actions, Action{Type: OpenDoor, To: n})
			} else {
				actions = append(actions, Action{Type: CloseDoor, To: n})
			}
		}

		if _, here := s.Intruders[s.PlayerRoom]; here {
			actions = append(actions, Action{Type: Melee})
			if s.Ammo > 0 && !s.WeaponJammed {
				actions = append(actions, Action{Type: Shoot})
				actions = append(actions, Action{Type: Burst})
			}
		}

		rt := s.Board.RoomType(s.PlayerRoom)
		if usableRooms[rt] {
			actions = append(actions, Action{Type: UseRoom})
		}
		if rt == EngineRoom {
			actions = append(actions, Action{Type: Escape})
		}

		actions = append(actions, Action{Type: Pass})

		// Guard against ending the phase mid-action-sequence.
		if s.ActionsInTurn == 0 {
			actions = append(actions, Action{Type: EndPlayerPhase})
		}
	} else {
		actions = append(actions, Action{Type: NextPhase})
	}

	actions = append(actions, Action{Type: Noop})
	return actions
}

func (gs *GameState) doorClosed(a, b string) bool {
	_, closed := gs.Doors[NewEdge(a, b)]
	return closed
}
