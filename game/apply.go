package game

import "sort"

// Attack deck arithmetic: deterministic stand-ins for the combat dice.
// Kept verbatim for behavioral compatibility; not final game balance.
const (
	jamEvery        = 13
	critEvery       = 7
	lastBulletEvery = 5
)

const (
	maxHealth         = 5
	seriousWoundsCap  = 3
	destructCountdown = 3
)

type attackOutcome int

const (
	outcomeMiss attackOutcome = iota
	outcomeHit
	outcomeCrit
	outcomeJam
)

// Apply is the single transition entry point. It consumes a snapshot and
// one action and returns the successor with all cascading effects applied.
// Illegal or structurally invalid actions are normalized to NOOP: the turn
// counter still advances and nothing else changes. Apply never mutates s.
func (Rules) Apply(s *GameState, a Action) *GameState {
	ns := s.Copy()
	ns.Turn++

	// Phase-control actions are the only ones legal outside PLAYER.
	switch a.Type {
	case EndPlayerPhase:
		if ns.Phase == PlayerPhase && ns.ActionsInTurn == 0 {
			ns.Phase = EnemyPhase
			enterEnemy(ns)
		}
		return ns
	case NextPhase:
		if ns.Phase == PlayerPhase {
			return ns
		}
		ns.Phase = ns.Phase.Next()
		switch ns.Phase {
		case EnemyPhase:
			enterEnemy(ns)
		case EventPhase:
			enterEvent(ns, a.NoiseRoll)
		case CleanupPhase:
			enterCleanup(ns)
		}
		return ns
	case Noop:
		return ns
	}

	if ns.Phase != PlayerPhase {
		return ns
	}

	switch a.Type {
	case Move:
		applyMove(s, ns, a, false)
	case MoveCautious:
		applyMove(s, ns, a, true)
	case OpenDoor:
		applyDoor(ns, a.To, true)
	case CloseDoor:
		applyDoor(ns, a.To, false)
	case Shoot:
		applyShoot(ns, false)
	case Burst:
		applyShoot(ns, true)
	case Melee:
		applyMelee(ns)
	case UseRoom:
		applyUseRoom(ns)
	case Escape:
		// Legality gates this on an ENGINE room; not re-checked here.
		ns.GameOver = true
		ns.Win = true
	case Pass:
		endTurn(ns)
	}
	return ns
}

// applyMove handles MOVE and MOVE_CAUTIOUS. prev is the pre-move snapshot:
// the encounter check looks at noise as it stood before this move placed
// any.
func applyMove(prev *GameState, ns *GameState, a Action, cautious bool) {
	from := ns.PlayerRoom
	dest := a.To
	if !ns.Board.HasEdge(from, dest) || ns.doorClosed(from, dest) {
		return // NOOP-equivalent
	}

	traversed := NewEdge(from, dest)
	_, hadIntruder := prev.Intruders[dest]
	triggered := prev.RoomNoise[dest] >= 1
	if !triggered {
		for _, e := range prev.Board.IncidentEdges(dest) {
			if prev.Noise[e] >= 1 {
				triggered = true
				break
			}
		}
	}

	ns.PlayerRoom = dest
	ns.ActionsInTurn++

	if ns.exploring() && !ns.discovered(dest) {
		ns.DiscoveredRooms[dest] = struct{}{}
		if cautious {
			// A secured entry: no entrance card, no noise.
			ns.SecureTokens[traversed] = struct{}{}
		} else {
			drawEntranceCard(ns, dest, traversed)
		}
	} else {
		placeMoveNoise(ns, a, traversed, dest, cautious)
	}

	if !hadIntruder && triggered {
		// The noise that caused the spawn is consumed.
		ns.Intruders[dest] = 1
		for _, e := range ns.Board.IncidentEdges(dest) {
			delete(ns.Noise, e)
		}
		delete(ns.RoomNoise, dest)
	}

	endTurnIfSpent(ns)
}

func placeMoveNoise(ns *GameState, a Action, traversed Edge, dest string, cautious bool) {
	if a.NoiseRoll == NoiseRoom {
		ns.RoomNoise[dest]++
		return
	}
	if !cautious {
		ns.Noise[traversed]++
		return
	}
	// Cautious corridor noise goes to the nominated edge; an invalid or
	// closed nomination places nothing.
	e := NewEdge(a.NoiseEdge.A, a.NoiseEdge.B)
	if _, ok := ns.Board.Edges[e]; !ok {
		return
	}
	if _, closed := ns.Doors[e]; closed {
		return
	}
	ns.Noise[e]++
}

func drawEntranceCard(ns *GameState, dest string, traversed Edge) {
	if len(ns.ExplorationDeckCards) == 0 {
		return
	}
	card := ns.ExplorationDeckCards[0]
	ns.ExplorationDeckCards = ns.ExplorationDeckCards[1:]

	switch card {
	case CardEntranceNoiseRoom:
		ns.RoomNoise[dest]++
	case CardEntranceNoiseCorridor:
		ns.Noise[traversed]++
	case CardEntranceCloseDoors:
		for _, e := range ns.Board.IncidentEdges(dest) {
			ns.Doors[e] = struct{}{}
		}
	}
}

func applyDoor(ns *GameState, to string, open bool) {
	if !ns.Board.HasEdge(ns.PlayerRoom, to) {
		return
	}
	e := NewEdge(ns.PlayerRoom, to)
	_, closed := ns.Doors[e]
	if open != closed {
		// Cannot open an open door or close a closed one.
		return
	}
	if open {
		delete(ns.Doors, e)
	} else {
		ns.Doors[e] = struct{}{}
	}
	ns.ActionsInTurn++
	endTurnIfSpent(ns)
}

// resolveAttack reads the deck value, classifies the outcome, and reports
// whether the last-bullet trigger fires. An exhausted deck always misses;
// the trigger never fires on an empty deck even though 0%5 == 0.
func resolveAttack(deck int) (attackOutcome, bool) {
	if deck <= 0 {
		return outcomeMiss, false
	}
	lastBullet := deck%lastBulletEvery == 0
	switch {
	case deck%jamEvery == 0:
		return outcomeJam, lastBullet
	case deck%critEvery == 0:
		return outcomeCrit, lastBullet
	default:
		return outcomeHit, lastBullet
	}
}

func applyShoot(ns *GameState, burst bool) {
	hp, here := ns.Intruders[ns.PlayerRoom]
	if !here || ns.Ammo <= 0 || ns.WeaponJammed {
		return
	}

	outcome, lastBullet := resolveAttack(ns.AttackDeck)
	if ns.AttackDeck > 0 {
		ns.AttackDeck--
	}

	if burst {
		// BURST always spends exactly one round.
		ns.Ammo--
	} else if lastBullet {
		ns.Ammo--
	}
	if ns.Ammo < 0 {
		ns.Ammo = 0
	}

	switch outcome {
	case outcomeHit:
		damageIntruder(ns, ns.PlayerRoom, hp, 1)
	case outcomeCrit:
		damageIntruder(ns, ns.PlayerRoom, hp, 2)
	case outcomeJam:
		ns.WeaponJammed = true
	}

	ns.ActionsInTurn++
	endTurnIfSpent(ns)
}

func applyMelee(ns *GameState) {
	hp, here := ns.Intruders[ns.PlayerRoom]
	if !here {
		return
	}
	damageIntruder(ns, ns.PlayerRoom, hp, 1)

	if ns.Health > 0 {
		ns.Health--
	}
	// Literal thresholds from the original wound roll stand-in.
	if (ns.Health == 3 || ns.Health == 1) && ns.SeriousWounds < seriousWoundsCap {
		ns.SeriousWounds++
	}

	ns.ActionsInTurn++
	endTurnIfSpent(ns)
}

func damageIntruder(ns *GameState, room string, hp, dmg int) {
	hp -= dmg
	if hp <= 0 {
		delete(ns.Intruders, room)
	} else {
		ns.Intruders[room] = hp
	}
}

func applyUseRoom(ns *GameState) {
	switch ns.Board.RoomType(ns.PlayerRoom) {
	case Control:
		ns.LifeSupportActive = !ns.LifeSupportActive
	case Armory:
		if ns.Ammo == ns.AmmoMax && !ns.WeaponJammed {
			return
		}
		ns.Ammo = ns.AmmoMax
		ns.WeaponJammed = false
	case Surgery:
		changed := false
		if ns.Health < maxHealth {
			ns.Health++
			changed = true
		}
		if ns.SeriousWounds > 0 {
			ns.SeriousWounds--
			changed = true
		}
		if !changed {
			return
		}
	case EngineRoom:
		if ns.SelfDestructArmed {
			return
		}
		ns.SelfDestructArmed = true
		ns.DestructionTimer = destructCountdown
	case FireControl:
		// Always an action, fire or not.
		delete(ns.Fires, ns.PlayerRoom)
	default:
		return
	}
	ns.ActionsInTurn++
	endTurnIfSpent(ns)
}

// endTurnIfSpent runs the end-of-turn sequence once the player has taken
// two actions this turn.
func endTurnIfSpent(ns *GameState) {
	if ns.ActionsInTurn >= 2 {
		endTurn(ns)
	}
}

func endTurn(ns *GameState) {
	if !ns.LifeSupportActive && ns.Oxygen > 0 {
		ns.Oxygen--
	}
	if _, burning := ns.Fires[ns.PlayerRoom]; burning && ns.Health > 0 {
		ns.Health--
	}
	ns.ActionsInTurn = 0
}

func enterEnemy(ns *GameState) {
	burn := 0
	for room := range ns.Intruders {
		if _, onFire := ns.Fires[room]; onFire {
			burn++
		}
	}
	ns.IntruderBurnLast = burn

	if _, here := ns.Intruders[ns.PlayerRoom]; here && ns.Health > 0 {
		ns.Health--
	}
}

func enterEvent(ns *GameState, noiseRoll NoiseTarget) {
	moveIntruders(ns)

	if len(ns.EventDeckCards) > 0 {
		card := ns.EventDeckCards[0]
		ns.EventDeckCards = ns.EventDeckCards[1:]
		ns.EventDeck = len(ns.EventDeckCards)
		processEventCard(ns, card)
		return
	}

	// Deck exhausted: burn the counter and fall back to ambient noise.
	if ns.EventDeck > 0 {
		ns.EventDeck--
	}
	placeAmbientNoise(ns, noiseRoll)
}

func processEventCard(ns *GameState, card string) {
	switch card {
	case CardNoiseCorridor:
		placeAmbientNoise(ns, NoiseCorridor)
	case CardNoiseRoom:
		ns.RoomNoise[ns.PlayerRoom]++
	case CardBagDev:
		ns.BagDevCount++
		ns.Bag[TokenAdult]++
	case CardSpawnFromBag:
		drawFromBag(ns)
	case CardOxygenLeak:
		ns.LifeSupportActive = false
	case CardFireRoom:
		ns.Fires[ns.PlayerRoom] = struct{}{}
	}
	// Unknown cards are ignored.
}

// placeAmbientNoise puts one noise near the player: on the
// lexicographically-smallest open incident corridor, or on the room itself
// when asked for (or when every corridor is sealed).
func placeAmbientNoise(ns *GameState, target NoiseTarget) {
	if target != NoiseRoom {
		for _, e := range ns.Board.IncidentEdges(ns.PlayerRoom) {
			if _, closed := ns.Doors[e]; closed {
				continue
			}
			ns.Noise[e]++
			return
		}
	}
	ns.RoomNoise[ns.PlayerRoom]++
}

// drawFromBag draws the alphabetically-first token with a positive count.
// An ADULT token spawns a 1 HP intruder in the player's room unless one is
// already there.
func drawFromBag(ns *GameState) {
	keys := sortedIntKeys(ns.Bag)
	for _, k := range keys {
		if ns.Bag[k] <= 0 {
			continue
		}
		ns.Bag[k]--
		if ns.Bag[k] == 0 {
			delete(ns.Bag, k)
		}
		if k == TokenAdult {
			if _, here := ns.Intruders[ns.PlayerRoom]; !here {
				ns.Intruders[ns.PlayerRoom] = 1
			}
		}
		return
	}
}

// moveIntruders advances every intruder one graph step toward the player
// along BFS shortest paths over open edges. Blocked intruders stay put;
// converging intruders merge keeping the max HP. A fresh arrival into the
// player's room deals 1 damage.
func moveIntruders(ns *GameState) {
	if len(ns.Intruders) == 0 {
		return
	}
	dist := openDistances(ns, ns.PlayerRoom)

	rooms := make([]string, 0, len(ns.Intruders))
	for r := range ns.Intruders {
		rooms = append(rooms, r)
	}
	sort.Strings(rooms)

	moved := make(map[string]int, len(ns.Intruders))
	arrived := false
	for _, room := range rooms {
		hp := ns.Intruders[room]
		dest := stepToward(ns, dist, room)
		if dest == ns.PlayerRoom && room != ns.PlayerRoom {
			arrived = true
		}
		if prev, ok := moved[dest]; !ok || hp > prev {
			moved[dest] = hp
		}
	}
	ns.Intruders = moved

	if arrived && ns.Health > 0 {
		ns.Health--
	}
}

// stepToward picks the next room on a shortest open path from room to the
// player: the lexicographically-smallest neighbor strictly closer to the
// player. No path, or already there, means stay.
func stepToward(ns *GameState, dist map[string]int, room string) string {
	d, reachable := dist[room]
	if !reachable || d == 0 {
		return room
	}
	for _, n := range ns.Board.Neighbors(room) {
		if ns.doorClosed(room, n) {
			continue
		}
		if nd, ok := dist[n]; ok && nd == d-1 {
			return n
		}
	}
	return room
}

// openDistances is BFS from the source over edges not blocked by doors.
func openDistances(ns *GameState, source string) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range ns.Board.Neighbors(current) {
			if ns.doorClosed(current, n) {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[current] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

func enterCleanup(ns *GameState) {
	ns.Round++

	if ns.SelfDestructArmed && ns.DestructionTimer > 0 {
		ns.DestructionTimer--
	}
	if ns.SelfDestructArmed && ns.DestructionTimer == 0 && !ns.GameOver {
		ns.GameOver = true
		ns.Win = false
	}

	// Running out of air or blood is a loss too.
	if !ns.GameOver && (ns.Health == 0 || ns.Oxygen == 0) {
		ns.GameOver = true
		ns.Win = false
	}
}

func (gs *GameState) exploring() bool {
	return len(gs.DiscoveredRooms) > 0
}

func (gs *GameState) discovered(room string) bool {
	_, ok := gs.DiscoveredRooms[room]
	return ok
}
