package game

// EvaluateSurvival scores a snapshot between -1 and 1 from the player's
// side: resource margins push the score up, intruder pressure and an
// unescaped self-destruct push it down. Used by the searcher when a
// rollout is cut off before the game ends.
func EvaluateSurvival(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		return 0
	}
	if gs.GameOver {
		if gs.Win {
			return 1
		}
		return -1
	}

	// Resource margins, each in [0,1]
	health := ratio(gs.Health, maxHealth)
	oxygen := ratio(gs.Oxygen, 5)
	ammo := ratio(gs.Ammo, gs.AmmoMax)

	// Threat pressure, each in [0,1]
	threat := ratio(len(gs.Intruders), len(gs.Board.Rooms))
	if _, shared := gs.Intruders[gs.PlayerRoom]; shared {
		threat += 0.5
	}
	if _, burning := gs.Fires[gs.PlayerRoom]; burning {
		threat += 0.25
	}
	if gs.WeaponJammed {
		threat += 0.25
	}
	if threat > 1 {
		threat = 1
	}

	// An armed countdown is only good while the player can still reach
	// the engine room in time.
	destruct := 0.0
	if gs.SelfDestructArmed {
		destruct = 0.5
	}

	score := 0.35*health + 0.25*oxygen + 0.15*ammo - 0.25*threat - destruct*0.2
	// Rescale to [-1, 1]
	score = score*2 - 0.5
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

func ratio(value, max int) float64 {
	if max <= 0 {
		return 0
	}
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	return float64(value) / float64(max)
}
