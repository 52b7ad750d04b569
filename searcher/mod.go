package searcher

import (
	"math"

	"derelict/game"
)

// Exploration constant for UCB1 (c^2 = 2).
const C_SQUARED = 2.0

// Terminal rewards. Cutoff evaluations are rescaled into the same [0,1]
// range before backup.
const (
	Win  = 1.0
	Loss = 0.0
)

// Node is one tree node. The engine is deterministic given an action, so
// every node is a decision node; there are no chance branches.
type Node interface {
	// SelectOrExpand walks one level down: it returns the max-UCB child
	// (selected=true) or a newly expanded child (selected=false), along
	// with that child's state. A terminal node returns itself.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup adds a playout score and reverses the virtual loss, then
	// returns the parent for the caller to continue up the path.
	Backup(score float64) Node
	Visits() int

	applyLoss()
	score(normalizer float64) float64
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
