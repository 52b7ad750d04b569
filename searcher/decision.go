package searcher

import (
	"math"
	"sync"

	"derelict/game"
)

type decision struct {
	sync.RWMutex
	parent   Node
	actions  []game.Action
	children []Node
	rewards  float64
	visits   int
}

func newDecision(parent Node, state game.State) *decision {
	var actions []game.Action
	if !state.Terminal() {
		actions = state.LegalActions()
	}
	return &decision{
		parent:   parent,
		actions:  actions,
		children: make([]Node, 0, len(actions)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.actions) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.actions) > len(d.children) { // Expandable node
		child, childState := d.addChild(state)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Apply(d.actions[ith]), true
}

func (d *decision) addChild(state game.State) (Node, game.State) {
	action := d.actions[len(d.children)]
	childState := state.Apply(action)
	child := newDecision(d, childState)
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := C_SQUARED * math.Log(float64(d.visits))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss discourages other goroutines from converging on the same path
// while a simulation is in flight.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

func (d *decision) Backup(score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}
	d.rewards += score
	d.visits++

	return d.parent
}

func (d *decision) Visits() int {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns the visit-count distribution over the root's actions.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0
	for _, child := range d.children {
		total += child.Visits()
	}
	policy := make(map[game.Action]float64, len(d.children))
	if total == 0 {
		return policy
	}
	for i, child := range d.children {
		policy[d.actions[i]] = float64(child.Visits()) / float64(total)
	}
	return policy
}

func (d *decision) bestAction() (game.Action, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return game.Action{}, false
	}
	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.actions[bestIndex], true
}
