package agent

import (
	"derelict/experiments/metrics"
	"derelict/game"
	"derelict/searcher"
)

// Searcher wraps an MCTS instance and plays the max-visit move.
type Searcher struct {
	mcts       *searcher.MCTS
	lastMetric metrics.SearchMetric
}

func NewSearcher(mcts *searcher.MCTS) *Searcher {
	return &Searcher{mcts: mcts}
}

func (a *Searcher) FindAction(state game.State) game.Action {
	action, metric := a.mcts.BestAction(state)
	a.lastMetric = metric
	return action
}

// LastMetric reports the metrics of the most recent search.
func (a *Searcher) LastMetric() metrics.SearchMetric {
	return a.lastMetric
}
