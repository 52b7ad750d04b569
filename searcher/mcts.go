package searcher

import (
	"sync"
	"time"

	"derelict/experiments/metrics"
	"derelict/game"

	"golang.org/x/exp/rand"
)

// MaxCutoff effectively disables the rollout depth cap.
const MaxCutoff = 1 << 30

type Option func(m *MCTS)

// MCTS runs tree-parallel Monte-Carlo search (shared tree, virtual loss)
// over the rules engine. States are immutable snapshots, so goroutines
// branch freely from the same root.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateSurvival,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		m.goroutines = 1
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit-count move policy
// plus the metrics of this search.
func (m *MCTS) Simulate(state game.State) (map[game.Action]float64, metrics.SearchMetric) {
	m.root = newDecision(nil, state)

	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

// BestAction is Simulate plus the argmax pick.
func (m *MCTS) BestAction(state game.State) (game.Action, metrics.SearchMetric) {
	_, metric := m.Simulate(state)
	if action, ok := m.root.bestAction(); ok {
		return action, metric
	}
	// Terminal root: nothing to search, fall back to the first legal action
	return state.LegalActions()[0], metric
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	score := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, score)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && child != parent {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays random actions to the end of the game or the cutoff depth
// and scores the final state in [0,1].
func rollout(state game.State, cutoff int, evaluate game.Evaluate, collector metrics.Collector) float64 {
	depth := 0
	for !state.Terminal() && depth < cutoff {
		actions := state.LegalActions()
		state = state.Apply(actions[rand.Intn(len(actions))])
		depth++
	}

	if state.Terminal() { // Game over before cutoff
		collector.AddFullPlayout()
		return state.Reward()
	}

	// Rescale the [-1,1] evaluation into the reward range
	return (evaluate(state) + 1) / 2
}

func backup(newNode Node, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(score)
	}
}
