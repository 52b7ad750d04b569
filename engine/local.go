// Package engine drives full games between an agent and the rules,
// collecting per-game and per-move statistics along the way.
package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"derelict/agent"
	"derelict/experiments/metrics"
	"derelict/game"
)

// MaxMoves bounds a single game so a degenerate agent cannot loop forever.
const MaxMoves = 10000

// Outcome summarizes a finished game.
type Outcome struct {
	Win        bool
	Rounds     int
	Turns      int
	Moves      int
	HitMoveCap bool
	Duration   time.Duration
}

// Local runs games in-process, feeding the agent the current state and
// applying whatever action it returns.
type Local struct {
	agent agent.Agent
	name  string
	start *game.GameState
}

func NewLocal(name string, a agent.Agent, start *game.GameState) *Local {
	return &Local{agent: a, name: name, start: start}
}

// Run plays a single game to termination or the MaxMoves cap.
func (e *Local) Run() (Outcome, metrics.GameMetric) {
	startTime := time.Now()
	var state game.State = e.start.Copy()
	var moves []metrics.MoveMetric

	step := 0
	for !state.Terminal() && step < MaxMoves {
		gs := state.(*game.GameState)
		action := e.agent.FindAction(state)

		move := metrics.MoveMetric{Step: step, Phase: gs.Phase.String(), Action: action.String()}
		if s, ok := e.agent.(*agent.Searcher); ok {
			move.SearchMetric = s.LastMetric()
		}
		moves = append(moves, move)

		log.Debug().
			Int("step", step).
			Str("phase", gs.Phase.String()).
			Str("action", action.String()).
			Msg("applying action")

		state = state.Apply(action)
		step++
	}

	final := state.(*game.GameState)
	capped := !state.Terminal()
	if capped {
		log.Warn().Int("moves", step).Msg("game cut off at move cap")
	}

	outcome := Outcome{
		Win:        final.Win,
		Rounds:     final.Round,
		Turns:      final.Turn,
		Moves:      step,
		HitMoveCap: capped,
		Duration:   time.Since(startTime),
	}

	log.Info().
		Bool("win", outcome.Win).
		Int("rounds", outcome.Rounds).
		Int("moves", outcome.Moves).
		Dur("duration", outcome.Duration).
		Msg("game finished")

	return outcome, metrics.GameMetric{
		Agent:      e.name,
		Win:        final.Win,
		Rounds:     final.Round,
		Turns:      final.Turn,
		StartTime:  startTime,
		EndTime:    time.Now(),
		Duration:   time.Since(startTime),
		HitMoveCap: capped,
		Moves:      moves,
	}
}
