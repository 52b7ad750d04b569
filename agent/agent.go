// Package agent holds the decision-makers layered on top of the rules
// engine. Every agent consumes only the engine's two entry points:
// LegalActions and Apply.
package agent

import "derelict/game"

type Agent interface {
	// FindAction picks one of state's legal actions.
	FindAction(state game.State) game.Action
}
