// Package server exposes a single hosted game over HTTP so non-Go
// clients can drive the rules engine remotely.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"derelict/game"
)

// NewState builds a fresh starting snapshot, optionally seeded.
type NewState func(seed *int64) *game.GameState

// Server hosts one game behind a JSON API. All handlers share the
// current snapshot under a mutex; snapshots themselves are immutable, so
// readers that captured one can encode it outside the lock.
type Server struct {
	cfg      Config
	newState NewState

	mu    sync.Mutex
	state *game.GameState

	hub *hub
}

func New(cfg Config, newState NewState) *Server {
	return &Server{
		cfg:      cfg,
		newState: newState,
		state:    newState(nil),
		hub:      newHub(),
	}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/actions", s.handleActions)
	mux.HandleFunc("POST /api/step", s.handleStep)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/watch", s.handleWatch)
	return mux
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.cfg.Addr).Msg("serving game api")
	if err := http.ListenAndServe(s.cfg.Addr, s.Handler()); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func (s *Server) snapshot() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, encodeState(s.snapshot()))
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, encodeActions(s.snapshot().LegalActions()))
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var in ActionIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
		return
	}
	action, err := decodeAction(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	next := s.state.Apply(action).(*game.GameState)
	s.state = next
	s.mu.Unlock()

	log.Debug().Str("action", action.String()).Msg("stepped hosted game")
	s.hub.broadcast(encodeState(next))
	writeJSON(w, http.StatusOK, encodeState(next))
}

type resetIn struct {
	Seed *int64 `json:"seed"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var in resetIn
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
			return
		}
	}

	fresh := s.newState(in.Seed)
	s.mu.Lock()
	s.state = fresh
	s.mu.Unlock()

	log.Info().Msg("hosted game reset")
	s.hub.broadcast(encodeState(fresh))
	writeJSON(w, http.StatusOK, encodeState(fresh))
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	s.hub.serve(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
