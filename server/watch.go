package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watcher pairs a connection with the write lock the websocket package
// requires: at most one goroutine may write to a Conn at a time.
type watcher struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *watcher) send(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

// hub fans snapshots out to websocket watchers. Slow or dead connections
// are dropped on write failure rather than backing up the stepper.
type hub struct {
	mu       sync.Mutex
	watchers map[*websocket.Conn]*watcher
}

func newHub() *hub {
	return &hub{watchers: make(map[*websocket.Conn]*watcher)}
}

func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.watchers[conn] = &watcher{conn: conn}
	n := len(h.watchers)
	h.mu.Unlock()
	log.Info().Int("watchers", n).Msg("watcher connected")

	// Drain the connection so close frames are processed.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.watchers[conn]; ok {
		delete(h.watchers, conn)
		conn.Close()
	}
	n := len(h.watchers)
	h.mu.Unlock()
	log.Info().Int("watchers", n).Msg("watcher disconnected")
}

func (h *hub) broadcast(v any) {
	h.mu.Lock()
	watchers := make([]*watcher, 0, len(h.watchers))
	for _, w := range h.watchers {
		watchers = append(watchers, w)
	}
	h.mu.Unlock()

	for _, w := range watchers {
		if err := w.send(v); err != nil {
			log.Warn().Err(err).Msg("dropping watcher on write failure")
			h.drop(w.conn)
		}
	}
}
