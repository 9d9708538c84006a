// Package realtime pushes refresh triggers to connected clients over
// websockets. Events carry no payload beyond a topic: the client is expected
// to re-fetch the affected view, never to patch its state incrementally.
package realtime

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/scholaria/scholaria-backend/src/lib"
)

// Event is the only message shape the hub ever sends.
type Event struct {
	Event string `json:"event"`
	Topic string `json:"topic"`
}

// Hub tracks one websocket registry per user. A user may hold several
// connections at once (multiple tabs); every one of them gets each event.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[uint]map[*websocket.Conn]bool
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		log: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[uint]map[*websocket.Conn]bool),
	}
}

// Notify sends a refresh event for the topic to every connection the user has
// open. Broken connections are dropped on write failure.
func (h *Hub) Notify(userID uint, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(Event{Event: "refresh", Topic: topic}); err != nil {
			h.log.Debug().Err(err).Uint("user", userID).Msg("dropping dead websocket")
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}

func (h *Hub) register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *Hub) unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// handleWS authenticates the client from a token query parameter, upgrades,
// and keeps the connection registered until the client goes away.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := lib.VerifyJWT(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	rawID, ok := claims["userId"].(float64)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID := uint(rawID)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.register(userID, conn)
	h.log.Info().Uint("user", userID).Msg("realtime client connected")

	defer func() {
		h.unregister(userID, conn)
		conn.Close()
		h.log.Info().Uint("user", userID).Msg("realtime client disconnected")
	}()

	// Inbound messages are ignored; the read loop only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Serve runs the hub on its own listener, separate from the API server.
func (h *Hub) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)

	h.log.Info().Str("addr", addr).Msg("realtime hub listening")
	return http.ListenAndServe(addr, mux)
}
