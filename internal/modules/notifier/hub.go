package notifier

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub pushes status updates to connected browsers. One socket per user; a
// reconnect replaces the previous one.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev := h.conns[userID]; prev != nil {
		_ = prev.Close()
	}
	h.conns[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn := h.conns[userID]; conn != nil {
		_ = conn.Close()
	}
	delete(h.conns, userID)
}

// SendToUser writes one JSON message to the user's socket. A write failure
// drops the connection; the browser reconnects and replays via the handler.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mu.RLock()
	conn := h.conns[userID]
	h.mu.RUnlock()

	if conn == nil {
		return false
	}
	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}
	return true
}
