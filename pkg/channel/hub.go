package channel

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub is the host side of the broadcast channel: the websocket endpoint
// every peer of the session connects to. A frame published locally fans out
// to every connected peer and every local subscriber; a frame arriving from
// a peer is relayed to the other peers and the local subscribers. Slow peers
// drop frames rather than stall the session.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]chan []byte
	subs     []Handler
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			// Peers are a small trusted set on the same table; no origin
			// policy applies to non-browser clients anyway.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades a peer connection and pumps it until it drops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("failed to upgrade peer connection", "error", err)
		return
	}
	slog.Info("peer joined session", "remote", conn.RemoteAddr())

	send := make(chan []byte, 16)
	h.mu.Lock()
	h.conns[conn] = send
	h.mu.Unlock()

	go h.writePump(conn, send)
	h.readPump(conn)
}

func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			slog.Info("peer left session", "remote", conn.RemoteAddr())
			return
		}
		h.fanOut(payload, conn)
	}
}

func (h *Hub) writePump(conn *websocket.Conn, send <-chan []byte) {
	for payload := range send {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	conn.Close()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.conns[conn]
	if ok {
		delete(h.conns, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}

// Publish sends a locally originated frame to everyone.
func (h *Hub) Publish(_ context.Context, payload []byte) error {
	h.fanOut(payload, nil)
	return nil
}

// Subscribe registers a local handler for every frame that crosses the hub.
func (h *Hub) Subscribe(fn Handler) {
	h.mu.Lock()
	h.subs = append(h.subs, fn)
	h.mu.Unlock()
}

func (h *Hub) fanOut(payload []byte, from *websocket.Conn) {
	h.mu.Lock()
	subs := make([]Handler, len(h.subs))
	copy(subs, h.subs)
	for conn, send := range h.conns {
		if conn == from {
			continue
		}
		select {
		case send <- payload:
		default:
			slog.Warn("dropping frame for slow peer", "remote", conn.RemoteAddr())
		}
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(payload)
	}
}

// Shutdown disconnects every peer. The hub stays usable for new connections;
// callers that want it gone stop accepting upgrades too.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	for conn, send := range h.conns {
		delete(h.conns, conn)
		close(send)
		conn.Close()
	}
	h.mu.Unlock()
}
