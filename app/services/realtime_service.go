// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RealtimeHub tracks live websocket connections. Clients connect to receive
// future push notifications; no message routing is implemented yet, the hub
// only manages the connect/disconnect lifecycle.
type RealtimeHub struct {
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]struct{}
	done     chan struct{}
	closed   bool
	onCount  func(int)
}

const (
	realtimePongWait   = 60 * time.Second
	realtimePingPeriod = 30 * time.Second
	realtimeWriteWait  = 10 * time.Second
)

// NewRealtimeHub creates a hub ready to accept connections
func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
		done:  make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and tracks the connection until it closes
func (h *RealtimeHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	h.register(conn)
	log.Printf("realtime: client connected from %s (%d active)", r.RemoteAddr, h.ConnectionCount())

	go h.readLoop(conn, r.RemoteAddr)
	go h.pingLoop(conn)
}

// OnConnectionChange registers a callback invoked with the connection count
// whenever a client connects or disconnects
func (h *RealtimeHub) OnConnectionChange(fn func(int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCount = fn
}

// ConnectionCount returns the number of live connections
func (h *RealtimeHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Shutdown closes every tracked connection
func (h *RealtimeHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.done)

	for conn := range h.conns {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(realtimeWriteWait),
		)
		conn.Close()
		delete(h.conns, conn)
	}
	if h.onCount != nil {
		h.onCount(0)
	}
}

func (h *RealtimeHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	if h.onCount != nil {
		h.onCount(len(h.conns))
	}
}

func (h *RealtimeHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		conn.Close()
		delete(h.conns, conn)
		if h.onCount != nil {
			h.onCount(len(h.conns))
		}
	}
}

// readLoop drains inbound frames so control messages are processed; payloads
// are discarded
func (h *RealtimeHub) readLoop(conn *websocket.Conn, remote string) {
	defer func() {
		h.unregister(conn)
		log.Printf("realtime: client disconnected from %s (%d active)", remote, h.ConnectionCount())
	}()

	_ = conn.SetReadDeadline(time.Now().Add(realtimePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(realtimePongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RealtimeHub) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(realtimePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(realtimeWriteWait))
			if err != nil {
				h.unregister(conn)
				return
			}
		}
	}
}
