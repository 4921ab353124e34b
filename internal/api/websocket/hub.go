package websocket

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/courtside/internal/service"
)

// Message types sent to clients
const (
	MessageTypeLiveUpdate = "live_update"
	MessageTypeHeartbeat  = "heartbeat"
	MessageTypeError      = "error"
)

// ServerMessage is the envelope of every message pushed to a client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts live snapshots to
// them. A client that connects is sent the latest snapshot first.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan ServerMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	last atomic.Pointer[ServerMessage]

	totalConnections atomic.Int64
	totalMessages    atomic.Int64
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ServerMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	log.Println("[ws-hub] ✓ hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a live snapshot for every client. When the queue is
// full the snapshot is dropped; the next poll supersedes it anyway.
func (h *Hub) Broadcast(view *service.LiveView) {
	msg := ServerMessage{Type: MessageTypeLiveUpdate, Payload: view, Timestamp: time.Now()}
	h.last.Store(&msg)

	select {
	case h.broadcast <- msg:
	default:
		log.Println("[ws-hub] ⚠️  broadcast buffer full, dropping snapshot")
	}
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.clientsMu.Unlock()
	h.totalConnections.Add(1)

	if last := h.last.Load(); last != nil {
		c.TrySend(*last)
	}
	log.Printf("[ws-hub] client %s connected (total: %d)", c.ID, total)
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
		log.Printf("[ws-hub] client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastMessage(msg ServerMessage) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	dropped := 0
	for _, c := range clients {
		if !c.TrySend(msg) {
			dropped++
			go h.Unregister(c)
		}
	}
	h.totalMessages.Add(1)

	if dropped > 0 {
		log.Printf("[ws-hub] ⚠️  disconnected %d slow clients", dropped)
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Metrics returns hub counters
func (h *Hub) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"active_clients":    h.ClientCount(),
		"total_connections": h.totalConnections.Load(),
		"total_broadcasts":  h.totalMessages.Load(),
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("[ws-hub] shutting down (%d active clients)", len(h.clients))
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}
