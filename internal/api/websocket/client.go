package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// ClientMessage is what a client may send; only heartbeats are answered
type ClientMessage struct {
	Type string `json:"type"`
}

// Client is one WebSocket connection subscribed to live snapshots
type Client struct {
	ID          string
	conn        *websocket.Conn
	send        chan ServerMessage
	hub         *Hub
	connectedAt time.Time

	mu     sync.Mutex
	closed bool
}

func newClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          id,
		conn:        conn,
		send:        make(chan ServerMessage, sendBufferSize),
		hub:         hub,
		connectedAt: time.Now(),
	}
}

// TrySend queues a message without blocking and reports whether it fit
func (c *Client) TrySend(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close ends the send queue; writePump then closes the connection
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump consumes client messages until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] client %s unexpected close: %v", c.ID, err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeHeartbeat:
			c.TrySend(ServerMessage{Type: MessageTypeHeartbeat, Timestamp: time.Now()})
		default:
			c.TrySend(ServerMessage{
				Type:      MessageTypeError,
				Payload:   map[string]string{"message": "unknown message type: " + msg.Type},
				Timestamp: time.Now(),
			})
		}
	}
}

// writePump writes queued messages and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[ws] client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
