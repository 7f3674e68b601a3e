package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Conn is the subset of *websocket.Conn the hub needs. Narrowing the type
// keeps the hub testable without opening real sockets.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// TextMessage mirrors the gorilla/websocket message type constant so hub
// callers don't need to import the driver package.
const TextMessage = 1

const (
	// sendBufferSize bounds the per-client outbound queue. A viewer that
	// falls this far behind is dropped instead of stalling the mutation path.
	sendBufferSize = 16

	writeTimeout = 10 * time.Second
)

// Hub fans the authoritative snapshot out to every connected viewer.
// Sends are fire-and-forget: each client has a buffered queue drained by its
// own writer goroutine, and a full queue disconnects that client only.
type Hub struct {
	log     zerolog.Logger
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// Client is one connected viewer.
type Client struct {
	conn Conn
	send chan []byte
	once sync.Once
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log.With().Str("component", "hub").Logger(),
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a connection and starts its writer goroutine.
func (h *Hub) Register(conn Conn) *Client {
	c := &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	go h.writePump(c)

	h.log.Debug().Int("viewers", count).Msg("Viewer connected")
	return c
}

// Unregister removes a client and closes its connection. Safe to call more
// than once per client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	count := len(h.clients)
	h.mu.Unlock()

	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})

	if ok {
		h.log.Debug().Int("viewers", count).Msg("Viewer disconnected")
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the payload for every connected viewer without blocking.
// Clients whose queue is full are dropped.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	var slow []*Client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn().Msg("Dropping slow viewer")
		h.Unregister(c)
	}
}

// writePump drains a client's queue onto its connection. Any write error
// unregisters the client.
func (h *Hub) writePump(c *Client) {
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(TextMessage, payload); err != nil {
			h.Unregister(c)
			return
		}
	}
}
