package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pitwall/internal/collector"
)

// StreamMessage is the envelope for every frame on the live stream.
type StreamMessage struct {
	Type      string      `json:"type"` // "snapshot", "auth_success", "auth_error", "pong"
	Timestamp time.Time   `json:"timestamp,omitzero"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Token     string      `json:"token,omitempty"` // set by clients on "auth" messages
}

// ClientConnection represents a connected WebSocket client.
type ClientConnection struct {
	ID    string
	Conn  *websocket.Conn
	Send  chan StreamMessage
	Close chan bool
}

// Hub fans the latest snapshot out to every connected client on a
// fixed interval. Clients whose send buffer is full are skipped for
// that tick rather than blocking the loop.
type Hub struct {
	collector  *collector.Collector
	clients    map[string]*ClientConnection
	broadcast  chan StreamMessage
	register   chan *ClientConnection
	unregister chan string
	mu         sync.RWMutex
	interval   time.Duration
	done       chan bool
}

// NewHub creates the hub and starts its event loop.
func NewHub(col *collector.Collector, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = time.Second
	}
	h := &Hub{
		collector:  col,
		clients:    make(map[string]*ClientConnection),
		broadcast:  make(chan StreamMessage, 256),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		interval:   interval,
		done:       make(chan bool),
	}
	go h.run()
	return h
}

// run manages the hub's event loop.
func (h *Hub) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[ws] client connected: %s (total: %d)", client.ID, total)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[ws] client disconnected: %s (total: %d)", clientID, total)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client's send channel is full, skip this message
				}
			}
			h.mu.RUnlock()

		case <-ticker.C:
			snap, ok := h.collector.Current()
			if !ok {
				continue
			}
			data, err := json.Marshal(snap)
			if err != nil {
				log.Printf("[ws] error marshaling snapshot: %v", err)
				continue
			}

			msg := StreamMessage{
				Type:      "snapshot",
				Timestamp: time.Now(),
				Data:      json.RawMessage(data),
			}

			select {
			case h.broadcast <- msg:
			default:
				// Channel full, skip this broadcast
			}
		}
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(client *ClientConnection) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(clientID string) {
	h.unregister <- clientID
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg StreamMessage) {
	h.broadcast <- msg
}

// ClientCount reports how many clients are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop terminates the event loop. Registered clients are not closed;
// their pumps exit when the connections drop.
func (h *Hub) Stop() {
	h.done <- true
}
