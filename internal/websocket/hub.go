package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
)

// Event types pushed to back-office clients
const (
	EventSaleCreated = "sale.created"
	EventSaleUpdated = "sale.updated"
	EventSaleDeleted = "sale.deleted"
	EventStockLow    = "stock.low"
)

// Event is the JSON frame sent to every connected admin
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

// Client one admin websocket session
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans board events out to every registered client. An admin may hold
// several sessions at once.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// NewClient builds a client bound to this hub
func (h *Hub) NewClient(conn *Conn, userID uint) *Client {
	return &Client{
		Hub:    h,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, 64),
	}
}

// Run processes registrations and broadcasts until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			remaining := len(h.clients)
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id":            client.UserID,
				"remaining_sessions": remaining,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop the session.
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.drainPending()
			return
		}
	}
}

// Stop ends Run and closes every session
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues an event for every client. Events are dropped when the
// queue is full; board updates are advisory and the REST API stays the
// source of truth.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, SentAt: time.Now()})
	if err != nil {
		logger.Error("Failed to marshal websocket event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"type": eventType,
		})
	}
}

// drainPending releases registrations queued when Stop was called.
func (h *Hub) drainPending() {
	for {
		select {
		case client := <-h.register:
			close(client.Send)
		case <-h.unregister:
		default:
			return
		}
	}
}

// Register adds a session. After Stop the session is closed right away.
func (h *Hub) Register(client *Client) {
	select {
	case <-h.done:
		close(client.Send)
	default:
		select {
		case h.register <- client:
		case <-h.done:
			close(client.Send)
		}
	}
}

// Unregister removes a session. It never blocks once the hub is stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case <-h.done:
	default:
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}
}

// ClientCount number of open sessions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
