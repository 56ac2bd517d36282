package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
)

// Event is one admin feed entry, e.g. {"type":"product.updated","payload":{"id":3}}
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Hub fans events out to every connected admin client
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu sync.RWMutex

	// stopMu orders late registrations against shutdown
	stopMu  sync.RWMutex
	stopped bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Admin feed client registered", map[string]interface{}{
				"user_id": client.UserID,
				"clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Admin feed client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// slow reader; its pumps exit once Send is closed
					delete(h.clients, client)
					close(client.Send)
					logger.Warn("Admin feed client too slow, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	h.stopMu.Lock()
	h.stopped = true
	h.stopMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.Send)
	}
	// registrations queued but never picked up
	for {
		select {
		case client := <-h.register:
			close(client.Send)
		default:
			return
		}
	}
}

// Publish queues an event for every client. Drops it when the hub is saturated.
func (h *Hub) Publish(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, At: time.Now().UTC()})
	if err != nil {
		logger.Error("Failed to marshal admin event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Admin feed broadcast channel full, event dropped", map[string]interface{}{
			"type": eventType,
		})
	}
}

// Register adds a client. Once the hub has stopped the client's Send is closed instead.
func (h *Hub) Register(client *Client) {
	h.stopMu.RLock()
	defer h.stopMu.RUnlock()
	if h.stopped {
		close(client.Send)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister is a no-op after the hub has stopped; shutdown already closed every client.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount reports how many admin screens are connected
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
