package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
)

// AlertEvent is the envelope pushed to connected dashboard clients.
type AlertEvent struct {
	Type  string            `json:"type"` // stock_alert
	Alert *model.StockAlert `json:"alert"`
	At    time.Time         `json:"at"`
}

// Hub tracks connected dashboard sessions and fans stock alerts out to
// every one of them. A user may have several sessions open at once.
type Hub struct {
	// UserID -> open sessions for that user
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes registrations and broadcasts. Call once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Alert stream client connected", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": h.SessionCount(client.UserID),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, s := range sessions {
					if s != client {
						remaining = append(remaining, s)
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = remaining
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Alert stream client disconnected", map[string]interface{}{
				"user_id": client.UserID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, sessions := range h.clients {
				for _, client := range sessions {
					select {
					case client.Send <- message:
					default:
						// Send buffer full. Drop the session asynchronously.
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastAlert pushes a stock alert to every connected session. Satisfies
// service.AlertBroadcaster. Delivery is best-effort: when the broadcast
// buffer is full the event is dropped, and the persisted alert remains the
// source of truth.
func (h *Hub) BroadcastAlert(alert *model.StockAlert) {
	event := AlertEvent{
		Type:  "stock_alert",
		Alert: alert,
		At:    time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal alert event", err, map[string]interface{}{
			"alert_id": alert.ID,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Alert broadcast channel full, event dropped", map[string]interface{}{
			"alert_id": alert.ID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SessionCount reports how many sessions a user has open.
func (h *Hub) SessionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// ConnectedUsers returns the IDs of users with at least one open session.
func (h *Hub) ConnectedUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	return users
}
