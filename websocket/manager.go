// websocket/manager.go
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected overlay (a browser source in the streaming software)
type Client struct {
	Conn *websocket.Conn
	ID   string
	Send chan []byte

	control chan Message
	manager *Manager
}

// Message structure for WebSocket communication
type Message struct {
	Type  string      `json:"type"` // "donation", "goal_reached", "ping", "pong"
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Manager fans messages out to every connected overlay
type Manager struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// join hands c to Run. It fails once the manager has stopped.
func (m *Manager) join(c *Client) bool {
	select {
	case m.register <- c:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) leave(c *Client) {
	select {
	case m.unregister <- c:
	case <-m.done:
	}
}

// Run owns the client set until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			for client := range m.clients {
				close(client.Send)
				delete(m.clients, client)
			}
			m.mu.Unlock()
			return

		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			slog.Info("✅ Overlay registered", "client_id", client.ID, "total", len(m.clients))
			m.mu.Unlock()

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.Send)
				slog.Info("❌ Overlay unregistered", "client_id", client.ID, "total", len(m.clients))
			}
			m.mu.Unlock()

		case message := <-m.broadcast:
			m.mu.Lock()
			for client := range m.clients {
				select {
				case client.Send <- message:
				default:
					slog.Warn("⚠️ Overlay buffer full, closing", "client_id", client.ID)
					close(client.Send)
					delete(m.clients, client)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Count is the number of connected overlays.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// Publish queues a message for every overlay. It drops the message when the
// broadcast buffer is full rather than block the caller.
func (m *Manager) Publish(msgType string, data interface{}) error {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		return err
	}
	select {
	case m.broadcast <- payload:
	default:
		slog.Warn("overlay broadcast buffer full, message dropped", "type", msgType)
	}
	return nil
}
