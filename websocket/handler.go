// websocket/handler.go
package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	// overlays run as OBS browser sources with arbitrary origins
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWebSocket upgrades an overlay connection and registers it.
func (m *Manager) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("overlay upgrade failed", "ip", c.ClientIP(), "err", err)
		return
	}

	client := &Client{
		Conn:    conn,
		ID:      uuid.NewString(),
		Send:    make(chan []byte, sendBuffer),
		control: make(chan Message, 4),
		manager: m,
	}
	if !m.join(client) {
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}

// readPump only answers pings; overlays are receive-only.
func (c *Client) readPump() {
	defer func() {
		c.manager.leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("overlay read error", "client_id", c.ID, "err", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Debug("overlay sent invalid json", "client_id", c.ID, "err", err)
			continue
		}
		if msg.Type == "ping" {
			c.queueControl(Message{Type: "pong"})
		} else {
			c.queueControl(Message{Type: "error", Error: "unknown message type"})
		}
	}
}

func (c *Client) queueControl(msg Message) {
	select {
	case c.control <- msg:
	default:
	}
}

// writePump is the only writer on the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, payload); err != nil {
				slog.Warn("overlay write failed", "client_id", c.ID, "err", err)
				return
			}

		case msg := <-c.control:
			payload, _ := json.Marshal(msg)
			if err := c.write(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(kind int, payload []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(kind, payload)
}
