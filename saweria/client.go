// Package saweria receives donation events from the Saweria realtime socket
// (Socket.IO over Engine.IO v4, websocket transport only).
package saweria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/donation"

	"github.com/gorilla/websocket"
)

// ReconnectDelay is the fixed wait between connection attempts.
const ReconnectDelay = time.Second

var (
	ErrHandshake    = errors.New("engine.io handshake failed")
	ErrServerClosed = errors.New("server closed the socket")
)

// Handler consumes raw donation payloads. *donation.Pipeline implements it.
type Handler interface {
	HandleRaw(ctx context.Context, body []byte, isTest bool) ([]donation.Result, error)
}

type Client struct {
	url       string
	streamKey string
	handler   Handler
	dialer    *websocket.Dialer
	delay     time.Duration

	connected atomic.Bool
}

func NewClient(url, streamKey string, handler Handler) *Client {
	return &Client{
		url:       url,
		streamKey: streamKey,
		handler:   handler,
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		delay:     ReconnectDelay,
	}
}

// Connected reports whether the namespace is joined right now.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Run keeps the connection alive until ctx is cancelled. Every reconnect
// re-sends the join message.
func (c *Client) Run(ctx context.Context) {
	slog.Info("🔗 Menghubungkan ke Saweria...")
	for {
		err := c.session(ctx)
		c.connected.Store(false)
		if ctx.Err() != nil {
			slog.Info("📴 Terputus dari Saweria")
			return
		}
		slog.Warn("⚠️ Terputus dari Saweria Socket, mencoba menghubungkan kembali...", "err", err, "retry_in", c.delay)

		select {
		case <-ctx.Done():
			slog.Info("📴 Terputus dari Saweria")
			return
		case <-time.After(c.delay):
		}
	}
}

type handshake struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

func (h handshake) deadline() time.Duration {
	interval, timeout := h.PingInterval, h.PingTimeout
	if interval <= 0 {
		interval = 25000
	}
	if timeout <= 0 {
		timeout = 20000
	}
	return time.Duration(interval+timeout) * time.Millisecond
}

func (c *Client) session(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// unblock ReadMessage on shutdown
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	_, open, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read open packet: %w", err)
	}
	if len(open) == 0 || open[0] != packetOpen {
		return fmt.Errorf("%w: unexpected packet %q", ErrHandshake, open)
	}
	var hs handshake
	if err := json.Unmarshal(open[1:], &hs); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte{packetMessage, sioConnect}); err != nil {
		return fmt.Errorf("connect namespace: %w", err)
	}

	for {
		conn.SetReadDeadline(time.Now().Add(hs.deadline()))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if len(data) == 0 {
			continue
		}

		switch data[0] {
		case packetPing:
			if err := conn.WriteMessage(websocket.TextMessage, []byte{packetPong}); err != nil {
				return fmt.Errorf("pong: %w", err)
			}
		case packetClose:
			return ErrServerClosed
		case packetMessage:
			if err := c.onSocketIO(ctx, conn, data[1:]); err != nil {
				return err
			}
		}
	}
}

func (c *Client) onSocketIO(ctx context.Context, conn *websocket.Conn, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case sioConnect:
		c.connected.Store(true)
		slog.Info("✅ Terhubung ke Saweria Socket")
		join, err := encodeEvent("join", c.streamKey)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
			return fmt.Errorf("join: %w", err)
		}

	case sioDisconnect:
		return ErrServerClosed

	case sioConnectError:
		return fmt.Errorf("namespace rejected: %s", data[1:])

	case sioEvent:
		name, args, err := decodeEvent(data[1:])
		if err != nil {
			slog.Warn("invalid socket.io event", "err", err)
			return nil
		}
		if name != "donations" || len(args) == 0 {
			slog.Debug("socket event ignored", "event", name)
			return nil
		}
		if _, err := c.handler.HandleRaw(ctx, args[0], false); err != nil {
			slog.Error("❌ Error Saweria Socket: payload donasi tidak valid", "err", err, "body", string(args[0]))
		}
	}
	return nil
}
