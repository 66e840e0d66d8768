package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum command size allowed from peer
	maxMessageSize = 8192

	// Updates buffered per client before it is considered too slow
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The preview is served to local tools and browsers on other origins
	CheckOrigin: func(*http.Request) bool { return true },
}

// client is one WebSocket connection to the live preview
type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan Update
	remoteAddr string
}

// push queues u without blocking; false when the buffer is full.
// Only called from the hub goroutine.
func (c *client) push(u Update) bool {
	select {
	case c.send <- u:
		return true
	default:
		return false
	}
}

// handleWebSocket upgrades the request and streams preview updates.
// Clients may send session commands as JSON text frames.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	logging.LogConnection(r.RemoteAddr, "websocket_upgraded")

	c := &client{
		hub:        s.hub,
		conn:       conn,
		send:       make(chan Update, sendBuffer),
		remoteAddr: r.RemoteAddr,
	}
	if !s.hub.attach(c) {
		_ = conn.Close()
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		c.writePump()
	}()
	c.readPump(s.baseCtx)
}

// readPump decodes commands until the connection closes
func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.detach(c)
		_ = c.conn.Close()
		logging.LogConnection(c.remoteAddr, "websocket_closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("WebSocket read error",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", msgType, data)

		var cmd session.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			notice := Update{Type: UpdateError, Error: &ErrorBody{Kind: "Bad Request", Message: "invalid command JSON: " + err.Error()}}
			if c.hub.notify(ctx, c, notice) != nil {
				return
			}
			continue
		}

		// The hub answers through c.send: a broadcast on success, an error update otherwise
		if _, err := c.hub.applyFrom(ctx, c, cmd); err != nil {
			var cmdErr *session.CommandError
			if !errors.As(err, &cmdErr) {
				return
			}
		}
	}
}

// writePump sends queued updates and keeps the connection alive with pings
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			data, err := json.Marshal(update)
			if err != nil {
				logging.Error("Failed to encode update", zap.Error(err))
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
