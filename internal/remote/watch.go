package remote

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/server"
	"github.com/muurk/autodm/internal/session"
)

// Feed is an open connection to the live preview feed.
type Feed struct {
	conn *websocket.Conn
}

// WebSocketURL returns the feed URL for the client's base URL
func (c *Client) WebSocketURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Connect opens the live preview feed. The server sends the current preview first.
func (c *Client) Connect(ctx context.Context) (*Feed, error) {
	wsURL, err := c.WebSocketURL()
	if err != nil {
		return nil, newParseError("invalid server URL", err)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, newHTTPError(resp.StatusCode, "WebSocket handshake failed")
		}
		return nil, classifyNetworkError("WebSocket dial failed", err)
	}
	logging.LogConnection(wsURL, "websocket_connected")
	return &Feed{conn: conn}, nil
}

// Next blocks until the server pushes an update
func (f *Feed) Next() (server.Update, error) {
	var u server.Update
	if err := f.conn.ReadJSON(&u); err != nil {
		return u, err
	}
	return u, nil
}

// Send queues a session command on the feed. The outcome arrives through Next:
// a preview broadcast on success, an error update for this connection otherwise.
func (f *Feed) Send(cmd session.Command) error {
	return f.conn.WriteJSON(cmd)
}

// Close closes the connection with a normal closure frame
func (f *Feed) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = f.conn.WriteMessage(websocket.CloseMessage, msg)
	return f.conn.Close()
}

// Watch calls fn for every update until ctx is done, the server closes the
// feed or fn returns an error.
func (c *Client) Watch(ctx context.Context, fn func(server.Update) error) error {
	feed, err := c.Connect(ctx)
	if err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { _ = feed.Close() })
	defer stop()
	defer feed.Close()

	for {
		u, err := feed.Next()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				logging.Info("Preview feed closed", zap.Int("code", closeErr.Code))
				return nil
			}
			return classifyNetworkError("preview feed interrupted", err)
		}

		if err := fn(u); err != nil {
			return err
		}
	}
}
