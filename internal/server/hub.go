package server

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/preview"
	"github.com/muurk/autodm/internal/session"
)

// Update types sent to clients
const (
	UpdatePreview   = "preview"
	UpdateCompleted = "completed"
	UpdateError     = "error"
)

// ErrHubStopped is returned for requests made after the hub has shut down
var ErrHubStopped = errors.New("preview hub stopped")

// Update is the JSON message pushed to WebSocket clients and returned by the API.
type Update struct {
	Type    string              `json:"type"`
	Preview *preview.Descriptor `json:"preview,omitempty"`
	Result  *automation.Config  `json:"result,omitempty"`
	Error   *ErrorBody          `json:"error,omitempty"`
}

// ErrorBody describes a rejected command
type ErrorBody struct {
	Kind    string `json:"kind"`
	Command string `json:"command,omitempty"`
	Message string `json:"message"`
}

type request struct {
	cmd    *session.Command // nil asks for a snapshot
	origin *client          // WebSocket client that sent cmd, if any
	notice *Update          // delivered to origin only
	reply  chan reply
}

type reply struct {
	update Update
	err    error
}

// Hub is the single owner of the session. Every command from every client is
// applied on the hub goroutine, so the session never sees concurrent access.
type Hub struct {
	sess *session.Session

	requests   chan request
	register   chan *client
	unregister chan *client
	clients    map[*client]bool

	done chan struct{}
}

// NewHub creates a hub around sess. Call Run to start it.
func NewHub(sess *session.Session) *Hub {
	return &Hub{
		sess:       sess,
		requests:   make(chan request),
		register:   make(chan *client),
		unregister: make(chan *client),
		clients:    make(map[*client]bool),
		done:       make(chan struct{}),
	}
}

// Run processes requests until ctx is cancelled. It closes every client on exit.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			logging.Debug("Preview hub stopped")
			return

		case c := <-h.register:
			h.clients[c] = true
			logging.LogConnection(c.remoteAddr, "client_registered")
			c.push(h.previewUpdate())

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				logging.LogConnection(c.remoteAddr, "client_unregistered")
			}

		case req := <-h.requests:
			req.reply <- h.handle(ctx, req)
		}
	}
}

func (h *Hub) handle(ctx context.Context, req request) reply {
	if req.notice != nil {
		h.sendTo(req.origin, *req.notice)
		return reply{}
	}
	if req.cmd == nil {
		return reply{update: h.previewUpdate()}
	}

	if err := h.sess.Apply(ctx, *req.cmd); err != nil {
		update := errorUpdate(req.cmd.Type, err)
		h.sendTo(req.origin, update)
		return reply{update: update, err: err}
	}

	update := h.previewUpdate()
	if req.cmd.Type == session.CmdComplete {
		update.Type = UpdateCompleted
		update.Result = h.sess.Result()
	}
	h.broadcast(update)
	return reply{update: update}
}

func (h *Hub) previewUpdate() Update {
	d := h.sess.Descriptor()
	return Update{Type: UpdatePreview, Preview: &d}
}

func (h *Hub) broadcast(u Update) {
	for c := range h.clients {
		h.sendTo(c, u)
	}
}

// sendTo queues u for c, dropping c if it cannot keep up.
// Only the hub goroutine writes to or closes client channels.
func (h *Hub) sendTo(c *client, u Update) {
	if c == nil || !h.clients[c] {
		return
	}
	if !c.push(u) {
		logging.Warn("Dropping slow client", zap.String("remote_addr", c.remoteAddr))
		delete(h.clients, c)
		close(c.send)
	}
}

// Apply runs cmd on the hub goroutine. On success every connected client receives
// the new preview. The returned Update is also filled in for rejected commands.
func (h *Hub) Apply(ctx context.Context, cmd session.Command) (Update, error) {
	return h.do(ctx, request{cmd: &cmd, reply: make(chan reply, 1)})
}

// applyFrom is Apply for a WebSocket client; a rejection is sent back to c alone.
func (h *Hub) applyFrom(ctx context.Context, c *client, cmd session.Command) (Update, error) {
	return h.do(ctx, request{cmd: &cmd, origin: c, reply: make(chan reply, 1)})
}

// notify delivers u to c only
func (h *Hub) notify(ctx context.Context, c *client, u Update) error {
	_, err := h.do(ctx, request{origin: c, notice: &u, reply: make(chan reply, 1)})
	return err
}

// Snapshot returns the current preview without changing anything.
func (h *Hub) Snapshot(ctx context.Context) (Update, error) {
	return h.do(ctx, request{reply: make(chan reply, 1)})
}

func (h *Hub) do(ctx context.Context, req request) (Update, error) {
	select {
	case h.requests <- req:
	case <-h.done:
		return Update{}, ErrHubStopped
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.update, r.err
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
}

// attach registers c with the hub; false if the hub is gone
func (h *Hub) attach(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func errorUpdate(cmd session.CommandType, err error) Update {
	body := &ErrorBody{Command: string(cmd), Message: err.Error()}

	var cmdErr *session.CommandError
	if errors.As(err, &cmdErr) {
		body.Kind = cmdErr.Kind.String()
	} else {
		body.Kind = "Internal Error"
	}
	return Update{Type: UpdateError, Error: body}
}
