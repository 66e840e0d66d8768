package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/preview"
	"github.com/muurk/autodm/internal/session"
)

func newTestServer(t *testing.T, opts ...session.Option) (*Server, *httptest.Server) {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultPosts(),
		catalog.WithIDGenerator(catalog.NewSequenceGenerator("id-", 1)))
	require.NoError(t, err)

	srv := New(Config{}, session.New(store, opts...))
	ctx, cancel := context.WithCancel(context.Background())
	go srv.hub.Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return srv, ts
}

func postCommand(t *testing.T, ts *httptest.Server, cmd session.Command) (int, Update) {
	t.Helper()
	body, err := json.Marshal(cmd)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/commands", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var u Update
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))
	return resp.StatusCode, u
}

func TestPosts(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/posts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Posts []catalog.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Posts, 4)
	assert.Equal(t, "techguru", body.Posts[0].Username)
}

func TestPreviewInitial(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/preview")
	require.NoError(t, err)
	defer resp.Body.Close()

	var u Update
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))
	assert.Equal(t, UpdatePreview, u.Type)
	require.NotNil(t, u.Preview)
	assert.Equal(t, preview.ScreenSelection, u.Preview.Screen)
}

func TestCommandsFullFlow(t *testing.T) {
	var completed *automation.Config
	_, ts := newTestServer(t, session.WithCompleter(automation.CompleterFunc(func(_ context.Context, cfg *automation.Config) error {
		completed = cfg
		return nil
	})))

	status, u := postCommand(t, ts, session.Command{Type: session.CmdSelectPost, PostID: "3"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, preview.ScreenComments, u.Preview.Screen)

	status, u = postCommand(t, ts, session.Command{Type: session.CmdSubmitComment, Text: "recipe"})
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, u.Preview.Comments, 3)

	status, u = postCommand(t, ts, session.Command{Type: session.CmdAdvance})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, preview.ScreenMessaging, u.Preview.Screen)

	status, u = postCommand(t, ts, session.Command{Type: session.CmdComplete})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, UpdateCompleted, u.Type)
	require.NotNil(t, u.Result)
	assert.Equal(t, []string{"recipe"}, u.Result.Keywords)
	require.NotNil(t, completed)
	assert.Equal(t, "3", completed.PostID)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  []session.Command
		cmd    session.Command
		status int
		kind   string
	}{
		{
			name:   "advance before selection",
			cmd:    session.Command{Type: session.CmdAdvance},
			status: http.StatusConflict,
			kind:   "Invalid Transition",
		},
		{
			name:   "unknown post",
			cmd:    session.Command{Type: session.CmdSelectPost, PostID: "99"},
			status: http.StatusNotFound,
			kind:   "Unknown Post",
		},
		{
			name:   "blank comment",
			setup:  []session.Command{{Type: session.CmdSelectPost, PostID: "1"}},
			cmd:    session.Command{Type: session.CmdSubmitComment},
			status: http.StatusUnprocessableEntity,
			kind:   "Rejected",
		},
		{
			name:   "unknown command",
			cmd:    session.Command{Type: "jump"},
			status: http.StatusBadRequest,
			kind:   "Unknown Command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)
			for _, cmd := range tt.setup {
				status, _ := postCommand(t, ts, cmd)
				require.Equal(t, http.StatusOK, status)
			}

			status, u := postCommand(t, ts, tt.cmd)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, UpdateError, u.Type)
			require.NotNil(t, u.Error)
			assert.Equal(t, tt.kind, u.Error.Kind)
		})
	}
}

func TestCommandMalformedJSON(t *testing.T) {
	_, ts := newTestServer(t)

	for _, body := range []string{"{", `{"type":"advance","extra":1}`} {
		resp, err := http.Post(ts.URL+"/api/commands", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %s", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/commands")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUpdate(t *testing.T, conn *websocket.Conn) Update {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var u Update
	require.NoError(t, conn.ReadJSON(&u))
	return u
}

func TestWebSocketFeed(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	initial := readUpdate(t, conn)
	assert.Equal(t, UpdatePreview, initial.Type)
	assert.Equal(t, preview.ScreenSelection, initial.Preview.Screen)

	// Commands over HTTP are broadcast to WebSocket clients
	status, _ := postCommand(t, ts, session.Command{Type: session.CmdSelectPost, PostID: "2"})
	require.Equal(t, http.StatusOK, status)

	u := readUpdate(t, conn)
	assert.Equal(t, preview.ScreenComments, u.Preview.Screen)
	assert.Equal(t, "2", u.Preview.Post.ID)
}

func TestWebSocketCommands(t *testing.T) {
	_, ts := newTestServer(t)
	sender := dial(t, ts)
	watcher := dial(t, ts)
	readUpdate(t, sender)
	readUpdate(t, watcher)

	// Rejections go to the sender only
	require.NoError(t, sender.WriteJSON(session.Command{Type: session.CmdAdvance}))
	u := readUpdate(t, sender)
	assert.Equal(t, UpdateError, u.Type)
	assert.Equal(t, "Invalid Transition", u.Error.Kind)

	require.NoError(t, sender.WriteJSON(session.Command{Type: session.CmdSelectPost, PostID: "4"}))
	for _, conn := range []*websocket.Conn{sender, watcher} {
		u := readUpdate(t, conn)
		assert.Equal(t, UpdatePreview, u.Type)
		assert.Equal(t, "4", u.Preview.SelectedPostID)
	}
}

func TestWebSocketBadJSON(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readUpdate(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	u := readUpdate(t, conn)
	assert.Equal(t, UpdateError, u.Type)
	assert.Equal(t, "Bad Request", u.Error.Kind)
}

func TestServeAndShutdown(t *testing.T) {
	store := catalog.NewDefaultStore()
	srv := New(Config{ShutdownTimeout: 2 * time.Second}, session.New(store))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()
	readUpdate(t, conn)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	// The hub closes clients on shutdown
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)

	_, err = srv.hub.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrHubStopped)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, statusFor(session.KindCompletion))
	assert.Equal(t, http.StatusConflict, statusFor(session.KindInvalidTransition))
}
