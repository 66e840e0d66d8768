package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/version"
)

// maxBodySize caps command request bodies
const maxBodySize = 64 << 10

// Handler returns the HTTP API:
//
//	GET  /api/posts     catalog in display order
//	GET  /api/preview   current preview descriptor
//	POST /api/commands  apply one session command
//	GET  /ws            live preview feed, accepts commands
//	GET  /healthz       liveness and version
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", s.handlePosts)
	mux.HandleFunc("GET /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/commands", s.handleCommand)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.trackConn(s.handleWebSocket))
	return logRequests(mux)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"posts": s.posts})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	update, err := s.hub.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd session.Command
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", err)
		return
	}

	update, err := s.hub.Apply(r.Context(), cmd)
	if err != nil {
		var cmdErr *session.CommandError
		if !errors.As(err, &cmdErr) {
			writeError(w, http.StatusServiceUnavailable, "Unavailable", err)
			return
		}
		writeJSON(w, statusFor(cmdErr.Kind), update)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Get(),
	})
}

// trackConn keeps Shutdown waiting for long-lived handlers
func (s *Server) trackConn(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.wg.Add(1)
		defer s.wg.Done()
		h(w, r)
	}
}

// statusFor maps a command failure to an HTTP status
func statusFor(kind session.ErrorKind) int {
	switch kind {
	case session.KindRejection:
		return http.StatusUnprocessableEntity
	case session.KindInvalidTransition:
		return http.StatusConflict
	case session.KindUnknownPost:
		return http.StatusNotFound
	case session.KindUnknownCommand:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, Update{Type: UpdateError, Error: &ErrorBody{Kind: kind, Message: err.Error()}})
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController and the WebSocket upgrader reach the hijacker
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			// Hijacked connections are logged by the WebSocket handler
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.Debug("HTTP request",
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
