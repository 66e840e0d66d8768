// Package server exposes a configuration session over HTTP and WebSocket so the
// live preview can be driven and watched from other processes or a browser.
//
// # Endpoints
//
//	GET  /api/posts     the post catalog
//	GET  /api/preview   the current preview descriptor
//	POST /api/commands  {"type": "select_post", "post_id": "2"}
//	GET  /ws            pushes {"type": "preview", "preview": {...}} after every change
//	GET  /healthz       liveness and build version
//
// WebSocket clients may send the same command JSON as POST /api/commands. A rejected
// command is answered with an "error" update to the sender only; an applied command is
// broadcast to everyone.
//
// # Concurrency
//
// A session is not safe for concurrent use, so the server never touches it directly.
// A single Hub goroutine owns the session and the set of connected clients; HTTP
// handlers and WebSocket readers send it requests over channels.
//
// # Usage Example
//
//	srv := server.New(server.Config{Host: "127.0.0.1", Port: 8480, Advertise: true}, sess)
//
//	// Start blocks until SIGINT/SIGTERM or ctx cancellation
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// # Graceful Shutdown
//
//  1. Withdraw the mDNS advertisement
//  2. Stop accepting connections and finish in-flight HTTP requests
//  3. Stop the hub, which closes every WebSocket client
//  4. Wait for connection goroutines, bounded by ShutdownTimeout
package server
