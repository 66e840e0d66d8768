// Package remote is a client for a running autodm preview server.
//
// Client wraps the HTTP API with retries and exponential backoff:
//
//	c := remote.NewClient("192.168.1.20", 8480)
//	posts, err := c.Posts(ctx)
//	update, err := c.Apply(ctx, session.Command{Type: session.CmdSelectPost, PostID: "2"})
//
// Reads are retried on network errors and 5xx responses. Commands are only
// retried when the request could not have reached the server, because a
// retried submit_comment would add the comment twice.
//
// Watch and Connect use the WebSocket feed to follow the preview live and to
// send commands on the same connection.
//
// All failures are *Error values; IsRejected tells a refused session command
// apart from a transport problem, and ShortMessage gives a one-line description.
package remote
