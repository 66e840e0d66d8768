// Package logging provides structured logging for autodm.
//
// This package wraps a package-level zap logger with convenience functions.
// Logging is silent unless a level is passed to Initialize or AUTODM_LOG_LEVEL
// is set, so CLI output and the terminal UI stay clean by default.
//
// # Log Levels
//
//   - Debug: every session command, WebSocket frames
//   - Info: stage changes, connections, server lifecycle
//   - Warn: dropped clients, discovery failures
//   - Error: startup failures
//
// # Specialized Logging
//
//	logging.LogCommand("submit_comment", "comment-config", err)
//	logging.LogStageChange("comment-config", "message-config")
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "sent", websocket.TextMessage, payload)
//
// # Configuration
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Set AUTODM_LOG_FILE to write to a file instead of stdout.
package logging
