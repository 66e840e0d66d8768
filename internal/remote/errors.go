package remote

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (unreachable host, reset connection)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates an unexpected HTTP status
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response
	ErrTypeParse
	// ErrTypeRejected indicates the server refused a session command
	ErrTypeRejected
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeRejected:
		return "Command Rejected"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int // HTTP status, if any

	// Kind is the session error kind reported by the server for rejected commands
	// (e.g. "Rejected", "Invalid Transition")
	Kind string

	Err       error
	Retryable bool
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyNetworkError maps a transport error to an Error.
// url.Error and net.OpError are unwrapped by errors.As and errors.Is.
func classifyNetworkError(message string, err error) *Error {
	if os.IsTimeout(err) {
		return &Error{Type: ErrTypeTimeout, Message: message, Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Type: ErrTypeDNS, Message: message, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &Error{Type: ErrTypeConnectionRefused, Message: message, Err: err, Retryable: true}
	}

	return &Error{Type: ErrTypeNetwork, Message: message, Err: err, Retryable: true}
}

// newHTTPError creates an error for an unexpected status; 5xx is retryable
func newHTTPError(statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError,
	}
}

func newParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// IsRejected reports whether err is a session command refused by the server
func IsRejected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeRejected
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Preview server not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Preview server refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve preview server hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Preview server error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse preview server response"
	default:
		return e.Message
	}
}
