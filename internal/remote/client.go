package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/server"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second
)

// Client talks to a running preview server.
type Client struct {
	// BaseURL is the server root (e.g., "http://192.168.1.20:8480")
	BaseURL string

	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Rejected commands are never retried.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay caps the delay when UseExponentialBackoff is set
	MaxRetryDelay time.Duration

	UseExponentialBackoff bool
}

// Health is the reply of the liveness endpoint
type Health struct {
	Status  string       `json:"status"`
	Version version.Info `json:"version"`
}

// NewClient creates a client for the server at host:port
func NewClient(host string, port int) *Client {
	return NewClientWithURL("http://" + net.JoinHostPort(host, strconv.Itoa(port)))
}

// NewClientWithURL creates a client with a full base URL
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Ping checks that the server is up and returns its version
func (c *Client) Ping(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/healthz", &h)
	}); err != nil {
		return nil, err
	}
	return &h, nil
}

// Posts lists the server's catalog
func (c *Client) Posts(ctx context.Context) ([]catalog.Post, error) {
	var body struct {
		Posts []catalog.Post `json:"posts"`
	}
	if err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/api/posts", &body)
	}); err != nil {
		return nil, err
	}
	return body.Posts, nil
}

// Preview returns the current preview of the server's session
func (c *Client) Preview(ctx context.Context) (*server.Update, error) {
	var u server.Update
	if err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/api/preview", &u)
	}); err != nil {
		return nil, err
	}
	return &u, nil
}

// Apply sends one session command. A command the session refuses returns an
// Error of type ErrTypeRejected carrying the server's error kind.
func (c *Client) Apply(ctx context.Context, cmd session.Command) (*server.Update, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}

	var u server.Update
	err = c.withRetry(ctx, func() error {
		err := c.postCommand(ctx, payload, &u)
		// Commands are not idempotent: only retry when the request never got through
		var e *Error
		if errors.As(err, &e) && (e.Type == ErrTypeNetwork || e.Type == ErrTypeTimeout) {
			e.Retryable = false
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("Remote command applied",
		zap.String("command", cmd.String()),
		zap.String("update", u.Type),
	)
	return &u, nil
}

// withRetry runs attempt until it succeeds, fails with a non-retryable error
// or runs out of retries. Delays double when UseExponentialBackoff is set.
func (c *Client) withRetry(ctx context.Context, attempt func() error) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for i := 0; i <= c.MaxRetries; i++ {
		if i > 0 {
			logging.Debug("Retrying request",
				zap.Int("attempt", i+1),
				zap.Duration("delay", currentDelay),
				zap.Error(lastErr),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay = min(currentDelay*2, c.MaxRetryDelay)
			}
		}

		err := attempt()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyNetworkError("GET "+path+" failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return newHTTPError(resp.StatusCode, fmt.Sprintf("GET %s returned %d", path, resp.StatusCode))
	}
	return decode(resp.Body, v)
}

func (c *Client) postCommand(ctx context.Context, payload []byte, u *server.Update) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/commands", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyNetworkError("POST /api/commands failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return decode(resp.Body, u)
	}

	// Refused commands come back as an error update. 503 means the hub is
	// not running yet and is worth retrying.
	var body server.Update
	if err := decode(resp.Body, &body); err == nil && body.Error != nil && resp.StatusCode != http.StatusServiceUnavailable {
		return &Error{
			Type:       ErrTypeRejected,
			Message:    body.Error.Message,
			StatusCode: resp.StatusCode,
			Kind:       body.Error.Kind,
		}
	}
	return newHTTPError(resp.StatusCode, fmt.Sprintf("POST /api/commands returned %d", resp.StatusCode))
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return newParseError("invalid JSON response", err)
	}
	return nil
}
