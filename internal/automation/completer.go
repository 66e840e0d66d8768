package automation

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Completer receives the assembled automation once the user finishes setup.
// What happens next (storing it, sending it somewhere) is up to the implementation.
type Completer interface {
	Complete(ctx context.Context, cfg *Config) error
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, cfg *Config) error

// Complete implements Completer
func (f CompleterFunc) Complete(ctx context.Context, cfg *Config) error {
	return f(ctx, cfg)
}

// WriterCompleter encodes every completed config to a writer.
type WriterCompleter struct {
	mu     sync.Mutex
	out    io.Writer
	format string
}

// NewWriterCompleter creates a completer writing in the given format (see Encode).
func NewWriterCompleter(w io.Writer, format string) *WriterCompleter {
	return &WriterCompleter{out: w, format: format}
}

// Complete implements Completer
func (c *WriterCompleter) Complete(ctx context.Context, cfg *Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := cfg.Encode(c.out, c.format); err != nil {
		return fmt.Errorf("failed to write automation config: %w", err)
	}
	return nil
}

// NopCompleter accepts every config and does nothing.
var NopCompleter Completer = CompleterFunc(func(context.Context, *Config) error { return nil })
