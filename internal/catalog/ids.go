package catalog

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new comments and messages.
// Implementations must never return the same value twice for one store.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID implements IDGenerator
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator issues increasing decimal identifiers with an optional prefix.
// It is safe to share between stores; values stay unique across all of them.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewSequenceGenerator returns a generator whose first id is start.
func NewSequenceGenerator(prefix string, start uint64) *SequenceGenerator {
	g := &SequenceGenerator{Prefix: prefix}
	g.next.Store(start)
	return g
}

// NewID implements IDGenerator
func (g *SequenceGenerator) NewID() string {
	n := g.next.Add(1) - 1
	return g.Prefix + strconv.FormatUint(n, 10)
}
