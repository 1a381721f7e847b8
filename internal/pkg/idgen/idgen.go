// Package idgen provides ID generation for load runs and viewer sessions
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/pokedex-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random UUIDs with an optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator; "load" yields "load_<uuid>"
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// ULIDGenerator generates lexicographically sortable IDs. IDs minted within
// the same millisecond stay strictly increasing.
type ULIDGenerator struct {
	clock clock.Clock

	mu      sync.Mutex
	entropy io.Reader
}

// NewULID creates a ULID generator timestamped by c
func NewULID(c clock.Clock) *ULIDGenerator {
	if c == nil {
		c = clock.New()
	}
	return &ULIDGenerator{
		clock:   c,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate creates a new ULID string
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.clock.Now()), g.entropy)
	if err != nil {
		// only possible when the monotonic entropy overflows within one ms
		panic(fmt.Sprintf("ulid generation failed: %v", err))
	}
	return id.String()
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
