// Package id generates identifiers for bridge invocations and IPC connections.
//
// Invocation and request IDs are prefixed ULIDs so they sort by creation
// time in logs.
// Connection IDs are prefixed UUIDs; they only need to be unique.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// InvocationID identifies a single command invocation
type InvocationID string

// ConnectionID identifies a WebSocket IPC connection
type ConnectionID string

// RequestID identifies an HTTP request
type RequestID string

const (
	InvocationPrefix = "inv"
	ConnectionPrefix = "conn"
	RequestPrefix    = "req"
)

// Generator produces monotonic ULIDs
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// IDs generated within the same millisecond stay strictly increasing.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: ulid.Monotonic(entropy, 0)}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a "prefix_ULID" string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewInvocationID generates a new invocation ID
func NewInvocationID() InvocationID {
	return InvocationID(Default().GenerateWithPrefix(InvocationPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewConnectionID generates a new connection ID
func NewConnectionID() ConnectionID {
	return ConnectionID(ConnectionPrefix + "_" + uuid.NewString())
}

func (i InvocationID) String() string { return string(i) }
func (c ConnectionID) String() string { return string(c) }
func (r RequestID) String() string { return string(r) }

// Timestamp returns the creation time encoded in an invocation ID
func (i InvocationID) Timestamp() (time.Time, error) {
	raw := strings.TrimPrefix(string(i), InvocationPrefix+"_")
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid invocation id %q: %w", i, err)
	}
	return ulid.Time(parsed.Time()), nil
}
