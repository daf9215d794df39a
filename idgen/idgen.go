package idgen

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces request identifiers.
type Generator interface {
	Generate() (string, error)
	Type() string
}

// UUIDGenerator generates UUID v4 values
type UUIDGenerator struct{}

func (g UUIDGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (g UUIDGenerator) Type() string {
	return "uuid"
}

// ULIDGenerator generates lexically sortable ULID values. Monotonic entropy
// is not safe for concurrent use, so reads are serialized.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

func (g *ULIDGenerator) Type() string {
	return "ulid"
}

// Registry maps generator names to generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry holding the uuid and ulid generators.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.Register("uuid", UUIDGenerator{})
	r.Register("ulid", NewULIDGenerator())
	return r
}

func (r *Registry) Register(name string, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = g
}

func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator type: %s", name)
	}
	return g, nil
}

// Names lists registered generators in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds g to the default registry.
func Register(name string, g Generator) {
	defaultRegistry.Register(name, g)
}

// Get looks name up in the default registry.
func Get(name string) (Generator, error) {
	return defaultRegistry.Get(name)
}

// Names lists the default registry.
func Names() []string {
	return defaultRegistry.Names()
}
