package flashmap

import (
	"github.com/coredb-labs/flashmap/internal/core"
	"github.com/coredb-labs/flashmap/internal/dict"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

// ValueStrategy selects how Insert and Replace duplicate a value across
// the map's two slots. See Clone and Alias.
type ValueStrategy = valuestore.Strategy

const (
	// Clone gives each slot its own independent copy of every value.
	Clone = valuestore.Clone
	// Alias shares one copy-on-write value body between both slots.
	Alias = valuestore.Alias
)

// Cloner produces an independent copy of a value, used by the Clone
// strategy. The default is a plain assignment.
type Cloner[V any] = valuestore.Duplicator[V]

// Hasher computes a digest for a key. The default uses
// hash/maphash.Comparable with a random per-map seed.
type Hasher[K comparable] = dict.Hasher[K]

// Builder configures and constructs a flashmap.
type Builder[K comparable, V any] struct {
	hasher   Hasher[K]
	capacity int
	strategy ValueStrategy
	cloner   Cloner[V]
	hooks    core.Hooks
}

// NewBuilder returns a Builder with the default configuration: an
// internal open-addressed table with a randomly seeded hasher, no
// pre-sized capacity, and the Clone value strategy.
func NewBuilder[K comparable, V any]() *Builder[K, V] {
	return &Builder[K, V]{strategy: Clone}
}

// WithHasher installs a custom key hasher in place of the default
// maphash.Comparable-backed one.
func (b *Builder[K, V]) WithHasher(h Hasher[K]) *Builder[K, V] {
	b.hasher = h
	return b
}

// WithCapacity pre-sizes both map slots to hold at least n entries before
// their first resize.
func (b *Builder[K, V]) WithCapacity(n int) *Builder[K, V] {
	b.capacity = n
	return b
}

// WithValueStrategy selects Clone or Alias.
func (b *Builder[K, V]) WithValueStrategy(s ValueStrategy) *Builder[K, V] {
	b.strategy = s
	return b
}

// WithCloner installs a custom Cloner for the Clone strategy. Ignored
// under Alias.
func (b *Builder[K, V]) WithCloner(c Cloner[V]) *Builder[K, V] {
	b.cloner = c
	return b
}

// WithHooks installs an observer for the map's cold-path events
// (publish, park/unpark); guard open and close fire no hooks. Intended
// for internal/metrics; exported so other instrumentation can plug into
// the same seam.
func (b *Builder[K, V]) WithHooks(h core.Hooks) *Builder[K, V] {
	b.hooks = h
	return b
}

// Build constructs the map and returns its two handles. There is exactly
// one WriteHandle; ReadHandle.Clone produces as many read handles as
// needed.
func (b *Builder[K, V]) Build() (*WriteHandle[K, V], *ReadHandle[K, V]) {
	first := dict.NewTable[K, valuestore.Cell[V]](b.capacity, b.hasher)
	second := first.Clone()

	c := core.NewCore[K, V](first, second, b.hooks)
	c.AcquireWriter()

	store := valuestore.New[V](b.strategy, b.cloner)
	wh := newWriteHandle(c, store)
	rh := newReadHandle(c)
	return wh, rh
}

// New builds a map with the default configuration. Equivalent to
// NewBuilder[K, V]().Build().
func New[K comparable, V any]() (*WriteHandle[K, V], *ReadHandle[K, V]) {
	return NewBuilder[K, V]().Build()
}
