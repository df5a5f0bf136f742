package core

import (
	"sync/atomic"

	"github.com/coredb-labs/flashmap/internal/dict"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

// Slot is the type every map index resolves to: a dictionary keyed on K
// whose values are storage cells owned by internal/valuestore rather than
// bare V, so both Clone and Alias strategies can share one dict.Dictionary
// implementation.
type Slot[K comparable, V any] = dict.Dictionary[K, valuestore.Cell[V]]

// Core is the coordinator from spec.md's data model: it owns the two map
// slots, the reader registry, the residual counter and the park/unpark
// handshake, and exposes exactly the operations a single writer and any
// number of concurrent readers need. It knows nothing about hashing or
// value duplication - both are injected, as a Slot pair and a
// valuestore.Store respectively, by the root package's Builder.
type Core[K comparable, V any] struct {
	maps      [2]Slot[K, V]
	registry  Registry
	residual  Residual
	parker    *parker
	hooks     Hooks
	writerMap MapIndex // touched only by the single writer goroutine
	hasWriter atomic.Bool
}

// NewCore wires two empty (and, for Builder.WithCapacity, pre-sized)
// slots into a coordinator. The first slot starts readable, the second
// starts writable, matching Registry's zero-value readable field.
func NewCore[K comparable, V any](first, second Slot[K, V], hooks Hooks) *Core[K, V] {
	if hooks == nil {
		hooks = noopHooks{}
	}
	c := &Core[K, V]{hooks: hooks, parker: newParker(), writerMap: Second}
	c.maps[First] = first
	c.maps[Second] = second
	return c
}

// AcquireWriter marks the core as having a writer. It panics if called
// twice, enforcing the single-writer invariant at construction time rather
// than leaving it to be discovered as data corruption later.
func (c *Core[K, V]) AcquireWriter() {
	if !c.hasWriter.CompareAndSwap(false, true) {
		panic(errDoubleWriter)
	}
}

// NewReader registers a new reader cell against the currently readable
// slot and returns it along with the registry key needed to release it.
func (c *Core[K, V]) NewReader() (key int, rc *RefCount) {
	return c.registry.NewReaderCell()
}

// ReleaseRefcount removes a reader's cell from the registry. Closing a
// read handle while one of its guards is still open is a caller error:
// the registry has no way to tell, from the cell's aggregate count alone,
// whether those outstanding guards are reading the current slot or one a
// publish has since reused, so rather than guess this panics and leaves
// the handle's bookkeeping untouched.
func (c *Core[K, V]) ReleaseRefcount(key int, rc *RefCount) {
	if _, count := rc.Snapshot(); count != 0 {
		panic(errLiveGuardOnClose)
	}
	c.registry.RemoveCell(key)
}

// OpenGuard records a new read guard on rc and reports which slot it
// should read. This is the wait-free fast path: it touches no lock and no
// hook, only rc's own atomic word.
func (c *Core[K, V]) OpenGuard(rc *RefCount) MapIndex {
	return rc.Increment()
}

// CloseGuard releases a read guard that was opened against openedAt. If a
// publish toggled rc's slot while the guard was outstanding, this guard
// was a residual straggler; releasing the last one wakes a parked writer.
// Like OpenGuard, this never touches hooks - only rc's atomic word and,
// for stragglers, the residual counter and parker.
func (c *Core[K, V]) CloseGuard(rc *RefCount, openedAt MapIndex) {
	prev := rc.Decrement()
	if prev == openedAt {
		return
	}
	if c.residual.Decrement() {
		c.parker.unpark()
	}
}

// MapAt returns the slot at idx, for readers to consult directly.
func (c *Core[K, V]) MapAt(idx MapIndex) Slot[K, V] {
	return c.maps[idx]
}

// StartWrite is the writer-side synchronization point from spec.md 4.4: it
// blocks until every straggler from the previous publish has drained,
// replays the pending operation log into the slot that just became free,
// and hands that slot back for the caller to mutate directly.
func (c *Core[K, V]) StartWrite(log *OpLog[K, valuestore.Cell[V]]) Slot[K, V] {
	c.awaitDrained()
	d := c.maps[c.writerMap]
	log.Replay(d)
	return d
}

// awaitDrained parks the calling goroutine if residual readers remain on
// the slot the writer is about to reuse, and returns once the last one
// has released it.
func (c *Core[K, V]) awaitDrained() {
	if !c.residual.markParkedOrSkip() {
		return
	}
	c.hooks.OnParked()
	c.parker.park()
	c.hooks.OnUnparked()
}

// FinishWrite is Publish from spec.md 4.4: flips which slot is readable,
// folds however many guards were caught mid-read on the slot that just
// stopped being readable into the residual counter, and records that
// count via hooks for observability.
func (c *Core[K, V]) FinishWrite() {
	newReadable, initial := c.registry.Publish()
	c.writerMap = newReadable.Other()
	c.residual.Add(initial)
	c.hooks.OnPublish(initial)
}
