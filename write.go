package flashmap

import (
	"github.com/coredb-labs/flashmap/internal/core"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

// InsertionResult reports whether WriteGuard.Insert added a new key or
// overwrote an existing one.
type InsertionResult uint8

const (
	Inserted InsertionResult = iota
	Replaced
)

// RemovalResult reports whether WriteGuard.Remove found a key to remove.
type RemovalResult uint8

const (
	Removed RemovalResult = iota
	NotFound
)

// WriteHandle is the single write side of a flashmap. There is exactly
// one per map; it is not safe for concurrent use, matching spec.md's
// single-writer non-goal.
type WriteHandle[K comparable, V any] struct {
	c     *core.Core[K, V]
	store *valuestore.Store[V]
	log   core.OpLog[K, valuestore.Cell[V]]
	open  bool
}

func newWriteHandle[K comparable, V any](c *core.Core[K, V], store *valuestore.Store[V]) *WriteHandle[K, V] {
	return &WriteHandle[K, V]{c: c, store: store}
}

// Guard blocks until every straggler from the previous publish has
// drained, replays the pending mutation log into the slot that just freed
// up, and returns a guard the caller mutates directly. Only one guard may
// be open per write handle at a time; call Publish or Close before opening
// another.
func (h *WriteHandle[K, V]) Guard() *WriteGuard[K, V] {
	if h.open {
		panic(errWriteGuardAlreadyOpen)
	}
	h.open = true
	d := h.c.StartWrite(&h.log)
	return &WriteGuard[K, V]{View: View[K, V]{d: d}, h: h}
}

// Close releases the write handle. After a publish the operation log
// still holds that cycle's mutations, which only the next Guard call
// would replay into the sibling slot; Close discards them, so no stale
// entries (and no Alias bodies they reference) stay pinned behind the
// handle.
func (h *WriteHandle[K, V]) Close() {
	h.log.Discard()
}

// WriteGuard is the single open write pass over the map's writable slot.
// Every mutation is applied immediately to that slot and appended to the
// write handle's operation log, so the next Guard call can bring the
// sibling slot up to date before handing it back.
type WriteGuard[K comparable, V any] struct {
	View[K, V]
	h      *WriteHandle[K, V]
	closed bool
}

// Insert stores value for key unconditionally, reporting whether a
// previous value was overwritten.
func (g *WriteGuard[K, V]) Insert(key K, value V) InsertionResult {
	writable, sibling := g.h.store.Pair(value)
	_, hadOld := g.d.Insert(key, writable)
	g.h.log.RecordInsert(key, sibling)
	if hadOld {
		return Replaced
	}
	return Inserted
}

// Remove deletes key, reporting whether it was present.
func (g *WriteGuard[K, V]) Remove(key K) RemovalResult {
	_, hadOld := g.d.Remove(key)
	if !hadOld {
		return NotFound
	}
	g.h.log.RecordRemove(key)
	return Removed
}

// Replace applies f to the current value for key (and false, if key is
// absent) and installs the result. f receives the value in the writable
// slot, which includes mutations made through this guard that are not yet
// published.
func (g *WriteGuard[K, V]) Replace(key K, f func(current V, ok bool) V) InsertionResult {
	current, ok := g.Get(key)
	return g.Insert(key, f(current, ok))
}

// Publish makes every mutation applied through this guard visible to new
// read guards, then closes the guard. The write handle's next Guard call
// will block until any reader still on the slot this cycle just vacated
// finishes with it.
func (g *WriteGuard[K, V]) Publish() {
	if g.closed {
		return
	}
	g.closed = true
	g.h.open = false
	g.h.c.FinishWrite()
}

// Close is equivalent to Publish. There is no discard path: every
// mutation applied through this guard is already sitting on the writable
// slot, and the only way to make that slot's sibling consistent again is
// to replay the operation log into it via the next StartWrite - so an
// open guard is always published on drop, matching the Rust original's
// WriteGuard::drop.
func (g *WriteGuard[K, V]) Close() {
	g.Publish()
}
