package flashmap

import "github.com/coredb-labs/flashmap/internal/core"

// ReadHandle is a handle to a flashmap's read side. It is cheap to Clone
// and every clone can be handed to a different goroutine: reads through
// any number of read handles never block each other. The writer's next
// WriteHandle.Guard call waits only for guards opened before its last
// publish.
//
// A ReadHandle is not itself safe for concurrent use - Clone it once per
// goroutine that needs one, the same way sync.WaitGroup or a database
// connection pool's per-goroutine handle would be used.
type ReadHandle[K comparable, V any] struct {
	c   *core.Core[K, V]
	key int
	rc  *core.RefCount
}

func newReadHandle[K comparable, V any](c *core.Core[K, V]) *ReadHandle[K, V] {
	key, rc := c.NewReader()
	return &ReadHandle[K, V]{c: c, key: key, rc: rc}
}

// Clone returns a new, independent read handle over the same map.
func (h *ReadHandle[K, V]) Clone() *ReadHandle[K, V] {
	return newReadHandle(h.c)
}

// Close releases this handle's reader registration. Every ReadGuard
// obtained from this handle must already be closed; closing a handle with
// a guard still open panics rather than guess at residual accounting it
// cannot safely reconstruct.
func (h *ReadHandle[K, V]) Close() {
	h.c.ReleaseRefcount(h.key, h.rc)
}

// Guard opens a wait-free, point-in-time-consistent view of the map. The
// view stays consistent with the moment Guard was called even if the
// writer publishes changes while the guard is open; close it and open a
// new one to observe those changes.
func (h *ReadHandle[K, V]) Guard() *ReadGuard[K, V] {
	idx := h.c.OpenGuard(h.rc)
	return &ReadGuard[K, V]{
		View:     View[K, V]{d: h.c.MapAt(idx)},
		h:        h,
		openedAt: idx,
	}
}

// ReadGuard is a single wait-free read pass over the map. A read handle
// may have several guards open at once; its reference count tracks how
// many, and each guard keeps the slot it opened against.
type ReadGuard[K comparable, V any] struct {
	View[K, V]
	h        *ReadHandle[K, V]
	openedAt core.MapIndex
	closed   bool
}

// Close ends this guard. Idempotent, so it can be deferred unconditionally.
func (g *ReadGuard[K, V]) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.h.c.CloseGuard(g.h.rc, g.openedAt)
}
