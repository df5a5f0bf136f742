package core

import "sync"

// Registry is the reader registry from spec.md 4.3: a dense, stable-key
// collection of pointers to reference count cells. Insert and Remove take
// the lock; so does the publish-time traversal in Publish. Nothing on a
// reader's hot path (Increment/Decrement) touches this lock - only reader
// handle construction and destruction do.
//
// Freed slots are recycled through a free list so long-running processes
// that churn reader handles don't grow the backing slice without bound,
// mirroring the slab allocator the original Rust core uses for the same
// purpose.
type Registry struct {
	mu       sync.Mutex
	cells    []*RefCount
	free     []int
	readable MapIndex
}

// NewReaderCell allocates a cell recording the registry's current readable
// slot and returns it along with the stable key RemoveCell later needs.
// Reading r.readable and inserting the cell happen under one lock so a
// concurrent Publish can never observe a half-registered reader.
func (r *Registry) NewReaderCell() (key int, rc *RefCount) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rc = NewRefCount(r.readable)
	if n := len(r.free); n > 0 {
		key = r.free[n-1]
		r.free = r.free[:n-1]
		r.cells[key] = rc
		return key, rc
	}

	r.cells = append(r.cells, rc)
	return len(r.cells) - 1, rc
}

// RemoveCell drops the entry for key. The caller is responsible for
// whatever bookkeeping the cell's remaining guard count requires before
// calling this - RemoveCell only stops the registry from tracking it.
func (r *Registry) RemoveCell(key int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cells[key] = nil
	r.free = append(r.free, key)
}

// Publish is the traversal from spec.md 4.4: flip which slot counts as
// readable, then, under the same lock, toggle every live cell's map-index
// bit to match and sum the guard counts each one reports - the number of
// stragglers still holding the slot that just stopped being readable. No
// reader registration or removal can interleave with this, because they
// share the same lock.
func (r *Registry) Publish() (newReadable MapIndex, initialResidual uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readable = r.readable.Other()
	for _, rc := range r.cells {
		if rc == nil {
			continue
		}
		initialResidual += rc.SwapMaps()
	}
	return r.readable, initialResidual
}

// Len reports the number of live entries. Used by tests and by
// diagnostics; never on a hot path.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, rc := range r.cells {
		if rc != nil {
			n++
		}
	}
	return n
}
