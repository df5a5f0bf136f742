package flashmap

import (
	"iter"

	"github.com/coredb-labs/flashmap/internal/core"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

// View is the read-only surface shared by ReadGuard and the writable side
// of WriteGuard. It never allocates and never blocks: every method is a
// direct call into the underlying slot's dict.Dictionary.
type View[K comparable, V any] struct {
	d core.Slot[K, V]
}

// Get returns the value stored for key, if any.
func (v View[K, V]) Get(key K) (V, bool) {
	cell, ok := v.d.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return cell.Value(), true
}

// Contains reports whether key has a value.
func (v View[K, V]) Contains(key K) bool {
	_, ok := v.d.Get(key)
	return ok
}

// Len reports the number of entries visible through this view.
func (v View[K, V]) Len() int { return v.d.Len() }

// IsEmpty reports whether Len is zero.
func (v View[K, V]) IsEmpty() bool { return v.d.Len() == 0 }

// All iterates every key/value pair visible through this view. Mutating
// the map the view was opened against from within the callback is
// undefined; close the guard and open a new one instead.
func (v View[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		v.d.Range(func(k K, c valuestore.Cell[V]) bool {
			return yield(k, c.Value())
		})
	}
}
