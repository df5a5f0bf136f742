// Package core implements the concurrency substrate shared by every
// flashmap instance: the two-map double-buffering scheme, the per-reader
// reference counts that double as guard counters and map-index flags, the
// residual accounting used to quiesce stragglers after a publish, and the
// parking handshake between the writer and the last residual reader.
//
// Nothing in this package knows about hashing, key equality, or how values
// are duplicated across the two map slots - those are the concerns of
// internal/dict and internal/valuestore respectively. Core only moves
// opaque map instances between "readable" and "writable" roles and tracks
// who is still looking at which one.
//
// Every exported method here is either wait-free (Increment, Decrement,
// SwapMaps) or takes the registry mutex, which is never touched from the
// hot read path - except StartWrite, which may park the writer until
// residual readers drain. Get familiar with refcount.go and residual.go before
// touching core.go; the ordering comments on each atomic operation are load
// bearing.
package core
