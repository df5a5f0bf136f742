// Package dict provides the hash table each flashmap slot is built out of.
// It is deliberately small: spec.md frames the dictionary as an external
// collaborator that core.Core manipulates through an interface, not as part
// of the hard engineering this repository is about. Anything fancier -
// SIMD probing, Swiss-table-style control bytes - belongs in a dedicated
// hash table library, not here.
package dict

// Dictionary is the storage contract core.Core depends on for both of its
// map slots. Implementations do not need to be safe for concurrent
// mutation: only the single writer mutates a slot, and only while no
// reader holds it. Any number of readers may call Get, Len and Range on
// the same slot concurrently.
type Dictionary[K comparable, V any] interface {
	Get(key K) (V, bool)
	// Insert overwrites the value stored for key unconditionally and
	// reports the previous value, if any.
	Insert(key K, value V) (old V, hadOld bool)
	// Remove deletes key and reports the value it held, if any.
	Remove(key K) (old V, hadOld bool)
	Len() int
	// Range calls fn once per entry until fn returns false or every entry
	// has been visited. Iteration order is unspecified.
	Range(fn func(K, V) bool)
}

// Hasher computes a 64-bit digest for a key. Table's default, installed
// when a Builder is not given one explicitly, uses hash/maphash.Comparable
// with a random per-table seed.
type Hasher[K comparable] func(key K) uint64
