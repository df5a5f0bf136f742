// Package flashmap implements a concurrent map built on the left-right
// pattern: a single writer mutates one of two map slots while any number
// of readers observe the other, wait-free, with no locks or CAS loops on
// the read path. Writes become visible to new readers only when the
// writer explicitly publishes them; readers that opened a guard before a
// publish keep observing the value the map held at the time they opened
// it until they close that guard.
//
// Construct a map with New or, for control over hashing, initial
// capacity, or value storage strategy, with NewBuilder:
//
//	wh, rh := flashmap.New[string, int]()
//	defer wh.Close()
//	defer rh.Close()
//
//	wg := wh.Guard()
//	wg.Insert("a", 1)
//	wg.Publish()
//
//	rg := rh.Guard()
//	v, ok := rg.Get("a")
//	rg.Close()
//
// A ReadHandle is cheap to Clone across goroutines; a WriteHandle is not
// safe for concurrent use and a map has exactly one.
package flashmap
