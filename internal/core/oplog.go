package core

import "github.com/coredb-labs/flashmap/internal/dict"

// entryKind identifies which mutation an OpLog entry replays.
type entryKind uint8

const (
	entryPut    entryKind = iota // used by both Insert and Replace: overwrite unconditionally
	entryRemove
)

type entry[K comparable, V any] struct {
	kind  entryKind
	key   K
	value V
}

// OpLog is the writer-owned FIFO from spec.md 4.6/section 3: every
// mutation applied eagerly to the currently writable map is also appended
// here, in order, so the next StartWrite can replay the same sequence into
// the sibling map before the caller can issue any more mutations.
//
// OpLog is not safe for concurrent use - it is touched exclusively by the
// single writer goroutine, matching the "exclusive ownership of the
// operation log" line in spec.md's data model table.
type OpLog[K comparable, V any] struct {
	entries []entry[K, V]
}

// RecordInsert appends an unconditional insert/overwrite.
func (l *OpLog[K, V]) RecordInsert(key K, value V) {
	l.entries = append(l.entries, entry[K, V]{kind: entryPut, key: key, value: value})
}

// RecordReplace appends a value replacement. It is recorded identically to
// an insert: replay does not need to distinguish "this key already existed"
// from "this key is new," it only needs the sibling map to end up holding
// the same value the writable map now holds.
func (l *OpLog[K, V]) RecordReplace(key K, value V) {
	l.entries = append(l.entries, entry[K, V]{kind: entryPut, key: key, value: value})
}

// RecordRemove appends a removal.
func (l *OpLog[K, V]) RecordRemove(key K) {
	l.entries = append(l.entries, entry[K, V]{kind: entryRemove, key: key})
}

// Replay drains every recorded mutation into d, in order, then discards
// them. Called at the start of every write once the writer has confirmed
// no reader still holds d.
func (l *OpLog[K, V]) Replay(d dict.Dictionary[K, V]) {
	for _, e := range l.entries {
		switch e.kind {
		case entryRemove:
			d.Remove(e.key)
		default:
			d.Insert(e.key, e.value)
		}
	}
	l.reset()
}

// Discard drops every recorded mutation without replaying them. Used when
// a WriteHandle is dropped: the readable map already reflects everything
// up through the last publish, and with no writer left no later write
// cycle will replay the log into the other map.
func (l *OpLog[K, V]) Discard() {
	l.reset()
}

func (l *OpLog[K, V]) reset() {
	if cap(l.entries) > 64 {
		l.entries = make([]entry[K, V], 0, 64)
		return
	}
	l.entries = l.entries[:0]
}

// Len reports the number of buffered, not-yet-replayed mutations.
func (l *OpLog[K, V]) Len() int { return len(l.entries) }
