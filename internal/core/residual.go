package core

import "sync/atomic"

const (
	residualParkedFlag = uint64(1) << 63
	residualCountMask  = residualParkedFlag - 1
)

// Residual tracks readers who were incremented before the most recent
// publish toggled their cell's map-index bit and are therefore still
// holding the map slot the writer wants to reuse. It packs that count with
// a single "writer is parked waiting on us" flag so the last straggler to
// drop its guard can tell, from one atomic op, whether it owes the writer
// a wakeup.
type Residual struct {
	word atomic.Uint64
}

// Add folds newlyResidual guards into the counter after a publish. Release
// ordering ensures every SwapMaps this contribution is derived from is
// visible to whichever reader later observes the drained (0, parked) edge.
// Returns the value immediately before the add, so the caller can tell
// whether the counter was already non-zero.
func (r *Residual) Add(newlyResidual uint64) uint64 {
	return r.word.Add(newlyResidual) - newlyResidual
}

// Decrement releases one residual guard. It reports whether this call
// drained the count to zero while the writer was parked - i.e. whether
// this caller is responsible for waking the writer. Acquire-release
// ordering: acquire pairs with the writer's registry-lock release during
// Publish (so this reader sees the toggled index that made it residual in
// the first place); release pairs with the writer's next acquire load of
// the word after being unparked.
func (r *Residual) Decrement() (mustWake bool) {
	old := r.word.Add(^uint64(0)) + 1
	remaining := (old - 1) & residualCountMask
	if remaining == 0 && old&residualParkedFlag != 0 {
		// The writer is parked and no residual readers remain, so nothing
		// else touches the word until it wakes: clear the flag here so a
		// later drain does not send a wakeup nobody is waiting for.
		r.word.Store(0)
		return true
	}
	return false
}

// markParkedOrSkip is the writer-side half of the handshake, called at the
// start of a write. If the counter is already zero it clears (or leaves
// clear) the parked flag and reports that the writer need not park;
// otherwise it sets the parked flag and reports that the writer must park
// until a Decrement call observes the drained edge and wakes it.
func (r *Residual) markParkedOrSkip() (mustPark bool) {
	old := r.word.Or(residualParkedFlag)
	if old&residualCountMask == 0 {
		// No residual readers exist yet, so nothing can be racing to flip
		// the flag concurrently - a plain store is enough to clear it.
		r.word.Store(0)
		return false
	}
	return true
}

// count returns the current residual count, for diagnostics and tests
// only; never consulted on a hot path.
func (r *Residual) count() uint64 {
	return r.word.Load() & residualCountMask
}
