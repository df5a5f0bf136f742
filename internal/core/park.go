package core

// parker is a one-slot park/unpark handshake, the closest portable
// equivalent to the thread parker spec.md describes: the writer blocks on
// it in StartWrite, and the single reader whose Decrement drains residual
// to zero while the parked flag is set wakes it. A buffered channel of
// size one gives exactly this: a wakeup that arrives before the writer
// parks is not lost, and at most one outstanding wakeup is ever queued.
type parker struct {
	wake chan struct{}
}

func newParker() *parker {
	return &parker{wake: make(chan struct{}, 1)}
}

// park blocks until the next unpark call, or returns immediately if one
// arrived first.
func (p *parker) park() {
	<-p.wake
}

// unpark wakes a parked writer. It never blocks: if a wakeup is already
// queued (which should not happen under the protocol in core.go, since
// only one reader can ever observe the drained edge per park cycle) it is
// coalesced rather than piling up.
func (p *parker) unpark() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}
