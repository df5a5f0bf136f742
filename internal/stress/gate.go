package stress

import "sync"

// Gate releases registered goroutines one at a time, in Schedule order,
// so a test can force a specific interleaving instead of hoping the Go
// scheduler happens to produce one.
type Gate struct {
	mu       sync.Mutex
	schedule *Schedule
	waiters  map[uint64]chan struct{}
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{schedule: NewSchedule(), waiters: make(map[uint64]chan struct{})}
}

// Register reserves goroutine id a turn at the given tick and returns the
// channel it should block on until that turn arrives.
func (g *Gate) Register(id, tick uint64) <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.waiters[id] = ch
	g.schedule.At(id, tick)
	return ch
}

// Advance releases the earliest-scheduled goroutine still waiting and
// reports its id. It does not wait for that goroutine to make progress;
// callers that need to serialize on completion should synchronize on a
// separate channel from within the released goroutine.
func (g *Gate) Advance() (id uint64, ok bool) {
	g.mu.Lock()
	id, ok = g.schedule.Next()
	if !ok {
		g.mu.Unlock()
		return 0, false
	}
	ch := g.waiters[id]
	delete(g.waiters, id)
	g.mu.Unlock()

	close(ch)
	return id, true
}
