// Package stress drives deliberately interleaved goroutines against a
// flashmap to exercise the testable properties spec.md calls out that a
// single-threaded test can't reach - guard isolation across a publish,
// the writer draining residual readers, and so on. Go has no equivalent
// of a loom-style exhaustive interleaving explorer, so this package
// settles for controlled, seeded interleavings run under `go test -race`,
// which catches the same class of bug (a data race) that an incorrect
// memory-model implementation would produce.
package stress

import "container/heap"

// step is one entry in a Schedule: goroutine id and the logical tick it
// should run at.
type step struct {
	id    uint64
	tick  uint64
	index int
}

// Schedule is a priority queue of goroutine ids ordered by logical tick,
// with O(1) lookup and O(log n) rescheduling by id. A harness uses it to
// decide, deterministically, which of several waiting goroutines to
// release next.
type Schedule struct {
	steps []*step
	byID  map[uint64]*step
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{byID: make(map[uint64]*step)}
}

func (s *Schedule) Len() int { return len(s.steps) }

func (s *Schedule) Less(i, j int) bool { return s.steps[i].tick < s.steps[j].tick }

func (s *Schedule) Swap(i, j int) {
	s.steps[i], s.steps[j] = s.steps[j], s.steps[i]
	s.steps[i].index = i
	s.steps[j].index = j
}

func (s *Schedule) Push(x any) {
	st := x.(*step)
	st.index = len(s.steps)
	s.steps = append(s.steps, st)
	s.byID[st.id] = st
}

func (s *Schedule) Pop() any {
	old := s.steps
	n := len(old)
	st := old[n-1]
	old[n-1] = nil
	st.index = -1
	s.steps = old[:n-1]
	delete(s.byID, st.id)
	return st
}

// At schedules id to run at tick, replacing any previous entry for id.
func (s *Schedule) At(id, tick uint64) {
	if st, exists := s.byID[id]; exists {
		st.tick = tick
		heap.Fix(s, st.index)
		return
	}
	heap.Push(s, &step{id: id, tick: tick})
}

// Next pops the goroutine id with the smallest scheduled tick.
func (s *Schedule) Next() (id uint64, ok bool) {
	if len(s.steps) == 0 {
		return 0, false
	}
	st := heap.Pop(s).(*step)
	return st.id, true
}

// Cancel removes id's pending entry, if any.
func (s *Schedule) Cancel(id uint64) {
	st, exists := s.byID[id]
	if !exists {
		return
	}
	heap.Remove(s, st.index)
}

// Contains reports whether id currently has a pending entry.
func (s *Schedule) Contains(id uint64) bool {
	_, exists := s.byID[id]
	return exists
}
