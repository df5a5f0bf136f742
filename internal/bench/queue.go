// Package bench provides the goroutine-coordination pieces cmd/flashbench
// needs that don't belong in the library itself: a queue for collecting
// per-operation timing samples from many worker goroutines without making
// them contend on a shared mutex, and the histogram that turns those
// samples into a report.
package bench

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Sample is one recorded flashmap operation: which worker performed it,
// which kind of operation it was, and how long it took. Worker is -1 for
// the writer's batches, which are reported under a synthetic id because
// they don't belong to any single reader's work distribution.
type Sample struct {
	Worker int
	Op     string
	Nanos  int64
}

// sampleNode is a single element in SampleQueue's backing linked list.
type sampleNode struct {
	value Sample
	next  atomic.Pointer[sampleNode]
}

// SampleQueue is a lock-free multi-producer, single-consumer queue purpose
// built for flashbench's timing samples: any number of reader/writer
// worker goroutines can PushSample concurrently, and one goroutine drains
// them off Recv. Ordering across producers is not guaranteed, only that
// every pushed sample is eventually delivered.
type SampleQueue struct {
	head     atomic.Pointer[sampleNode]
	tail     atomic.Pointer[sampleNode]
	out      chan Sample
	consumer sync.WaitGroup
	closed   atomic.Bool

	mu   sync.Mutex
	cond *sync.Cond
}

// NewSampleQueue creates a queue and starts its background consumer
// goroutine, which forwards samples onto the channel Recv returns.
func NewSampleQueue() *SampleQueue {
	sentinel := &sampleNode{}

	q := &SampleQueue{out: make(chan Sample)}
	q.cond = sync.NewCond(&q.mu)
	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	q.consumer.Add(1)
	go q.consume()

	return q
}

// PushSample records one operation's timing. Returns false if the queue
// is already closed.
func (q *SampleQueue) PushSample(worker int, op string, nanos int64) bool {
	if q.closed.Load() {
		return false
	}

	newNode := &sampleNode{value: Sample{Worker: worker, Op: op, Nanos: nanos}}

	var tailNode *sampleNode
	var backoff uint8

	for {
		tailNode = q.tail.Load()

		next := tailNode.next.Load()
		if next == nil {
			if tailNode.next.CompareAndSwap(nil, newNode) {
				q.tail.CompareAndSwap(tailNode, newNode)
				q.cond.Signal()
				return true
			}
		} else {
			// Another producer already appended a node but hasn't moved
			// tail yet - help it along.
			q.tail.CompareAndSwap(tailNode, next)
		}

		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

func (q *SampleQueue) consume() {
	defer q.consumer.Done()
	defer close(q.out)

	for {
		hasItems := false

		for {
			head := q.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}

			hasItems = true
			value := next.value
			q.head.Store(next)
			q.out <- value
		}

		if !hasItems && q.closed.Load() {
			return
		}

		if !hasItems {
			q.mu.Lock()
			head := q.head.Load()
			if head.next.Load() == nil && !q.closed.Load() {
				q.cond.Wait()
			}
			q.mu.Unlock()
		}
	}
}

// Recv returns the channel samples arrive on.
func (q *SampleQueue) Recv() <-chan Sample {
	return q.out
}

// Close stops accepting new samples. Items already queued are still
// delivered; Recv's channel closes once they are drained.
func (q *SampleQueue) Close() {
	q.closed.Store(true)
	// Signal under mu so the wakeup cannot slip in between the consumer's
	// closed check and its cond.Wait.
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
}

// Len returns an approximate count of queued-but-undelivered samples.
// O(n); diagnostics only.
func (q *SampleQueue) Len() int {
	count := 0
	current := q.head.Load()
	for {
		next := current.next.Load()
		if next == nil {
			break
		}
		count++
		current = next
	}
	return count
}
