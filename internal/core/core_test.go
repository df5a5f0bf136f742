package core

import (
	"testing"
	"time"

	"github.com/coredb-labs/flashmap/internal/dict"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

func newTestCore(t *testing.T) *Core[string, int] {
	t.Helper()
	first := dict.NewTable[string, valuestore.Cell[int]](0, nil)
	second := dict.NewTable[string, valuestore.Cell[int]](0, nil)
	return NewCore[string, int](first, second, nil)
}

func TestAcquireWriterPanicsOnSecondCall(t *testing.T) {
	c := newTestCore(t)
	c.AcquireWriter()

	defer func() {
		if recover() == nil {
			t.Fatal("expected second AcquireWriter to panic")
		}
	}()
	c.AcquireWriter()
}

func TestNewReaderStartsOnCurrentReadableSlot(t *testing.T) {
	c := newTestCore(t)
	_, rc := c.NewReader()
	idx := c.OpenGuard(rc)
	if idx != First {
		t.Fatalf("expected new readers to start on First, got %v", idx)
	}
	c.CloseGuard(rc, idx)
}

func TestReleaseRefcountPanicsWithLiveGuard(t *testing.T) {
	c := newTestCore(t)
	key, rc := c.NewReader()
	c.OpenGuard(rc)

	defer func() {
		if recover() == nil {
			t.Fatal("expected ReleaseRefcount to panic while a guard is open")
		}
	}()
	c.ReleaseRefcount(key, rc)
}

func TestWriteCycleReplaysIntoSiblingSlot(t *testing.T) {
	c := newTestCore(t)

	var log OpLog[string, valuestore.Cell[int]]
	writable := c.StartWrite(&log)
	writable.Insert("a", valuestore.NewCell(1))
	log.RecordInsert("a", valuestore.NewCell(1))

	c.FinishWrite()

	// After publish, the slot that just became writable (the old
	// readable slot) should be brought up to date by the next
	// StartWrite's replay.
	next := c.StartWrite(&log)
	if _, ok := next.Get("a"); !ok {
		t.Fatal("expected replay to bring the sibling slot up to date")
	}
}

func TestFinishWriteTogglesIndexAndStartWriteAwaitsResidual(t *testing.T) {
	c := newTestCore(t)

	_, rc := c.NewReader()
	openedAt := c.OpenGuard(rc)
	if openedAt != First {
		t.Fatalf("expected First, got %v", openedAt)
	}

	var log OpLog[string, valuestore.Cell[int]]
	c.StartWrite(&log)
	c.FinishWrite() // readable flips to Second; rc's guard becomes residual

	// New readers should now see Second.
	_, rc2 := c.NewReader()
	if idx := c.OpenGuard(rc2); idx != Second {
		t.Fatalf("expected new reader to observe Second, got %v", idx)
	}
	c.CloseGuard(rc2, Second)

	// The writer wants First back for its next cycle; rc is still
	// holding it, so StartWrite must block until CloseGuard drains it.
	unblocked := make(chan struct{})
	go func() {
		c.StartWrite(&log)
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("StartWrite returned before the residual guard was released")
	case <-time.After(20 * time.Millisecond):
	}

	c.CloseGuard(rc, openedAt)

	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("StartWrite did not unblock after residual guard closed")
	}
}
