package core

import (
	"testing"

	"github.com/coredb-labs/flashmap/internal/dict"
	"github.com/coredb-labs/flashmap/internal/valuestore"
)

func TestOpLogReplayAppliesInOrder(t *testing.T) {
	var log OpLog[string, valuestore.Cell[int]]
	log.RecordInsert("a", valuestore.NewCell(1))
	log.RecordInsert("b", valuestore.NewCell(2))
	log.RecordReplace("a", valuestore.NewCell(10))
	log.RecordRemove("b")

	d := dict.NewTable[string, valuestore.Cell[int]](0, nil)
	log.Replay(d)

	if v, ok := d.Get("a"); !ok || v.Value() != 10 {
		t.Fatalf("expected a=10, got (%v, %v)", v, ok)
	}
	if _, ok := d.Get("b"); ok {
		t.Fatal("expected b to have been removed")
	}
	if log.Len() != 0 {
		t.Fatalf("expected log to be empty after replay, has %d entries", log.Len())
	}
}

func TestOpLogDiscardDropsEntries(t *testing.T) {
	var log OpLog[string, valuestore.Cell[int]]
	log.RecordInsert("a", valuestore.NewCell(1))
	log.Discard()
	if log.Len() != 0 {
		t.Fatalf("expected 0 entries after discard, got %d", log.Len())
	}
}
