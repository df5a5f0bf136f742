package dict

import "testing"

func TestTableInsertGetRemove(t *testing.T) {
	tbl := NewTable[string, int](0, nil)

	if _, ok := tbl.Get("a"); ok {
		t.Fatal("expected empty table to miss")
	}

	if old, hadOld := tbl.Insert("a", 1); hadOld {
		t.Fatalf("unexpected old value %d for fresh key", old)
	}
	if v, ok := tbl.Get("a"); !ok || v != 1 {
		t.Fatalf("expected (1, true), got (%d, %v)", v, ok)
	}

	if old, hadOld := tbl.Insert("a", 2); !hadOld || old != 1 {
		t.Fatalf("expected overwrite to report old value 1, got (%d, %v)", old, hadOld)
	}

	if old, hadOld := tbl.Remove("a"); !hadOld || old != 2 {
		t.Fatalf("expected remove to report 2, got (%d, %v)", old, hadOld)
	}
	if _, ok := tbl.Get("a"); ok {
		t.Fatal("key should be gone after remove")
	}
	if _, hadOld := tbl.Remove("a"); hadOld {
		t.Fatal("removing an absent key should report false")
	}
}

func TestTableGrowsAndKeepsEntries(t *testing.T) {
	tbl := NewTable[int, int](0, nil)

	const n = 2000
	for i := 0; i < n; i++ {
		tbl.Insert(i, i*i)
	}
	if tbl.Len() != n {
		t.Fatalf("expected %d entries, got %d", n, tbl.Len())
	}
	for i := 0; i < n; i++ {
		v, ok := tbl.Get(i)
		if !ok || v != i*i {
			t.Fatalf("key %d: expected (%d, true), got (%d, %v)", i, i*i, v, ok)
		}
	}
}

func TestTableRangeVisitsEveryEntry(t *testing.T) {
	tbl := NewTable[int, int](0, nil)
	want := map[int]int{1: 10, 2: 20, 3: 30}
	for k, v := range want {
		tbl.Insert(k, v)
	}

	got := make(map[int]int)
	tbl.Range(func(k, v int) bool {
		got[k] = v
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, visited %d", len(want), len(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %d: expected %d, got %d", k, v, got[k])
		}
	}
}

func TestTableRangeStopsEarly(t *testing.T) {
	tbl := NewTable[int, int](0, nil)
	for i := 0; i < 10; i++ {
		tbl.Insert(i, i)
	}

	visited := 0
	tbl.Range(func(k, v int) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Fatalf("expected Range to stop after 3 visits, stopped after %d", visited)
	}
}

func TestTableCustomHasher(t *testing.T) {
	calls := 0
	hasher := func(k int) uint64 {
		calls++
		return uint64(k)
	}
	tbl := NewTable[int, string](0, hasher)
	tbl.Insert(1, "one")
	tbl.Get(1)
	if calls == 0 {
		t.Fatal("expected custom hasher to be used")
	}
}

func TestTableClone(t *testing.T) {
	tbl := NewTable[int, int](0, nil)
	tbl.Insert(1, 1)
	tbl.Insert(2, 2)

	clone := tbl.Clone()
	clone.Insert(3, 3)

	if tbl.Len() != 2 {
		t.Fatalf("original table should be unaffected by clone mutation, len=%d", tbl.Len())
	}
	if clone.Len() != 3 {
		t.Fatalf("clone should have 3 entries, has %d", clone.Len())
	}
}
