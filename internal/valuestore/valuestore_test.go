package valuestore

import "testing"

type body struct {
	n int
}

func TestCloneStrategyProducesIndependentPointers(t *testing.T) {
	store := New[*body](Clone, func(b *body) *body {
		clone := *b
		return &clone
	})

	original := &body{n: 1}
	writable, sibling := store.Pair(original)

	if writable.Value() != original {
		t.Fatal("writable cell should wrap the exact value passed in")
	}
	if sibling.Value() == original {
		t.Fatal("clone strategy must not share the pointer with the sibling slot")
	}
	if sibling.Value().n != original.n {
		t.Fatalf("clone should have equal contents, got %d want %d", sibling.Value().n, original.n)
	}

	// Mutating the writable body must not affect the sibling's copy.
	writable.Value().n = 99
	if sibling.Value().n == 99 {
		t.Fatal("mutating the writable copy leaked into the sibling copy")
	}
}

func TestAliasStrategySharesPointer(t *testing.T) {
	store := New[*body](Alias, nil)

	original := &body{n: 1}
	writable, sibling := store.Pair(original)

	if writable.Value() != sibling.Value() {
		t.Fatal("alias strategy must share one body between both slots")
	}
}

func TestDefaultDuplicatorIsIdentityForValueTypes(t *testing.T) {
	store := New[int](Clone, nil)
	writable, sibling := store.Pair(42)
	if writable.Value() != 42 || sibling.Value() != 42 {
		t.Fatalf("expected both cells to hold 42, got %d and %d", writable.Value(), sibling.Value())
	}
}
