package stress

import "testing"

func TestScheduleOrdering(t *testing.T) {
	s := NewSchedule()

	s.At(5, 50)
	s.At(3, 30)
	s.At(1, 10)
	s.At(4, 40)
	s.At(2, 20)

	want := []uint64{1, 2, 3, 4, 5}
	for _, w := range want {
		got, ok := s.Next()
		if !ok {
			t.Fatalf("expected id %d, schedule empty", w)
		}
		if got != w {
			t.Errorf("expected id %d, got %d", w, got)
		}
	}

	if _, ok := s.Next(); ok {
		t.Error("expected empty schedule")
	}
}

func TestScheduleReschedule(t *testing.T) {
	s := NewSchedule()
	s.At(1, 100)
	s.At(2, 200)

	// Move id 2 earlier than id 1.
	s.At(2, 50)

	got, ok := s.Next()
	if !ok || got != 2 {
		t.Fatalf("expected id 2 first after reschedule, got %d ok=%v", got, ok)
	}
	got, ok = s.Next()
	if !ok || got != 1 {
		t.Fatalf("expected id 1 second, got %d ok=%v", got, ok)
	}
}

func TestScheduleCancel(t *testing.T) {
	s := NewSchedule()
	s.At(1, 10)
	s.At(2, 20)

	s.Cancel(1)
	if s.Contains(1) {
		t.Error("id 1 should have been cancelled")
	}

	got, ok := s.Next()
	if !ok || got != 2 {
		t.Fatalf("expected id 2, got %d ok=%v", got, ok)
	}
}
