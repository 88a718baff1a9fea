package texture

import "testing"

func TestStream_SameSeedSameSequence(t *testing.T) {
	a := NewStream(1001)
	b := NewStream(1001)
	for i := range 200 {
		if x, y := a.IntRange(-5, 5), b.IntRange(-5, 5); x != y {
			t.Fatalf("draw %d: IntRange %d != %d", i, x, y)
		}
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: Float64 %v != %v", i, x, y)
		}
	}
	if a.Draws() != 400 {
		t.Errorf("Draws() = %d, want 400", a.Draws())
	}
}

func TestStream_IntRangeIsClosed(t *testing.T) {
	s := NewStream(3)
	seen := map[int]bool{}
	for range 1000 {
		v := s.IntRange(8, 10)
		if v < 8 || v > 10 {
			t.Fatalf("IntRange(8, 10) = %d", v)
		}
		seen[v] = true
	}
	for _, want := range []int{8, 9, 10} {
		if !seen[want] {
			t.Errorf("value %d never drawn", want)
		}
	}
}

func TestStream_SingleValueRange(t *testing.T) {
	s := NewStream(3)
	if v := s.IntRange(4, 4); v != 4 {
		t.Errorf("IntRange(4, 4) = %d", v)
	}
	if s.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", s.Draws())
	}
}

func TestStream_InvalidRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntRange(2, 1) should panic")
		}
	}()
	NewStream(1).IntRange(2, 1)
}

func TestChoose(t *testing.T) {
	s := NewStream(9)
	items := []string{"a", "b", "c"}
	for range 100 {
		got := Choose(s, items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("Choose returned %q", got)
		}
	}
	if s.Draws() != 100 {
		t.Errorf("Choose should consume one draw each, got %d", s.Draws())
	}
}

func TestChance(t *testing.T) {
	s := NewStream(5)
	for range 100 {
		if s.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !s.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}
