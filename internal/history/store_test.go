package history

import (
	"slices"
	"testing"

	"lifesim/internal/core"
)

func frame(gen int, cells ...uint8) core.Frame {
	return core.Frame{Generation: gen, Rows: 1, Cols: len(cells), Cells: cells}
}

func TestSaveDeepCopies(t *testing.T) {
	s := New(Policy{})
	live := []uint8{1, 0, 1}
	s.Save(frame(0, live...))
	s.Save(core.Frame{Generation: 1, Rows: 1, Cols: 3, Cells: live})
	live[0] = 0

	rec, ok := s.At(1)
	if !ok {
		t.Fatal("generation 1 should be stored")
	}
	if !slices.Equal(rec.Cells(), []uint8{1, 0, 1}) {
		t.Fatalf("stored snapshot changed with the live grid: %v", rec.Cells())
	}
	out := rec.Cells()
	out[1] = 1
	again, _ := s.At(1)
	if again.Population() != 2 {
		t.Fatal("Cells must return a copy")
	}
}

func TestAtOutOfRange(t *testing.T) {
	s := New(Policy{})
	if _, ok := s.At(0); ok {
		t.Fatal("empty store should not resolve generation 0")
	}
	for gen := 0; gen < 3; gen++ {
		s.Save(frame(gen, uint8(gen%2)))
	}
	if _, ok := s.At(3); ok {
		t.Fatal("generation == Len should be out of range")
	}
	if _, ok := s.At(-1); ok {
		t.Fatal("negative generation should be out of range")
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
}

func TestSaveAfterRewindBranches(t *testing.T) {
	s := New(Policy{})
	for gen := 0; gen < 5; gen++ {
		s.Save(frame(gen, 0))
	}
	s.Save(frame(3, 1))
	if s.Len() != 4 {
		t.Fatalf("len = %d, want 4", s.Len())
	}
	rec, _ := s.At(3)
	if rec.Population() != 1 {
		t.Fatal("generation 3 should hold the new branch")
	}
	if _, ok := s.At(4); ok {
		t.Fatal("superseded generation 4 should be gone")
	}
}

func TestLimitKeepsNewest(t *testing.T) {
	s := New(Policy{Limit: 3})
	for gen := 0; gen < 7; gen++ {
		s.Save(frame(gen, 0))
	}
	first, last, ok := s.Bounds()
	if !ok || first != 4 || last != 6 {
		t.Fatalf("bounds = %d..%d, want 4..6", first, last)
	}
	if _, ok := s.At(3); ok {
		t.Fatal("evicted generation should not resolve")
	}
	if rec, ok := s.At(5); !ok || rec.Generation != 5 {
		t.Fatalf("At(5) = %+v, %v", rec, ok)
	}
}

func TestReset(t *testing.T) {
	s := New(Policy{})
	s.Save(frame(0, 1))
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("len = %d after reset", s.Len())
	}
	if _, _, ok := s.Bounds(); ok {
		t.Fatal("empty store should have no bounds")
	}
}
