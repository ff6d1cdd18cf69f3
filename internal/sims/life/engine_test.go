package life

import (
	"math"
	"slices"
	"sort"
	"testing"

	"lifesim/internal/core"
)

func liveSet(e *Engine) [][2]int {
	cells := e.Grid().LiveCells()
	sort.Slice(cells, func(i, j int) bool {
		if cells[i][0] != cells[j][0] {
			return cells[i][0] < cells[j][0]
		}
		return cells[i][1] < cells[j][1]
	})
	return cells
}

func TestBlinkerOscillation(t *testing.T) {
	e := New(5, 5)
	e.Revive(2, 1)
	e.Revive(2, 2)
	e.Revive(2, 3)

	res := e.Step()
	if res.Births != 2 || res.Deaths != 2 {
		t.Fatalf("births/deaths = %d/%d, want 2/2", res.Births, res.Deaths)
	}
	want := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	if got := liveSet(e); !slices.Equal(got, want) {
		t.Fatalf("after one step live cells = %v, want %v", got, want)
	}

	e.Step()
	want = [][2]int{{2, 1}, {2, 2}, {2, 3}}
	if got := liveSet(e); !slices.Equal(got, want) {
		t.Fatalf("after second step live cells = %v, want %v", got, want)
	}
	if e.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", e.Generation())
	}
}

func TestGliderTranslatesDiagonally(t *testing.T) {
	glider, err := LookupPreset("glider")
	if err != nil {
		t.Fatal(err)
	}
	e := New(12, 12)
	e.Place(glider, 1, 1)
	before := liveSet(e)

	for i := 0; i < 4; i++ {
		e.Step()
	}

	after := liveSet(e)
	if len(after) != len(before) {
		t.Fatalf("glider population changed: %d -> %d", len(before), len(after))
	}
	for i, rc := range before {
		moved := [2]int{rc[0] + 1, rc[1] + 1}
		if after[i] != moved {
			t.Fatalf("cell %v expected at %v, got %v", rc, moved, after[i])
		}
	}
}

func TestHardEdgesDoNotWrap(t *testing.T) {
	e := New(4, 4)
	// A blinker on the top edge loses its vertical phase to the border.
	e.Revive(0, 0)
	e.Revive(0, 1)
	e.Revive(0, 2)
	e.Step()

	want := [][2]int{{0, 1}, {1, 1}}
	if got := liveSet(e); !slices.Equal(got, want) {
		t.Fatalf("live cells = %v, want %v", got, want)
	}
	if e.Grid().Alive(3, 1) {
		t.Fatal("cells must not wrap to the opposite edge")
	}
}

func TestBlockIsStill(t *testing.T) {
	block, _ := LookupPreset("block")
	e := New(6, 6)
	e.PlaceCentered(block)
	before := liveSet(e)

	res := e.Step()
	if res.Births != 0 || res.Deaths != 0 {
		t.Fatalf("block should not change, got %+v", res)
	}
	if got := liveSet(e); !slices.Equal(got, before) {
		t.Fatalf("block moved: %v -> %v", before, got)
	}
}

func TestStepTracksAgeAndActivity(t *testing.T) {
	e := New(5, 5)
	e.Revive(2, 1)
	e.Revive(2, 2)
	e.Revive(2, 3)
	e.Step()

	g := e.Grid()
	if age := g.Ages()[g.Index(2, 2)]; age != 1 {
		t.Fatalf("surviving center age = %d, want 1", age)
	}
	if age := g.Ages()[g.Index(1, 2)]; age != 0 {
		t.Fatalf("newborn age = %d, want 0", age)
	}
	if age := g.Ages()[g.Index(2, 1)]; age != 0 {
		t.Fatalf("dead cell age = %d, want 0", age)
	}

	checks := []struct {
		row, col int
		want     float64
	}{
		{2, 1, 1.9}, // placed, then died
		{1, 2, 0.9}, // born
		{2, 2, 0.9}, // placed, survived
		{0, 0, 0},
	}
	for _, c := range checks {
		got := g.Activity()[g.Index(c.row, c.col)]
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("activity(%d,%d) = %f, want %f", c.row, c.col, got, c.want)
		}
	}
}

func TestActivityStaysInRange(t *testing.T) {
	e := New(8, 8)
	rng := core.NewRNG(3)
	e.Randomize(rng, 0.5)
	for i := 0; i < 50; i++ {
		e.Step()
		for _, a := range e.Grid().Activity() {
			if a < 0 || a > core.MaxActivity {
				t.Fatalf("activity %f out of range at generation %d", a, e.Generation())
			}
		}
	}
}

func TestToggleResetsAgeAndKeepsGeneration(t *testing.T) {
	e := New(5, 5)
	block, _ := LookupPreset("block")
	e.Place(block, 1, 1)
	e.Step()
	e.Step()

	g := e.Grid()
	if g.Ages()[g.Index(1, 1)] != 2 {
		t.Fatalf("block age = %d, want 2", g.Ages()[g.Index(1, 1)])
	}
	if !e.Toggle(1, 1) {
		t.Fatal("toggle in bounds should succeed")
	}
	if g.Alive(1, 1) || g.Ages()[g.Index(1, 1)] != 0 {
		t.Fatal("toggle off should kill the cell and zero its age")
	}
	e.Toggle(1, 1)
	if !g.Alive(1, 1) || g.Ages()[g.Index(1, 1)] != 0 {
		t.Fatal("toggle on should revive the cell with age zero")
	}
	if e.Generation() != 2 {
		t.Fatalf("toggle advanced the generation to %d", e.Generation())
	}
	if e.Toggle(9, 9) {
		t.Fatal("out-of-bounds toggle should be ignored")
	}
}

func TestResizeKeepsGenerationAndOverlap(t *testing.T) {
	e := New(6, 6)
	glider, _ := LookupPreset("glider")
	e.Place(glider, 0, 0)
	e.Step()
	pop := e.Grid().Population()
	before := liveSet(e)

	e.Resize(10, 12)
	if e.Generation() != 1 {
		t.Fatalf("resize touched generation: %d", e.Generation())
	}
	if got := liveSet(e); !slices.Equal(got, before) {
		t.Fatalf("live cells moved on grow: %v -> %v", before, got)
	}
	if e.Grid().Population() != pop {
		t.Fatalf("population = %d, want %d", e.Grid().Population(), pop)
	}
	e.Step()
	if e.Generation() != 2 {
		t.Fatal("engine should keep stepping after a resize")
	}
}

func TestRestoreZeroesDeadAges(t *testing.T) {
	e := New(4, 4)
	block, _ := LookupPreset("block")
	e.Place(block, 0, 0)
	e.Step()

	empty := make([]uint8, 16)
	e.Restore(4, 4, empty, 0)
	for i, a := range e.Grid().Ages() {
		if a != 0 {
			t.Fatalf("age[%d] = %d on a dead cell", i, a)
		}
	}
	if e.Generation() != 0 {
		t.Fatalf("generation = %d, want 0", e.Generation())
	}
}

func TestPresetsLookup(t *testing.T) {
	if _, err := LookupPreset("nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
	p, err := LookupPreset(" Gosper-Gun ")
	if err != nil {
		t.Fatalf("lookup should be case-insensitive: %v", err)
	}
	if len(p.Cells) != 36 {
		t.Fatalf("gosper gun has %d cells, want 36", len(p.Cells))
	}
	if rows, cols := p.Size(); rows != 9 || cols != 36 {
		t.Fatalf("gosper gun size = %dx%d, want 9x36", rows, cols)
	}
	if len(PresetNames()) != len(presets) {
		t.Fatal("PresetNames should list every preset")
	}
}

func TestPlaceClipsAtEdges(t *testing.T) {
	e := New(3, 3)
	pulsar, _ := LookupPreset("pulsar")
	placed := e.Place(pulsar, 0, 0)
	if placed != e.Grid().Population() {
		t.Fatalf("placed %d but population is %d", placed, e.Grid().Population())
	}
	if placed >= len(pulsar.Cells) {
		t.Fatal("off-board cells should be dropped")
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"rows": "20", "cols": "x", "density": "1.5", "gps": "30", "history_limit": "100"})
	if c.Rows != 20 || c.Cols != DefaultConfig().Cols {
		t.Fatalf("unexpected dims %dx%d", c.Rows, c.Cols)
	}
	if c.Density != DefaultConfig().Density {
		t.Fatalf("out-of-range density should be ignored, got %f", c.Density)
	}
	if c.GPS != 30 || c.HistoryLimit != 100 {
		t.Fatalf("gps/history = %d/%d", c.GPS, c.HistoryLimit)
	}
}
