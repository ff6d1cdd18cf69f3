package core

// Cell values stored in a Grid.
const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

const (
	// MaxActivity caps the per-cell activity track.
	MaxActivity = 10.0
	// ActivityBump is added to a cell's activity on a birth, death or edit.
	ActivityBump = 1.0
	// ActivityDecay is subtracted from every cell's activity once per step.
	ActivityDecay = 0.1
)

// Grid stores the cell matrix of a bounded board together with the parallel
// age and activity tracks. All three slices are row-major and always share the
// same dimensions.
type Grid struct {
	Rows, Cols int

	cells    []uint8
	age      []int
	activity []float64
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	n := rows * cols
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		cells:    make([]uint8, n),
		age:      make([]int, n),
		activity: make([]float64, n),
	}
}

// Cells exposes the backing cell slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.cells }

// Ages exposes the backing age slice.
func (g *Grid) Ages() []int { return g.age }

// Activity exposes the backing activity slice.
func (g *Grid) Activity() []float64 { return g.activity }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Index returns the linear slice index for coordinates (row, col).
func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether (row, col) lies on the board. Edges are hard; there
// is no wrapping.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Alive reports whether the cell at (row, col) is alive. Off-board cells are dead.
func (g *Grid) Alive(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[g.Index(row, col)] == Alive
}

// CountNeighbors sums the live cells among the eight in-bounds Moore neighbors
// of (row, col).
func (g *Grid) CountNeighbors(row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.Rows {
			continue
		}
		base := r * g.Cols
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			c := col + dc
			if c < 0 || c >= g.Cols {
				continue
			}
			n += int(g.cells[base+c])
		}
	}
	return n
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.cells {
		if v == Alive {
			n++
		}
	}
	return n
}

// Bump raises the activity of the cell at idx, capped at MaxActivity.
func (g *Grid) Bump(idx int) {
	g.activity[idx] = bumpActivity(g.activity[idx])
}

func bumpActivity(v float64) float64 {
	v += ActivityBump
	if v > MaxActivity {
		return MaxActivity
	}
	return v
}

// DecayActivity lowers an activity value by one step, floored at zero.
func DecayActivity(v float64) float64 {
	v -= ActivityDecay
	if v < 0 {
		return 0
	}
	return v
}

// BumpActivity raises an activity value by one event, capped at MaxActivity.
func BumpActivity(v float64) float64 { return bumpActivity(v) }

// Set writes the cell at (row, col), resetting its age and bumping its
// activity. Off-board writes are ignored. It reports whether a write happened.
func (g *Grid) Set(row, col int, alive bool) bool {
	if !g.InBounds(row, col) {
		return false
	}
	idx := g.Index(row, col)
	if alive {
		g.cells[idx] = Alive
	} else {
		g.cells[idx] = Dead
	}
	g.age[idx] = 0
	g.Bump(idx)
	return true
}

// Mark sets the cell at (row, col) alive with zero age and leaves its activity
// alone. Off-board writes are ignored.
func (g *Grid) Mark(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	idx := g.Index(row, col)
	g.cells[idx] = Alive
	g.age[idx] = 0
	return true
}

// Clear kills every cell and zeroes the age and activity tracks.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
		g.age[i] = 0
		g.activity[i] = 0
	}
}

// Snapshot returns a copy of the cell matrix.
func (g *Grid) Snapshot() []uint8 {
	return append([]uint8(nil), g.cells...)
}

// Clone returns a deep copy of all three tracks.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Rows:     g.Rows,
		Cols:     g.Cols,
		cells:    append([]uint8(nil), g.cells...),
		age:      append([]int(nil), g.age...),
		activity: append([]float64(nil), g.activity...),
	}
}

// Resized returns a new grid of the requested size. The overlapping rectangle
// is copied cell-for-cell across all three tracks; newly exposed cells are dead
// with zero age and activity.
func (g *Grid) Resized(rows, cols int) *Grid {
	out := NewGrid(rows, cols)
	overlapRows := min(g.Rows, out.Rows)
	overlapCols := min(g.Cols, out.Cols)
	for r := 0; r < overlapRows; r++ {
		src := r * g.Cols
		dst := r * out.Cols
		copy(out.cells[dst:dst+overlapCols], g.cells[src:src+overlapCols])
		copy(out.age[dst:dst+overlapCols], g.age[src:src+overlapCols])
		copy(out.activity[dst:dst+overlapCols], g.activity[src:src+overlapCols])
	}
	return out
}

// LiveCells lists the (row, col) coordinates of every live cell in row-major order.
func (g *Grid) LiveCells() [][2]int {
	var out [][2]int
	for i, v := range g.cells {
		if v == Alive {
			out = append(out, [2]int{i / g.Cols, i % g.Cols})
		}
	}
	return out
}
