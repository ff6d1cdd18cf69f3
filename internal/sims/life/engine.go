package life

import (
	"lifesim/internal/core"
)

// Engine implements Conway's Game of Life on a bounded board with hard edges.
// It owns the live grid; prior generations are never retained here.
type Engine struct {
	cur *core.Grid
	nxt *core.Grid

	generation int
	running    bool
}

// New returns an engine with an empty board of the provided dimensions.
func New(rows, cols int) *Engine {
	cur := core.NewGrid(rows, cols)
	return &Engine{cur: cur, nxt: core.NewGrid(cur.Rows, cur.Cols)}
}

// Grid exposes the live grid. Callers outside the engine must treat it as read-only.
func (e *Engine) Grid() *core.Grid { return e.cur }

// Generation returns the zero-based generation counter.
func (e *Engine) Generation() int { return e.generation }

// Running reports whether the engine is marked as running.
func (e *Engine) Running() bool { return e.running }

// Start marks the engine as running. Scheduling is the caller's job.
func (e *Engine) Start() { e.running = true }

// Stop marks the engine as idle.
func (e *Engine) Stop() { e.running = false }

// Step advances the board by one generation. The next state is computed into
// a separate buffer from the current one, then the buffers are swapped.
func (e *Engine) Step() core.StepResult {
	var res core.StepResult
	cur, nxt := e.cur, e.nxt
	cells, ages, act := cur.Cells(), cur.Ages(), cur.Activity()
	nCells, nAges, nAct := nxt.Cells(), nxt.Ages(), nxt.Activity()

	for r := 0; r < cur.Rows; r++ {
		for c := 0; c < cur.Cols; c++ {
			idx := r*cur.Cols + c
			neighbors := cur.CountNeighbors(r, c)
			alive := cells[idx] == core.Alive
			activity := act[idx]

			switch {
			case alive && (neighbors == 2 || neighbors == 3):
				nCells[idx] = core.Alive
				nAges[idx] = ages[idx] + 1
			case alive:
				nCells[idx] = core.Dead
				nAges[idx] = 0
				activity = core.BumpActivity(activity)
				res.Deaths++
			case neighbors == 3:
				nCells[idx] = core.Alive
				nAges[idx] = 0
				activity = core.BumpActivity(activity)
				res.Births++
			default:
				nCells[idx] = core.Dead
				nAges[idx] = 0
			}
			// bump first, then decay
			nAct[idx] = core.DecayActivity(activity)
		}
	}

	e.cur, e.nxt = nxt, cur
	e.generation++
	return res
}

// Frame snapshots the current cell matrix for downstream consumers.
func (e *Engine) Frame(res core.StepResult) core.Frame {
	return core.Frame{
		Generation: e.generation,
		Rows:       e.cur.Rows,
		Cols:       e.cur.Cols,
		Cells:      e.cur.Snapshot(),
		StepResult: res,
	}
}

// Toggle flips a single cell in place. Age resets to zero in both directions
// and activity is bumped. The generation counter is untouched. Off-board
// coordinates are ignored and reported as false.
func (e *Engine) Toggle(row, col int) bool {
	if !e.cur.InBounds(row, col) {
		return false
	}
	return e.cur.Set(row, col, !e.cur.Alive(row, col))
}

// Revive marks a cell alive without flipping it. Used for pattern placement.
func (e *Engine) Revive(row, col int) bool {
	return e.cur.Set(row, col, true)
}

// Plant marks a cell alive without counting it as an edit: age is zero and
// activity is not bumped. Used when loading documents.
func (e *Engine) Plant(row, col int) bool {
	return e.cur.Mark(row, col)
}

// Clear kills every cell and rewinds the generation counter to zero.
func (e *Engine) Clear() {
	e.cur.Clear()
	e.nxt.Clear()
	e.generation = 0
}

// Randomize clears the board and fills it at the given density.
func (e *Engine) Randomize(rng *core.RNG, density float64) {
	e.Clear()
	rng.FillDensity(e.cur.Cells(), density)
}

// Resize rebuilds the grid at the new dimensions, keeping the overlapping
// rectangle. The generation counter is untouched.
func (e *Engine) Resize(rows, cols int) {
	e.cur = e.cur.Resized(rows, cols)
	e.nxt = core.NewGrid(e.cur.Rows, e.cur.Cols)
}

// Restore replaces the cell matrix with a stored snapshot and sets the
// generation counter. Age and activity are not restored; ages of cells that
// the snapshot marks dead are zeroed so dead cells keep age zero.
func (e *Engine) Restore(rows, cols int, cells []uint8, generation int) {
	if rows != e.cur.Rows || cols != e.cur.Cols {
		e.Resize(rows, cols)
	}
	copy(e.cur.Cells(), cells)
	ages := e.cur.Ages()
	for i, v := range e.cur.Cells() {
		if v == core.Dead {
			ages[i] = 0
		}
	}
	e.generation = generation
}

// SetGeneration overrides the generation counter, e.g. after an import.
func (e *Engine) SetGeneration(generation int) {
	if generation < 0 {
		generation = 0
	}
	e.generation = generation
}
