// Package session wires the life engine to its statistics tracker, history
// store and pattern codec, and exposes the surface a front end drives.
//
// A Session is not safe for concurrent use. Every mutating call is expected
// to come from a single goroutine; front ends that share a Session across
// goroutines must add their own locking.
package session

import (
	"fmt"
	"strconv"
	"time"

	"lifesim/internal/core"
	"lifesim/internal/history"
	"lifesim/internal/pattern"
	"lifesim/internal/sims/life"
	"lifesim/internal/stats"
)

// Session owns the live board and the derived records of one simulation.
type Session struct {
	cfg     life.Config
	engine  *life.Engine
	tracker *stats.Tracker
	history *history.Store
	rng     *core.RNG
	now     func() time.Time
}

// New returns a session with an empty board recorded as generation zero.
func New(cfg life.Config) *Session {
	s := &Session{
		cfg:     cfg,
		engine:  life.New(cfg.Rows, cfg.Cols),
		tracker: stats.NewTracker(cfg.HistoryLimit),
		history: history.New(history.Policy{Limit: cfg.HistoryLimit}),
		rng:     core.NewRNG(cfg.Seed),
		now:     time.Now,
	}
	s.record(core.StepResult{})
	return s
}

// record hands the current generation to the tracker and the history store.
func (s *Session) record(res core.StepResult) stats.Sample {
	f := s.engine.Frame(res)
	sample := s.tracker.Observe(f)
	s.history.Save(f)
	return sample
}

// Name returns the simulation identifier.
func (s *Session) Name() string { return "life" }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size {
	g := s.engine.Grid()
	return core.Size{W: g.Cols, H: g.Rows}
}

// Rows returns the number of board rows.
func (s *Session) Rows() int { return s.engine.Grid().Rows }

// Cols returns the number of board columns.
func (s *Session) Cols() int { return s.engine.Grid().Cols }

// Cells exposes the live cell matrix. Readers must not modify it.
func (s *Session) Cells() []uint8 { return s.engine.Grid().Cells() }

// Ages exposes the live age track. Readers must not modify it.
func (s *Session) Ages() []int { return s.engine.Grid().Ages() }

// Activity exposes the live activity track. Readers must not modify it.
func (s *Session) Activity() []float64 { return s.engine.Grid().Activity() }

// Generation returns the current generation counter.
func (s *Session) Generation() int { return s.engine.Generation() }

// Population counts live cells on the current board.
func (s *Session) Population() int { return s.engine.Grid().Population() }

// Step advances exactly one generation, whether running or idle.
func (s *Session) Step() core.StepResult {
	res := s.engine.Step()
	s.record(res)
	return res
}

// advance steps once and packages the outcome for a Runner.
func (s *Session) advance() StepEvent {
	res := s.engine.Step()
	sample := s.record(res)
	return StepEvent{
		Generation: s.engine.Generation(),
		StepResult: res,
		Sample:     sample,
		Class:      s.tracker.Class(),
	}
}

// Start marks the session as running.
func (s *Session) Start() { s.engine.Start() }

// Stop marks the session as idle. A tick already scheduled observes the flag
// and does nothing.
func (s *Session) Stop() { s.engine.Stop() }

// Running reports whether the session is marked as running.
func (s *Session) Running() bool { return s.engine.Running() }

// Toggle flips a cell in place without advancing the generation. The latest
// sample's entropy is recomputed; its population, births and deaths are not.
func (s *Session) Toggle(row, col int) bool {
	if !s.engine.Toggle(row, col) {
		return false
	}
	g := s.engine.Grid()
	s.tracker.RefreshEntropy(g.Population(), g.Len())
	return true
}

// Place stamps a named preset with its top-left corner at (row, col).
// It behaves like a series of manual edits.
func (s *Session) Place(name string, row, col int) (int, error) {
	p, err := life.LookupPreset(name)
	if err != nil {
		return 0, err
	}
	placed := s.engine.Place(p, row, col)
	g := s.engine.Grid()
	s.tracker.RefreshEntropy(g.Population(), g.Len())
	return placed, nil
}

// PlaceCentered stamps a named preset in the middle of the board.
func (s *Session) PlaceCentered(name string) (int, error) {
	p, err := life.LookupPreset(name)
	if err != nil {
		return 0, err
	}
	placed := s.engine.PlaceCentered(p)
	g := s.engine.Grid()
	s.tracker.RefreshEntropy(g.Population(), g.Len())
	return placed, nil
}

// Resize changes the board to cols x rows, keeping the overlapping rectangle.
// Generation, history and statistics are untouched. Non-positive dimensions
// are ignored; range checks beyond that belong to the caller.
func (s *Session) Resize(cols, rows int) bool {
	if rows <= 0 || cols <= 0 {
		return false
	}
	s.engine.Resize(rows, cols)
	return true
}

// Reset stops the session, clears the board and all records, and records the
// empty board as generation zero.
func (s *Session) Reset() {
	s.engine.Stop()
	s.engine.Clear()
	s.tracker.Reset()
	s.history.Reset()
	s.record(core.StepResult{})
}

// Randomize restarts from generation zero with cells alive at the given density.
func (s *Session) Randomize(density float64) {
	s.engine.Randomize(s.rng, density)
	s.tracker.Reset()
	s.history.Reset()
	s.record(core.StepResult{})
}

// Reseed replaces the random source used by Randomize.
func (s *Session) Reseed(seed int64) {
	s.cfg.Seed = seed
	s.rng = core.NewRNG(seed)
}

// GoToGeneration restores a stored generation's cell matrix and sets the
// generation counter. Age and activity tracks are not restored. Generations
// outside the retained history are ignored.
func (s *Session) GoToGeneration(n int) bool {
	rec, ok := s.history.At(n)
	if !ok {
		return false
	}
	s.engine.Restore(rec.Rows, rec.Cols, rec.Cells(), rec.Generation)
	return true
}

// HistoryLen returns the number of retained generations.
func (s *Session) HistoryLen() int { return s.history.Len() }

// HistoryBounds returns the first and last retained generations.
func (s *Session) HistoryBounds() (first, last int) {
	first, last, _ = s.history.Bounds()
	return first, last
}

// Samples returns a copy of the statistics history.
func (s *Session) Samples() []stats.Sample { return s.tracker.Samples() }

// Series returns the population, entropy, birth and death arrays.
func (s *Session) Series() (population []int, entropy []float64, births, deaths []int) {
	return s.tracker.Series()
}

// Class returns the current stability classification.
func (s *Session) Class() stats.Class { return s.tracker.Class() }

// Summary aggregates the statistics.
func (s *Session) Summary() stats.Summary { return s.tracker.Summary() }

// Config returns the configuration the session was built with.
func (s *Session) Config() life.Config { return s.cfg }

// Export builds a pattern document of the current board.
func (s *Session) Export() pattern.Document {
	g := s.engine.Grid()
	return pattern.Export(pattern.Snapshot{
		Rows:          g.Rows,
		Cols:          g.Cols,
		Generation:    s.engine.Generation(),
		LivingCells:   g.LiveCells(),
		MaxPopulation: s.tracker.MaxPopulation(),
		Generations:   s.tracker.Len(),
	}, s.now())
}

// Import loads a document given as a pattern.Document, its JSON text, or a
// parsed generic object. Validation failures leave the session untouched and
// are reported in the Result; Import never panics on bad input.
//
// On success the session is stopped and cleared, every in-bounds listed cell
// is set alive with zero activity (others are dropped), the generation counter is set to the
// document's generation and that state is recorded as the first history entry.
func (s *Session) Import(v any) pattern.Result {
	doc, err := pattern.Decode(v)
	if err != nil {
		return pattern.Failed(err)
	}

	s.engine.Stop()
	s.engine.Clear()
	s.tracker.Reset()
	s.history.Reset()

	placed, dropped := 0, 0
	for _, rc := range doc.LivingCells {
		if s.engine.Plant(rc[0], rc[1]) {
			placed++
			continue
		}
		dropped++
	}
	s.engine.SetGeneration(doc.Generation)
	s.record(core.StepResult{})

	return pattern.Result{
		Success: true,
		Message: fmt.Sprintf("imported %d cells at generation %d", placed, doc.Generation),
		Placed:  placed,
		Dropped: dropped,
	}
}

// Parameters exposes the current read-only values for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	sum := s.tracker.Summary()
	first, last := s.HistoryBounds()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				intParam("rows", "Rows", s.Rows()),
				intParam("cols", "Cols", s.Cols()),
				intParam("generation", "Generation", s.Generation()),
				boolParam("running", "Running", s.Running()),
			},
		},
		{
			Name: "Statistics",
			Params: []core.Parameter{
				intParam("population", "Population", s.Population()),
				intParam("max_population", "Max population", sum.MaxPopulation),
				floatParam("avg_population", "Avg population", sum.AveragePopulation),
				floatParam("entropy", "Entropy", sum.Entropy),
				floatParam("birth_rate", "Births/gen", sum.BirthRate),
				floatParam("death_rate", "Deaths/gen", sum.DeathRate),
				textParam("class", "Class", string(sum.Class)),
			},
		},
		{
			Name: "History",
			Params: []core.Parameter{
				intParam("history_first", "First", first),
				intParam("history_last", "Last", last),
				intParam("history_len", "Stored", s.HistoryLen()),
				intParam("history_limit", "Limit", s.history.Policy().Limit),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 3, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeText, Value: value}
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		c := life.FromMap(cfg)
		s := New(c)
		s.Randomize(c.Density)
		return s
	})
}
