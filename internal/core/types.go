package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// StepResult reports the events produced by a single generation advance.
type StepResult struct {
	Births int
	Deaths int
}

// Frame is an immutable snapshot of a generation handed from the engine to
// the statistics and history consumers. Cells is owned by the Frame and must
// not be written after construction.
type Frame struct {
	Generation int
	Rows, Cols int
	Cells      []uint8
	StepResult
}

// Sim defines the minimal contract the viewer needs from a running automaton.
type Sim interface {
	Name() string
	Size() Size
	Reset()
	Step() StepResult
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
