// Package stats derives population, entropy and stability metrics from the
// sequence of generations produced by the life engine.
package stats

import (
	"math"
	"slices"

	"lifesim/internal/core"
)

// Class is the stability classification of the current generation.
type Class string

const (
	ClassNew         Class = "New"
	ClassOscillating Class = "Oscillating"
	ClassStillLife   Class = "Still Life"
	ClassStable      Class = "Stable"
	ClassEvolving    Class = "Evolving"
)

const (
	// classifyAfter is the generation after which classification starts.
	classifyAfter = 10
	// oscillationThreshold is the repeat streak above which a board oscillates.
	oscillationThreshold = 3
)

// Sample is the per-generation statistics record.
type Sample struct {
	Generation int     `json:"generation"`
	Population int     `json:"population"`
	Entropy    float64 `json:"entropy"`
	Births     int     `json:"births"`
	Deaths     int     `json:"deaths"`
}

// Summary aggregates the tracker state for export and reporting.
type Summary struct {
	Generation        int     `json:"generation"`
	Population        int     `json:"population"`
	MaxPopulation     int     `json:"maxPopulation"`
	AveragePopulation float64 `json:"averagePopulation"`
	Entropy           float64 `json:"entropy"`
	BirthRate         float64 `json:"birthRate"`
	DeathRate         float64 `json:"deathRate"`
	Class             Class   `json:"class"`
	Samples           int     `json:"samples"`
}

// Entropy returns the binary Shannon entropy of the live fraction of a board.
// Empty and full boards carry zero entropy.
func Entropy(population, total int) float64 {
	if total <= 0 || population <= 0 || population >= total {
		return 0
	}
	p := float64(population) / float64(total)
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

// Tracker consumes frames and keeps one Sample per recorded generation.
type Tracker struct {
	limit     int
	samples   []Sample
	window    *Window
	stability int
	class     Class
	maxPop    int
}

// NewTracker returns a tracker retaining at most limit samples; zero keeps all.
func NewTracker(limit int) *Tracker {
	return &Tracker{limit: limit, window: NewWindow(WindowSize), class: ClassNew}
}

// Observe records the statistics of a frame and updates the classification.
// A frame at or before the latest recorded generation first drops the samples
// it supersedes, which happens when stepping after a rewind.
func (t *Tracker) Observe(f core.Frame) Sample {
	if n := len(t.samples); n > 0 && f.Generation <= t.samples[n-1].Generation {
		t.truncate(f.Generation)
		t.window.Reset()
		t.stability = 0
	}

	pop := 0
	for _, v := range f.Cells {
		if v == core.Alive {
			pop++
		}
	}
	s := Sample{
		Generation: f.Generation,
		Population: pop,
		Entropy:    Entropy(pop, f.Rows*f.Cols),
		Births:     f.Births,
		Deaths:     f.Deaths,
	}

	if t.window.Push(f.Rows, f.Cols, f.Cells) {
		t.stability++
	} else {
		t.stability = 0
	}

	prevPop := pop
	if n := len(t.samples); n > 0 {
		prevPop = t.samples[n-1].Population
	}
	t.class = classify(f.Generation, t.stability, pop, prevPop, f.Births, f.Deaths)

	t.samples = append(t.samples, s)
	if t.limit > 0 && len(t.samples) > t.limit {
		evicted := t.samples[:len(t.samples)-t.limit]
		recompute := slices.ContainsFunc(evicted, func(e Sample) bool { return e.Population >= t.maxPop })
		t.samples = append(t.samples[:0], t.samples[len(t.samples)-t.limit:]...)
		if recompute {
			t.recomputeMax()
			return s
		}
	}
	t.maxPop = max(t.maxPop, pop)
	return s
}

func classify(generation, stability, pop, prevPop, births, deaths int) Class {
	if generation <= classifyAfter {
		return ClassNew
	}
	delta := pop - prevPop
	switch {
	case stability > oscillationThreshold:
		return ClassOscillating
	case delta == 0 && births == 0 && deaths == 0:
		return ClassStillLife
	case delta > -2 && delta < 2:
		return ClassStable
	}
	return ClassEvolving
}

func (t *Tracker) truncate(generation int) {
	i := len(t.samples)
	for i > 0 && t.samples[i-1].Generation >= generation {
		i--
	}
	t.samples = t.samples[:i]
	t.recomputeMax()
}

func (t *Tracker) recomputeMax() {
	t.maxPop = 0
	for _, s := range t.samples {
		t.maxPop = max(t.maxPop, s.Population)
	}
}

// RefreshEntropy recomputes the latest sample's entropy after a manual edit.
// Population, births and deaths of that sample are left as recorded.
func (t *Tracker) RefreshEntropy(population, total int) {
	if n := len(t.samples); n > 0 {
		t.samples[n-1].Entropy = Entropy(population, total)
	}
}

// Reset drops every sample and the stability state.
func (t *Tracker) Reset() {
	t.samples = t.samples[:0]
	t.window.Reset()
	t.stability = 0
	t.class = ClassNew
	t.maxPop = 0
}

// Len returns the number of recorded samples.
func (t *Tracker) Len() int { return len(t.samples) }

// Samples returns a copy of the recorded samples.
func (t *Tracker) Samples() []Sample { return append([]Sample(nil), t.samples...) }

// Latest returns the most recent sample.
func (t *Tracker) Latest() (Sample, bool) {
	if len(t.samples) == 0 {
		return Sample{}, false
	}
	return t.samples[len(t.samples)-1], true
}

// Class returns the current classification.
func (t *Tracker) Class() Class { return t.class }

// StabilityCounter returns the current repeat streak.
func (t *Tracker) StabilityCounter() int { return t.stability }

// MaxPopulation returns the largest population among retained samples.
func (t *Tracker) MaxPopulation() int { return t.maxPop }

// AveragePopulation returns the mean population over all retained samples.
func (t *Tracker) AveragePopulation() float64 {
	if len(t.samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range t.samples {
		sum += s.Population
	}
	return float64(sum) / float64(len(t.samples))
}

// Rates returns mean births and deaths per generation over retained samples.
func (t *Tracker) Rates() (births, deaths float64) {
	if len(t.samples) == 0 {
		return 0, 0
	}
	var b, d int
	for _, s := range t.samples {
		b += s.Births
		d += s.Deaths
	}
	n := float64(len(t.samples))
	return float64(b) / n, float64(d) / n
}

// Series returns the per-generation population, entropy, birth and death arrays.
func (t *Tracker) Series() (population []int, entropy []float64, births, deaths []int) {
	n := len(t.samples)
	population = make([]int, n)
	entropy = make([]float64, n)
	births = make([]int, n)
	deaths = make([]int, n)
	for i, s := range t.samples {
		population[i] = s.Population
		entropy[i] = s.Entropy
		births[i] = s.Births
		deaths[i] = s.Deaths
	}
	return population, entropy, births, deaths
}

// Summary aggregates the tracker state.
func (t *Tracker) Summary() Summary {
	sum := Summary{
		MaxPopulation:     t.maxPop,
		AveragePopulation: t.AveragePopulation(),
		Class:             t.class,
		Samples:           len(t.samples),
	}
	sum.BirthRate, sum.DeathRate = t.Rates()
	if s, ok := t.Latest(); ok {
		sum.Generation = s.Generation
		sum.Population = s.Population
		sum.Entropy = s.Entropy
	}
	return sum
}
