// Package history keeps per-generation snapshots of the cell matrix for time travel.
package history

import "lifesim/internal/core"

// Policy bounds how many generations the store retains.
type Policy struct {
	// Limit is the maximum number of records kept; zero means unbounded.
	Limit int
}

// Record is an immutable snapshot of a generation's cell matrix.
type Record struct {
	Generation int
	Rows, Cols int
	cells      []uint8
}

// Cells returns a copy of the stored matrix.
func (r Record) Cells() []uint8 { return append([]uint8(nil), r.cells...) }

// Population counts live cells in the snapshot.
func (r Record) Population() int {
	n := 0
	for _, v := range r.cells {
		if v == core.Alive {
			n++
		}
	}
	return n
}

// Store is an append-only sequence of records indexed by generation. With a
// limit set, the oldest records are evicted and only a suffix of generations
// remains addressable.
type Store struct {
	policy  Policy
	records []Record
}

// New returns an empty store.
func New(p Policy) *Store {
	if p.Limit < 0 {
		p.Limit = 0
	}
	return &Store{policy: p}
}

// Save appends a deep copy of the frame's matrix. Saving a generation at or
// before the newest record first drops the records it supersedes.
func (s *Store) Save(f core.Frame) {
	if n := len(s.records); n > 0 && f.Generation <= s.records[n-1].Generation {
		s.truncate(f.Generation)
	}
	s.records = append(s.records, Record{
		Generation: f.Generation,
		Rows:       f.Rows,
		Cols:       f.Cols,
		cells:      append([]uint8(nil), f.Cells...),
	})
	if s.policy.Limit > 0 && len(s.records) > s.policy.Limit {
		s.records = append(s.records[:0], s.records[len(s.records)-s.policy.Limit:]...)
	}
}

func (s *Store) truncate(generation int) {
	i := len(s.records)
	for i > 0 && s.records[i-1].Generation >= generation {
		i--
	}
	clear(s.records[i:])
	s.records = s.records[:i]
}

// At returns the record for a generation, if it is retained.
func (s *Store) At(generation int) (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	i := generation - s.records[0].Generation
	if i < 0 || i >= len(s.records) {
		return Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of retained records.
func (s *Store) Len() int { return len(s.records) }

// Bounds returns the first and last retained generations.
func (s *Store) Bounds() (first, last int, ok bool) {
	if len(s.records) == 0 {
		return 0, 0, false
	}
	return s.records[0].Generation, s.records[len(s.records)-1].Generation, true
}

// Policy returns the retention policy.
func (s *Store) Policy() Policy { return s.policy }

// Reset drops every record.
func (s *Store) Reset() {
	clear(s.records)
	s.records = s.records[:0]
}
