package stats

import (
	"bytes"
	"hash/fnv"
)

// WindowSize is the number of recent grid states kept for repeat detection.
const WindowSize = 10

type windowEntry struct {
	sum        uint64
	rows, cols int
	cells      []uint8
}

// Window is a rolling buffer of recent grid states. Entries are compared by
// fingerprint first and confirmed byte-for-byte, so matches are exact.
type Window struct {
	size    int
	entries []windowEntry
}

// NewWindow returns a window holding up to size states.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = WindowSize
	}
	return &Window{size: size}
}

// Fingerprint hashes a cell matrix together with its dimensions.
func Fingerprint(rows, cols int, cells []uint8) uint64 {
	h := fnv.New64a()
	h.Write([]byte{
		byte(rows), byte(rows >> 8), byte(rows >> 16), byte(rows >> 24),
		byte(cols), byte(cols >> 8), byte(cols >> 16), byte(cols >> 24),
	})
	h.Write(cells)
	return h.Sum64()
}

// Push appends a state, evicting the oldest when full, and reports whether an
// identical state is among the entries that were already present.
func (w *Window) Push(rows, cols int, cells []uint8) bool {
	e := windowEntry{
		sum:   Fingerprint(rows, cols, cells),
		rows:  rows,
		cols:  cols,
		cells: append([]uint8(nil), cells...),
	}
	w.entries = append(w.entries, e)
	if len(w.entries) > w.size {
		w.entries = append(w.entries[:0], w.entries[len(w.entries)-w.size:]...)
	}

	prev := w.entries[:len(w.entries)-1]
	for i := range prev {
		p := &prev[i]
		if p.sum == e.sum && p.rows == e.rows && p.cols == e.cols && bytes.Equal(p.cells, e.cells) {
			return true
		}
	}
	return false
}

// Len returns the number of states currently held.
func (w *Window) Len() int { return len(w.entries) }

// Reset empties the window.
func (w *Window) Reset() { w.entries = w.entries[:0] }
