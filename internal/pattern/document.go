// Package pattern converts the living-cell set of a board to and from the
// portable JSON pattern document.
package pattern

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Version is the document format version written by Export.
const Version = "1.0"

// GridSize carries the board dimensions of an exported pattern.
type GridSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Statistics is the summary block of a pattern document.
type Statistics struct {
	MaxPopulation     int `json:"maxPopulation"`
	CurrentPopulation int `json:"currentPopulation"`
	TotalGenerations  int `json:"totalGenerations"`
}

// Document is the interchange format. LivingCells is a set; its order carries
// no meaning.
type Document struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GridSize    GridSize   `json:"gridSize"`
	Generation  int        `json:"generation"`
	LivingCells [][2]int   `json:"livingCells"`
	Statistics  Statistics `json:"statistics"`
	ExportDate  string     `json:"exportDate"`
	Version     string     `json:"version"`
}

// Snapshot is the engine state an export is built from.
type Snapshot struct {
	Rows, Cols    int
	Generation    int
	LivingCells   [][2]int
	MaxPopulation int
	Generations   int
}

// Export builds a document from a snapshot, stamping it with now.
func Export(s Snapshot, now time.Time) Document {
	cells := make([][2]int, len(s.LivingCells))
	copy(cells, s.LivingCells)
	now = now.UTC()
	return Document{
		Name:        "Pattern " + now.Format("2006-01-02 15:04:05"),
		Description: fmt.Sprintf("Exported at generation %d with %d living cells", s.Generation, len(cells)),
		GridSize:    GridSize{Rows: s.Rows, Cols: s.Cols},
		Generation:  s.Generation,
		LivingCells: cells,
		Statistics: Statistics{
			MaxPopulation:     s.MaxPopulation,
			CurrentPopulation: len(cells),
			TotalGenerations:  s.Generations,
		},
		ExportDate: now.Format(time.RFC3339Nano),
		Version:    Version,
	}
}

// Marshal renders a document as indented JSON.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ImportError describes a document that failed validation.
type ImportError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Field == "" {
		return "import: " + e.Reason
	}
	return fmt.Sprintf("import: %s: %s", e.Field, e.Reason)
}

func (e *ImportError) Unwrap() error { return e.Err }

// IsImportError reports whether err carries an ImportError.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// rawDocument mirrors Document but defers decoding of livingCells so its shape
// can be validated.
type rawDocument struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	GridSize    GridSize        `json:"gridSize"`
	Generation  int             `json:"generation"`
	LivingCells json.RawMessage `json:"livingCells"`
	Statistics  Statistics      `json:"statistics"`
	ExportDate  string          `json:"exportDate"`
	Version     string          `json:"version"`
}

// Parse decodes and validates the text form of a document.
func Parse(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &ImportError{Reason: "invalid document", Err: err}
	}
	cells, err := parseCells(raw.LivingCells)
	if err != nil {
		return Document{}, err
	}
	gen := raw.Generation
	if gen < 0 {
		gen = 0
	}
	return Document{
		Name:        raw.Name,
		Description: raw.Description,
		GridSize:    raw.GridSize,
		Generation:  gen,
		LivingCells: cells,
		Statistics:  raw.Statistics,
		ExportDate:  raw.ExportDate,
		Version:     raw.Version,
	}, nil
}

func parseCells(raw json.RawMessage) ([][2]int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ImportError{Field: "livingCells", Reason: "missing"}
	}
	if trimmed[0] != '[' {
		return nil, &ImportError{Field: "livingCells", Reason: "must be an array"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &ImportError{Field: "livingCells", Reason: "must be an array", Err: err}
	}
	cells := make([][2]int, 0, len(items))
	for i, item := range items {
		var pair []json.RawMessage
		if err := json.Unmarshal(item, &pair); err != nil || len(pair) != 2 {
			return nil, &ImportError{
				Field:  fmt.Sprintf("livingCells[%d]", i),
				Reason: "must be a [row, col] pair",
				Err:    err,
			}
		}
		var rc [2]int
		for j := range pair {
			if err := json.Unmarshal(pair[j], &rc[j]); err != nil {
				return nil, &ImportError{
					Field:  fmt.Sprintf("livingCells[%d][%d]", i, j),
					Reason: "must be an integer",
					Err:    err,
				}
			}
		}
		cells = append(cells, rc)
	}
	return cells, nil
}

// Decode accepts a Document, its text form (string or []byte), or a parsed
// generic object such as map[string]any, and returns a validated Document.
func Decode(v any) (Document, error) {
	switch d := v.(type) {
	case Document:
		return Parse(mustJSON(d))
	case *Document:
		if d == nil {
			return Document{}, &ImportError{Reason: "nil document"}
		}
		return Parse(mustJSON(*d))
	case []byte:
		return Parse(d)
	case string:
		return Parse([]byte(d))
	case json.RawMessage:
		return Parse(d)
	case nil:
		return Document{}, &ImportError{Reason: "nil document"}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, &ImportError{Reason: "unsupported document value", Err: err}
	}
	return Parse(data)
}

func mustJSON(d Document) []byte {
	data, _ := json.Marshal(d)
	return data
}

// Result reports the outcome of importing a document into a session.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Placed  int    `json:"placed"`
	Dropped int    `json:"dropped"`
}

// Failed wraps an error into an unsuccessful Result.
func Failed(err error) Result {
	return Result{Success: false, Message: err.Error(), Err: err}
}
