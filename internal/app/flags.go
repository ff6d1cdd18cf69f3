package app

import (
	"flag"
	"fmt"
	"strconv"

	"lifesim/internal/pattern"
	"lifesim/internal/sims/life"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim          string
	Rows         int
	Cols         int
	Scale        int
	GPS          int
	Seed         int64
	Density      float64
	HistoryLimit int
	Pattern      string
	Load         string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := life.DefaultConfig()
	return &Config{
		Sim:     "life",
		Rows:    def.Rows,
		Cols:    def.Cols,
		Scale:   8,
		GPS:     def.GPS,
		Seed:    def.Seed,
		Density: def.Density,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Rows, "rows", c.Rows, "board height in cells")
	fs.IntVar(&c.Cols, "cols", c.Cols, "board width in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.GPS, "gps", c.GPS, "generations per second while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.Float64Var(&c.Density, "density", c.Density, "initial live-cell density (0 for an empty board)")
	fs.IntVar(&c.HistoryLimit, "history-limit", c.HistoryLimit, "keep at most this many generations (0 keeps all)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "preset to place at the centre instead of a random fill")
	fs.StringVar(&c.Load, "load", c.Load, "pattern document to import on start; the board takes its grid size unless -rows/-cols are set")
}

// FitDocument sizes the board to a document's grid unless -rows or -cols
// were set on fs. Non-positive document dimensions are ignored.
func (c *Config) FitDocument(fs *flag.FlagSet, size pattern.GridSize) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["rows"] && size.Rows > 0 {
		c.Rows = size.Rows
	}
	if !set["cols"] && size.Cols > 0 {
		c.Cols = size.Cols
	}
}

// Validate rejects configurations the viewer cannot open a window for.
func (c *Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 || c.Rows > 2000 || c.Cols > 2000 {
		return fmt.Errorf("board size %dx%d out of range 1..2000", c.Cols, c.Rows)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if c.GPS < 1 {
		return fmt.Errorf("gps must be positive, got %d", c.GPS)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.Pattern != "" {
		if _, err := life.LookupPreset(c.Pattern); err != nil {
			return err
		}
	}
	return nil
}

// Params renders the configuration as the key/value map sim factories take.
// A preset or a loaded document starts from an empty board.
func (c *Config) Params() map[string]string {
	density := c.Density
	if c.Pattern != "" || c.Load != "" {
		density = 0
	}
	return map[string]string{
		"rows":          strconv.Itoa(c.Rows),
		"cols":          strconv.Itoa(c.Cols),
		"density":       strconv.FormatFloat(density, 'g', -1, 64),
		"seed":          strconv.FormatInt(c.Seed, 10),
		"gps":           strconv.Itoa(c.GPS),
		"history_limit": strconv.Itoa(c.HistoryLimit),
	}
}
