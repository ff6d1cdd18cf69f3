package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lifesim/internal/pattern"
	"lifesim/internal/session"
	"lifesim/internal/sims/life"
)

const maxDimension = 2000

func addBoardFlags(cmd *cobra.Command) {
	def := life.DefaultConfig()
	cmd.Flags().Int("rows", def.Rows, "Board rows")
	cmd.Flags().Int("cols", def.Cols, "Board columns")
	cmd.Flags().Float64("density", def.Density, "Random fill density in [0,1]; ignored when --pattern or --from is set")
	cmd.Flags().Int64("seed", def.Seed, "Seed for random fills")
	cmd.Flags().StringP("pattern", "p", "", "Preset pattern to place instead of a random fill")
	cmd.Flags().String("at", "", "Top-left row,col for --pattern (default: centered)")
	cmd.Flags().Int("history-limit", 0, "Keep at most this many generations (0 keeps all)")
	cmd.Flags().String("from", "", "Start from a pattern document file ('-' for stdin); the board takes its grid size unless --rows/--cols are given")
}

func boardConfig(cmd *cobra.Command) (life.Config, error) {
	cfg := life.DefaultConfig()
	cfg.Rows, _ = cmd.Flags().GetInt("rows")
	cfg.Cols, _ = cmd.Flags().GetInt("cols")
	cfg.Density, _ = cmd.Flags().GetFloat64("density")
	cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	cfg.HistoryLimit, _ = cmd.Flags().GetInt("history-limit")

	if err := checkDimensions(cfg.Rows, cfg.Cols); err != nil {
		return cfg, err
	}
	if cfg.Density < 0 || cfg.Density > 1 {
		return cfg, fmt.Errorf("density %v out of range [0,1]", cfg.Density)
	}
	if cfg.HistoryLimit < 0 {
		return cfg, fmt.Errorf("history limit must not be negative")
	}
	return cfg, nil
}

func checkDimensions(rows, cols int) error {
	if rows < 1 || rows > maxDimension || cols < 1 || cols > maxDimension {
		return fmt.Errorf("board %dx%d out of range (1..%d)", rows, cols, maxDimension)
	}
	return nil
}

// fitDocument sizes cfg to a document's grid, keeping --rows/--cols when they
// were given explicitly. A document grid outside 1..maxDimension leaves the
// configured size in place.
func fitDocument(cmd *cobra.Command, cfg life.Config, doc pattern.Document) (life.Config, error) {
	rows, cols := doc.GridSize.Rows, doc.GridSize.Cols
	if checkDimensions(rows, cols) != nil {
		rows, cols = cfg.Rows, cfg.Cols
	}
	if !cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if !cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	return cfg, checkDimensions(cfg.Rows, cfg.Cols)
}

// newBoard builds a session seeded from the board flags: a pattern document
// when --from is set, a preset when --pattern is set, otherwise a random fill.
func newBoard(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := boardConfig(cmd)
	if err != nil {
		return nil, err
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		return loadBoard(cmd, cfg, from)
	}
	s := session.New(cfg)

	name, _ := cmd.Flags().GetString("pattern")
	if name == "" {
		s.Randomize(cfg.Density)
		return s, nil
	}
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		_, err = s.PlaceCentered(name)
		return s, err
	}
	row, col, err := parseCoord(at)
	if err != nil {
		return nil, err
	}
	_, err = s.Place(name, row, col)
	return s, err
}

func loadBoard(cmd *cobra.Command, cfg life.Config, path string) (*session.Session, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern: %w", err)
	}
	doc, err := pattern.Parse(data)
	if err != nil {
		return nil, err
	}
	if cfg, err = fitDocument(cmd, cfg, doc); err != nil {
		return nil, err
	}
	s := session.New(cfg)
	res := s.Import(doc)
	if !res.Success {
		return nil, res.Err
	}
	if res.Dropped > 0 {
		slog.Warn("cells outside the board were dropped", "dropped", res.Dropped, "rows", s.Rows(), "cols", s.Cols())
	}
	return s, nil
}

func parseCoord(v string) (int, int, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinate %q must be row,col", v)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: %w", v, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: %w", v, err)
	}
	return row, col, nil
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
