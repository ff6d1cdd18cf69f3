package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"lifesim/internal/pattern"
	"lifesim/internal/session"
	"lifesim/internal/sims/life"
	"lifesim/internal/stats"
)

func TestParseCoord(t *testing.T) {
	row, col, err := parseCoord(" 3, 14 ")
	if err != nil || row != 3 || col != 14 {
		t.Fatalf("parseCoord = %d,%d,%v", row, col, err)
	}
	for _, bad := range []string{"3", "a,1", "1,b", "1,2,3"} {
		if _, _, err := parseCoord(bad); err == nil {
			t.Errorf("parseCoord(%q) should fail", bad)
		}
	}
}

func TestCheckDimensions(t *testing.T) {
	if err := checkDimensions(10, 10); err != nil {
		t.Fatalf("10x10 rejected: %v", err)
	}
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {maxDimension + 1, 5}} {
		if err := checkDimensions(dims[0], dims[1]); err == nil {
			t.Errorf("%v should be rejected", dims)
		}
	}
}

func TestDriveStepsAndStops(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Rows, cfg.Cols = 12, 12
	s := session.New(cfg)
	s.PlaceCentered("blinker")

	if err := drive(context.Background(), s, 14, 0, 0); err != nil {
		t.Fatalf("drive: %v", err)
	}
	if s.Generation() != 14 || s.Running() {
		t.Fatalf("generation/running = %d/%v", s.Generation(), s.Running())
	}
	if s.Class() != stats.ClassOscillating {
		t.Fatalf("class = %q", s.Class())
	}
}

func TestDriveCancelledIsNotAnError(t *testing.T) {
	s := session.New(life.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := drive(ctx, s, 0, 5, 0); err != nil {
		t.Fatalf("cancelled run should end cleanly, got %v", err)
	}
}

func TestSweepDensityEmptyBoard(t *testing.T) {
	res, err := sweepDensity(context.Background(), 8, 8, 0, 12, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.MeanFinal != 0 || res.MeanEntropy != 0 {
		t.Fatalf("empty boards should stay empty: %+v", res)
	}
	if res.Classes[stats.ClassOscillating] != 2 {
		t.Fatalf("an unchanging board repeats its state, got %v", res.Classes)
	}
}

func TestWriteDocument(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Rows, cfg.Cols = 6, 6
	s := session.New(cfg)
	s.PlaceCentered("block")

	path := filepath.Join(t.TempDir(), "block.json")
	if err := writeDocument(path, s.Export()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := pattern.Parse(data)
	if err != nil {
		t.Fatalf("written document should parse: %v", err)
	}
	if len(doc.LivingCells) != 4 {
		t.Fatalf("cells = %v", doc.LivingCells)
	}
}

// execute runs RootCmd with args, starting from default flag values, and
// returns what the command wrote to its output.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(RootCmd)
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("lifesim %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if strings.HasSuffix(f.Value.Type(), "Slice") {
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeLargeBoard exports a 200x300 board holding a block near its far corner,
// well outside the default board.
func writeLargeBoard(t *testing.T) string {
	t.Helper()
	cfg := life.DefaultConfig()
	cfg.Rows, cfg.Cols = 200, 300
	s := session.New(cfg)
	if n, err := s.Place("block", 150, 250); err != nil || n != 4 {
		t.Fatalf("place block: %d, %v", n, err)
	}
	path := filepath.Join(t.TempDir(), "large.json")
	if err := writeDocument(path, s.Export()); err != nil {
		t.Fatal(err)
	}
	return path
}

func readDocument(t *testing.T, path string) pattern.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := pattern.Parse(data)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return doc
}

func TestRunFromKeepsDocumentSize(t *testing.T) {
	in := writeLargeBoard(t)
	out := filepath.Join(t.TempDir(), "out.json")
	execute(t, "run", "--from", in, "--gens", "1", "--out", out)

	doc := readDocument(t, out)
	if doc.GridSize != (pattern.GridSize{Rows: 200, Cols: 300}) {
		t.Fatalf("grid = %+v, want 200x300", doc.GridSize)
	}
	if doc.Generation != 1 || len(doc.LivingCells) != 4 {
		t.Fatalf("generation %d with %d cells, want 1 with 4", doc.Generation, len(doc.LivingCells))
	}
}

func TestRunFromRowsOverride(t *testing.T) {
	in := writeLargeBoard(t)
	out := filepath.Join(t.TempDir(), "out.json")
	execute(t, "run", "--from", in, "--rows", "160", "--gens", "2", "--out", out)

	doc := readDocument(t, out)
	if doc.GridSize != (pattern.GridSize{Rows: 160, Cols: 300}) {
		t.Fatalf("grid = %+v, want 160x300", doc.GridSize)
	}
	if len(doc.LivingCells) != 4 {
		t.Fatalf("cells = %v", doc.LivingCells)
	}
}

func TestImportCommandSizing(t *testing.T) {
	in := writeLargeBoard(t)
	cases := []struct {
		name          string
		args          []string
		rows, cols    int
		placed, drops int
	}{
		{"document size", nil, 200, 300, 4, 0},
		{"explicit size", []string{"--rows", "100", "--cols", "120"}, 100, 120, 0, 4},
		{"rows only", []string{"--rows", "152"}, 152, 300, 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := execute(t, append([]string{"import", in}, tc.args...)...)
			var report struct {
				Success bool `json:"success"`
				Placed  int  `json:"placed"`
				Dropped int  `json:"dropped"`
				Rows    int  `json:"rows"`
				Cols    int  `json:"cols"`
			}
			if err := json.Unmarshal([]byte(out), &report); err != nil {
				t.Fatalf("report %q: %v", out, err)
			}
			if !report.Success || report.Rows != tc.rows || report.Cols != tc.cols {
				t.Fatalf("report = %+v, want %dx%d", report, tc.rows, tc.cols)
			}
			if report.Placed != tc.placed || report.Dropped != tc.drops {
				t.Fatalf("placed/dropped = %d/%d, want %d/%d", report.Placed, report.Dropped, tc.placed, tc.drops)
			}
		})
	}
}
