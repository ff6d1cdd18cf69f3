package app

import (
	"flag"
	"testing"

	"lifesim/internal/pattern"
	"lifesim/internal/sims/life"
)

func parseFlags(t *testing.T, args ...string) (*Config, *flag.FlagSet) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cfg, fs
}

func TestConfigParams(t *testing.T) {
	cfg, _ := parseFlags(t, "-rows", "20", "-cols", "30", "-gps", "5", "-density", "0.4", "-history-limit", "50")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	lc := life.FromMap(cfg.Params())
	if lc.Rows != 20 || lc.Cols != 30 || lc.GPS != 5 || lc.Density != 0.4 || lc.HistoryLimit != 50 || lc.Seed != cfg.Seed {
		t.Fatalf("life config = %+v", lc)
	}
}

func TestConfigParamsEmptyBoardForPattern(t *testing.T) {
	cfg, _ := parseFlags(t, "-pattern", "glider")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if d := life.FromMap(cfg.Params()).Density; d != 0 {
		t.Fatalf("density = %v, want 0 with a preset", d)
	}
}

func TestFitDocument(t *testing.T) {
	size := pattern.GridSize{Rows: 200, Cols: 300}

	cfg, fs := parseFlags(t, "-load", "board.json")
	cfg.FitDocument(fs, size)
	if cfg.Rows != 200 || cfg.Cols != 300 {
		t.Fatalf("board = %dx%d, want 200x300", cfg.Rows, cfg.Cols)
	}

	cfg, fs = parseFlags(t, "-load", "board.json", "-cols", "120")
	cfg.FitDocument(fs, size)
	if cfg.Rows != 200 || cfg.Cols != 120 {
		t.Fatalf("board = %dx%d, want 200x120", cfg.Rows, cfg.Cols)
	}

	cfg, fs = parseFlags(t)
	cfg.FitDocument(fs, pattern.GridSize{})
	if def := life.DefaultConfig(); cfg.Rows != def.Rows || cfg.Cols != def.Cols {
		t.Fatalf("missing grid size should keep defaults, got %dx%d", cfg.Rows, cfg.Cols)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"too wide", func(c *Config) { c.Cols = 2001 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"zero gps", func(c *Config) { c.GPS = 0 }},
		{"negative history", func(c *Config) { c.HistoryLimit = -1 }},
		{"unknown pattern", func(c *Config) { c.Pattern = "spaceship-9000" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.edit(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
