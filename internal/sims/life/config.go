package life

import "strconv"

// Config controls board dimensions and seeding for a life session.
type Config struct {
	Rows int
	Cols int

	Density float64
	Seed    int64

	// GPS is the generations-per-second cadence used while running.
	GPS int
	// HistoryLimit bounds retained generations; zero keeps all of them.
	HistoryLimit int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:    60,
		Cols:    100,
		Density: 0.25,
		Seed:    42,
		GPS:     10,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["gps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GPS = parsed
		}
	}
	if v, ok := cfg["history_limit"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.HistoryLimit = parsed
		}
	}
	return c
}
