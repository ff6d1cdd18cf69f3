package core

import "time"

// FixedStep gates simulation updates to a steady generations-per-second rate
// independent of the caller's frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
	maxBacklog  int
}

// NewFixedStep constructs a FixedStep controller targeting the given rate.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{now: time.Now, maxBacklog: 4}
	fs.SetRate(rate)
	return fs
}

// SetRate changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 10
	}
	f.step = time.Second / time.Duration(rate)
}

// Rate returns the current steps per second.
func (f *FixedStep) Rate() int {
	if f.step <= 0 {
		return 0
	}
	return int(time.Second / f.step)
}

// Interval returns the duration between steps.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops any accumulated time, e.g. after the simulation was paused.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// Due reports how many steps should run since the previous call. The backlog
// is capped so a stalled caller does not trigger a burst of generations.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
	}
	if n > f.maxBacklog {
		n = f.maxBacklog
		f.accumulator = 0
	}
	return n
}

// ShouldStep reports whether the simulation should advance by at least one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.Due() > 0
}
