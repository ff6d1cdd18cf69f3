package session

import (
	"context"
	"time"

	"lifesim/internal/core"
	"lifesim/internal/stats"
)

// StepEvent describes one generation advanced by a Runner.
type StepEvent struct {
	Generation int
	core.StepResult
	Sample stats.Sample
	Class  stats.Class
}

// Runner calls Step on a fixed cadence while its session is running. It is
// the only goroutine that touches the session for the duration of Run.
type Runner struct {
	s        *Session
	interval time.Duration
}

// NewRunner builds a runner advancing gps generations per second. A
// non-positive rate steps as fast as possible.
func NewRunner(s *Session, gps int) *Runner {
	r := &Runner{s: s}
	if gps > 0 {
		r.interval = time.Second / time.Duration(gps)
	}
	return r
}

// Interval returns the delay between steps.
func (r *Runner) Interval() time.Duration { return r.interval }

// Run steps the session until it goes idle, generations steps have been taken
// (zero means no limit), or ctx is done. The running flag is checked before
// every tick; a tick that finds the session idle ends the run. Each step is
// published on events when it is non-nil.
func (r *Runner) Run(ctx context.Context, generations int, events chan<- StepEvent) error {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for done := 0; generations <= 0 || done < generations; done++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if !r.s.Running() {
			return nil
		}
		ev := r.s.advance()
		if events == nil {
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.s.Stop()
	return nil
}
