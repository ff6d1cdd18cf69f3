package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerStepsRequestedGenerations(t *testing.T) {
	s := newTestSession(t, 10, 10)
	s.PlaceCentered("blinker")
	s.Start()

	events := make(chan StepEvent, 16)
	if err := NewRunner(s, 0).Run(context.Background(), 5, events); err != nil {
		t.Fatalf("run: %v", err)
	}
	close(events)

	if s.Generation() != 5 {
		t.Fatalf("generation = %d, want 5", s.Generation())
	}
	if s.Running() {
		t.Fatal("runner should stop the session once the limit is reached")
	}
	gen := 0
	for ev := range events {
		gen++
		if ev.Generation != gen {
			t.Fatalf("event generation = %d, want %d", ev.Generation, gen)
		}
		if ev.Births != 2 || ev.Deaths != 2 {
			t.Fatalf("blinker step reported %+v", ev.StepResult)
		}
	}
	if gen != 5 {
		t.Fatalf("got %d events, want 5", gen)
	}
	checkInvariants(t, s)
}

func TestRunnerNoopWhenIdle(t *testing.T) {
	s := newTestSession(t, 6, 6)
	if err := NewRunner(s, 1000).Run(context.Background(), 3, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Generation() != 0 {
		t.Fatalf("idle session advanced to generation %d", s.Generation())
	}
}

func TestRunnerHonoursContext(t *testing.T) {
	s := newTestSession(t, 6, 6)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := NewRunner(s, 1).Run(ctx, 0, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if s.Generation() != 0 {
		t.Fatalf("no tick should have fired, generation = %d", s.Generation())
	}
}

func TestRunnerInterval(t *testing.T) {
	s := newTestSession(t, 2, 2)
	if got := NewRunner(s, 20).Interval(); got != 50*time.Millisecond {
		t.Fatalf("interval = %v, want 50ms", got)
	}
	if got := NewRunner(s, 0).Interval(); got != 0 {
		t.Fatalf("interval = %v, want 0", got)
	}
}
