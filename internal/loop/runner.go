package loop

import (
	"context"
	"errors"
	"time"
)

// ErrNoStep is returned by Run when the runner has no step function.
var ErrNoStep = errors.New("loop: step function is required")

// StepFunc advances the simulation by dt and reports whether the loop
// should keep running.
type StepFunc func(dt time.Duration) bool

// Runner schedules frames: on every tick it calls Step with the time since
// the previous tick and then Render. It stops as soon as Step returns false,
// after rendering that last frame, or when the context is cancelled.
type Runner struct {
	Clock    Clock
	Interval time.Duration
	Step     StepFunc
	Render   func()

	frames int
}

// NewRunner creates a runner ticking fps times per second on the system clock.
func NewRunner(fps int, step StepFunc) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{
		Clock:    SystemClock{},
		Interval: time.Second / time.Duration(fps),
		Step:     step,
	}
}

// Frames returns the number of frames stepped by the last Run.
func (r *Runner) Frames() int {
	return r.frames
}

// Run blocks until the step function stops the loop or ctx is done.
// It returns ctx.Err() on cancellation and nil otherwise. The ticker is
// always stopped before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if r.Step == nil {
		return ErrNoStep
	}
	clock := r.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	r.frames = 0
	last := clock.Now()
	for {
		// Cancellation wins over a ready tick
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C():
			dt := now.Sub(last)
			last = now

			r.frames++
			more := r.Step(dt)
			if r.Render != nil {
				r.Render()
			}
			if !more {
				return nil
			}
		}
	}
}
