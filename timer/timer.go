// Package timer implements a pausable countdown that reports remaining time on a
// periodic tick and signals completion once per run.
package timer

import (
	"time"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/clock"
)

type Option func(*Timer)

func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

func OnTick(fn func(remaining time.Duration)) Option {
	return func(t *Timer) {
		t.onTick = fn
	}
}

func OnFinish(fn func()) Option {
	return func(t *Timer) {
		t.onFinish = fn
	}
}

// Timer is not safe for concurrent use. Run it on the goroutine its clock dispatches
// callbacks to.
type Timer struct {
	clock    clock.Clock
	interval time.Duration
	onTick   func(time.Duration)
	onFinish func()

	duration  time.Duration
	elapsed   time.Duration
	startedAt time.Time // zero unless running
	status    cadence.Status

	// at most one scheduled tick; seq invalidates callbacks already in flight
	pending clock.Stopper
	seq     uint64
}

// New returns an idle timer for d. Callers clamp d to their own bounds.
func New(d time.Duration, clk clock.Clock, opts ...Option) *Timer {
	if clk == nil {
		clk = clock.System
	}
	t := &Timer{
		clock:    clk,
		interval: cadence.DefaultTickInterval,
		duration: d,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) Status() cadence.Status {
	return t.status
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Start starts or resumes the countdown. No-op while running.
func (t *Timer) Start() {
	if t.status == cadence.StatusRunning {
		return
	}
	t.status = cadence.StatusRunning
	t.startedAt = t.clock.Now()
	t.schedule()
}

// Pause folds the running span into elapsed time and stops ticking.
func (t *Timer) Pause() {
	if t.status != cadence.StatusRunning {
		return
	}
	t.elapsed += t.clock.Now().Sub(t.startedAt)
	t.startedAt = time.Time{}
	t.status = cadence.StatusPaused
	t.cancel()
}

// Reset returns to idle at the full duration and emits one tick with it.
func (t *Timer) Reset() {
	t.ResetTo(t.duration)
}

// ResetTo is Reset with a replacement duration.
func (t *Timer) ResetTo(d time.Duration) {
	t.clear()
	t.duration = d
	if t.onTick != nil {
		t.onTick(t.duration)
	}
}

// Stop cancels ticking and returns to idle without emitting anything. Owners call it
// when discarding a timer.
func (t *Timer) Stop() {
	t.clear()
}

// Remaining is never negative and is rounded to the millisecond.
func (t *Timer) Remaining() time.Duration {
	total := t.elapsed
	if t.status == cadence.StatusRunning {
		total += t.clock.Now().Sub(t.startedAt)
	}
	left := (t.duration - total).Round(time.Millisecond)
	return max(0, left)
}

func (t *Timer) clear() {
	t.cancel()
	t.elapsed = 0
	t.startedAt = time.Time{}
	t.status = cadence.StatusIdle
}

func (t *Timer) schedule() {
	t.cancel()
	seq := t.seq
	t.pending = t.clock.AfterFunc(t.interval, func() {
		if seq != t.seq {
			return
		}
		t.pending = nil
		t.tick()
	})
}

func (t *Timer) cancel() {
	t.seq++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func (t *Timer) tick() {
	left := t.Remaining()
	seq := t.seq
	if t.onTick != nil {
		t.onTick(left)
	}
	if seq != t.seq {
		// the tick handler reset or paused us
		return
	}
	if left > 0 {
		t.schedule()
		return
	}
	t.clear()
	if t.onFinish != nil {
		t.onFinish()
	}
}
