package clock

import (
	"context"
	"errors"
)

var ErrLoopStopped = errors.New("loop stopped")

// Loop is a single-goroutine event queue. Everything posted runs in order on the
// goroutine calling Run.
type Loop struct {
	q    chan func()
	done chan struct{}
}

func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 1
	}
	return &Loop{
		q:    make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Post queues fn. It reports false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.q <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return. Must not be called from the loop
// goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clock returns base with callbacks dispatched onto the loop.
func (l *Loop) Clock(base Clock) Clock {
	return Dispatching(base, func(f func()) {
		_ = l.Post(f)
	})
}

// Run executes queued functions until ctx is done. Queued work left at that point is
// dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.q:
			fn()
		}
	}
}
