// Package clock abstracts wall time and one-shot callbacks so timers can run on a
// single dispatch goroutine in production and on a fake clock in tests.
package clock

import "time"

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Stopper
}

// System is the Clock backed by package time.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Dispatching wraps base so that every AfterFunc callback is handed to dispatch
// rather than run on the runtime timer goroutine.
func Dispatching(base Clock, dispatch func(func())) Clock {
	return dispatchingClock{base: base, dispatch: dispatch}
}

type dispatchingClock struct {
	base     Clock
	dispatch func(func())
}

func (c dispatchingClock) Now() time.Time {
	return c.base.Now()
}

func (c dispatchingClock) AfterFunc(d time.Duration, f func()) Stopper {
	return c.base.AfterFunc(d, func() {
		c.dispatch(f)
	})
}
