package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Callbacks run synchronously inside Advance.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	fake *Fake
	when time.Time
	seq  int
	f    func()
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{fake: c, when: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending reports how many callbacks are scheduled.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves time forward by d, firing due callbacks in deadline order. Callbacks
// scheduled while advancing fire too if they fall due before the target time.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.popDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.when
		c.mu.Unlock()

		next.f()
	}
}

func (c *Fake) popDueLocked(target time.Time) *fakeTimer {
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].when.Equal(c.pending[j].when) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].when.Before(c.pending[j].when)
	})
	first := c.pending[0]
	if first.when.After(target) {
		return nil
	}
	c.pending = c.pending[1:]
	return first
}

func (t *fakeTimer) Stop() bool {
	c := t.fake
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
