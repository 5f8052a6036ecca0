package timing

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a manually advanced Clock for tests. Timers fire in
// chronological order during Advance, and callbacks may schedule new
// timers, so self-rescheduling loops run to completion within the
// advanced window.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	nextID int
}

type fakeTimer struct {
	id      int
	when    time.Time
	fn      func()
	stopped bool
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	t := &fakeTimer{id: c.nextID, when: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return &fakeHandle{clock: c, timer: t}
}

// Advance moves the clock forward by d, firing every due timer in order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		if t.when.After(c.now) {
			c.now = t.when
		}
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of timers that are scheduled and not stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest unstopped timer at or before
// target. Caller holds the lock.
func (c *FakeClock) popDue(target time.Time) *fakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
	if len(c.timers) == 0 {
		return nil
	}

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].when.Equal(c.timers[j].when) {
			return c.timers[i].id < c.timers[j].id
		}
		return c.timers[i].when.Before(c.timers[j].when)
	})

	if c.timers[0].when.After(target) {
		return nil
	}
	t := c.timers[0]
	c.timers = c.timers[1:]
	return t
}

type fakeHandle struct {
	clock *FakeClock
	timer *fakeTimer
}

func (h *fakeHandle) Stop() {
	h.clock.mu.Lock()
	defer h.clock.mu.Unlock()
	h.timer.stopped = true
}
