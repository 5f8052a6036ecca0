// Package timing provides a small clock abstraction so that every
// repeating timer in the application is cancellable by handle and can be
// driven deterministically in tests.
package timing

import (
	"sync"
	"time"
)

// Handle refers to a pending or repeating task. Stop cancels it; stopping
// an already-stopped handle is a no-op.
type Handle interface {
	Stop()
}

// Clock abstracts wall-clock reads and one-shot timer creation.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Handle
}

// SystemClock is the real implementation backed by the time package.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) AfterFunc(d time.Duration, f func()) Handle {
	return &systemHandle{timer: time.AfterFunc(d, f)}
}

type systemHandle struct {
	timer *time.Timer
}

func (h *systemHandle) Stop() {
	h.timer.Stop()
}

// Repeat runs f every interval by rescheduling a one-shot timer after each
// run. The first run happens after one interval. Stopping the returned
// handle cancels the pending timer and prevents any further reschedule,
// even if a run was already queued.
func Repeat(c Clock, interval time.Duration, f func()) Handle {
	r := &repeater{clock: c, interval: interval, fn: f}
	r.mu.Lock()
	r.pending = c.AfterFunc(interval, r.run)
	r.mu.Unlock()
	return r
}

type repeater struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	pending Handle
	stopped bool
}

func (r *repeater) run() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.fn()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.pending = r.clock.AfterFunc(r.interval, r.run)
}

func (r *repeater) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	if r.pending != nil {
		r.pending.Stop()
	}
}
