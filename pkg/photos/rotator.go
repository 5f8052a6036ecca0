// Package photos owns the background slideshow: an ordered photo list,
// a circular index, and the two alternating display slots used for
// crossfades.
package photos

import (
	"log"
	"sync"
	"time"

	"github.com/borgmon/colette/pkg/timing"
)

// Slot identifies one of the two alternating background layers. The next
// photo is preloaded on the inactive slot before it becomes visible.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

func (s Slot) other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

// Display is the rendering collaborator for the slideshow.
type Display interface {
	// Preload loads a photo into the given slot while it is off-screen.
	Preload(slot Slot, url string)
	// Activate makes the given slot the visible one.
	Activate(slot Slot)
}

// Rotator advances through the photo list on a fixed interval,
// independent of every other timer in the application.
type Rotator struct {
	photos   []string
	interval time.Duration
	clock    timing.Clock
	display  Display

	mu      sync.Mutex
	index   int
	active  Slot
	handle  timing.Handle
	started bool
}

func NewRotator(photos []string, interval time.Duration, clock timing.Clock, display Display) *Rotator {
	return &Rotator{
		photos:   photos,
		interval: interval,
		clock:    clock,
		display:  display,
	}
}

// Start shows the first photo and, if there is anything to rotate
// through, schedules the repeating advance. Zero photos shows nothing;
// a single photo stays up indefinitely with no timer at all.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	if len(r.photos) == 0 {
		log.Println("No photos configured, background stays empty")
		return
	}

	r.display.Preload(r.active, r.photos[0])
	r.display.Activate(r.active)

	if len(r.photos) > 1 {
		r.handle = timing.Repeat(r.clock, r.interval, r.Advance)
	}
}

// Advance moves to the next photo circularly: preload it on the inactive
// slot, then swap which slot is active.
func (r *Rotator) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.photos) <= 1 {
		return
	}

	r.index = (r.index + 1) % len(r.photos)
	next := r.active.other()
	r.display.Preload(next, r.photos[r.index])
	r.display.Activate(next)
	r.active = next

	log.Printf("Rotated to photo %d/%d", r.index+1, len(r.photos))
}

// Stop cancels the rotation timer.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle != nil {
		r.handle.Stop()
		r.handle = nil
	}
	r.started = false
}

// Index returns the current photo index.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}
