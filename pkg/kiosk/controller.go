// Package kiosk coordinates the display: the clock tick, the medication
// checks, the view state and the confirmation flow. Rendering is pushed
// through the Renderer interface so the whole flow runs under a fake
// clock in tests.
package kiosk

import (
	"log"
	"sync"
	"time"

	"github.com/borgmon/colette/pkg/clockface"
	"github.com/borgmon/colette/pkg/medication"
	"github.com/borgmon/colette/pkg/timing"
)

// ViewState selects which of the two mutually exclusive screens is
// shown.
type ViewState int

const (
	ViewNormal ViewState = iota
	ViewAlert
)

const (
	// doubleTapWindow is how close together two taps must land to count
	// as the manual alert trigger.
	doubleTapWindow = 300 * time.Millisecond
	// confirmFeedbackDelay is how long the success affordance stays up
	// before the view reverts to normal.
	confirmFeedbackDelay = 2 * time.Second
)

// Renderer is the display collaborator. Implementations own the UI
// toolkit threading rules.
type Renderer interface {
	ShowClock(snap clockface.Snapshot)
	ShowView(view ViewState)
	ShowTakenToday(taken bool)
	ShowConfirmFeedback(active bool)
	Confetti()
}

// Ledger is the durable confirmation record.
type Ledger interface {
	Get() (string, bool)
	Set(day string) error
}

// Signaler is the sound loop started on alert and stopped on
// confirmation or view change.
type Signaler interface {
	Start()
	Stop()
}

// Controller owns the view state and every timer except the photo
// rotation, which runs independently.
type Controller struct {
	clock    timing.Clock
	ledger   Ledger
	sched    *medication.Scheduler
	renderer Renderer
	signaler Signaler

	mu         sync.Mutex
	view       ViewState
	tickHandle timing.Handle
	pollHandle timing.Handle
	tapCount   int
	tapTimer   timing.Handle
}

func New(clock timing.Clock, ledger Ledger, sched *medication.Scheduler, renderer Renderer) *Controller {
	return &Controller{
		clock:    clock,
		ledger:   ledger,
		sched:    sched,
		renderer: renderer,
	}
}

// AttachSignaler wires the sound loop. Separate from New because the
// signaler's alerting check closes over this controller.
func (c *Controller) AttachSignaler(s Signaler) {
	c.signaler = s
}

// Start renders the first tick immediately, then runs the one-second
// clock tick and the one-minute medication poll. The poll also checks
// right away, which covers a (re)launch that lands inside the target
// minute.
func (c *Controller) Start() {
	c.tick()

	c.mu.Lock()
	c.tickHandle = timing.Repeat(c.clock, time.Second, c.tick)
	c.pollHandle = timing.Repeat(c.clock, time.Minute, c.checkMedication)
	c.mu.Unlock()
}

// Stop cancels every timer this controller owns.
func (c *Controller) Stop() {
	c.mu.Lock()
	handles := []timing.Handle{c.tickHandle, c.pollHandle, c.tapTimer}
	c.tickHandle, c.pollHandle, c.tapTimer = nil, nil, nil
	c.tapCount = 0
	c.mu.Unlock()

	for _, h := range handles {
		if h != nil {
			h.Stop()
		}
	}
	if c.signaler != nil {
		c.signaler.Stop()
	}
}

// tick runs once per second: refresh the clock panel, the taken-today
// indicator, and piggyback a medication check.
func (c *Controller) tick() {
	snap := clockface.Format(c.clock.Now())
	c.renderer.ShowClock(snap)
	c.renderer.ShowTakenToday(c.takenOn(snap.Day))
	c.checkMedication()
}

func (c *Controller) takenOn(day string) bool {
	stored, ok := c.ledger.Get()
	return ok && stored == day
}

func (c *Controller) checkMedication() {
	if c.sched.Check(c.clock.Now()) {
		log.Println("Medication alert raised")
		c.raiseAlert()
	}
}

// raiseAlert starts the sound first, then flips the view, matching the
// order the scheduler's consumers expect (the signaler's first pulse is
// unconditional).
func (c *Controller) raiseAlert() {
	if c.signaler != nil {
		c.signaler.Start()
	}
	c.SwitchTo(ViewAlert)
}

// SwitchTo makes the given view the active one. Leaving the alert view
// releases the scheduler latch and silences the signaler.
func (c *Controller) SwitchTo(view ViewState) {
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()

	if view == ViewNormal {
		c.sched.Acknowledge()
		if c.signaler != nil {
			c.signaler.Stop()
		}
	}
	c.renderer.ShowView(view)
}

// View returns the active view.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// IsAlerting is the signaler's gate.
func (c *Controller) IsAlerting() bool {
	return c.View() == ViewAlert
}

// Confirm records today's medication as taken, silences the alert, and
// reverts to the normal view after the success affordance has had its
// moment.
func (c *Controller) Confirm() {
	day := clockface.DayKey(c.clock.Now())
	if err := c.ledger.Set(day); err != nil {
		// Still dismiss the alert; tomorrow fails open toward re-alerting.
		log.Printf("Failed to persist confirmation: %v", err)
	}

	if c.signaler != nil {
		c.signaler.Stop()
	}
	c.renderer.ShowConfirmFeedback(true)
	c.renderer.Confetti()

	c.clock.AfterFunc(confirmFeedbackDelay, func() {
		c.renderer.ShowConfirmFeedback(false)
		c.SwitchTo(ViewNormal)
	})
}

// Tap feeds the double-tap detector. Exactly two taps inside the window
// while the normal view is up force the alert; any other count is a
// no-op.
func (c *Controller) Tap() {
	c.mu.Lock()
	c.tapCount++
	first := c.tapCount == 1
	c.mu.Unlock()

	if first {
		c.mu.Lock()
		c.tapTimer = c.clock.AfterFunc(doubleTapWindow, c.tapWindowElapsed)
		c.mu.Unlock()
	}
}

func (c *Controller) tapWindowElapsed() {
	c.mu.Lock()
	count := c.tapCount
	c.tapCount = 0
	c.tapTimer = nil
	view := c.view
	c.mu.Unlock()

	if count == 2 && view == ViewNormal {
		log.Println("Double tap: forcing medication alert")
		c.sched.Force()
		c.raiseAlert()
	}
}
