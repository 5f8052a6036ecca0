// Package alert produces the audible reminder while the alert view is
// up. Each pulse walks an ordered chain of sound strategies until one
// succeeds; a platform denial falls through to the next strategy instead
// of propagating, and total failure is tolerated because the alert
// screen itself is still visible.
package alert

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/borgmon/colette/pkg/timing"
)

// PulseInterval is how often the chain is retried while alerting.
const PulseInterval = 3 * time.Second

// Strategy is one way of producing a sound. Play makes a single
// best-effort attempt and returns an error to let the chain fall
// through.
type Strategy interface {
	Name() string
	Play() error
}

// soundStopper is implemented by strategies that hold audio resources
// beyond a single Play call.
type soundStopper interface {
	StopSound()
}

// Signaler repeats the fallback chain every PulseInterval while the
// alerting check holds. At most one pulse loop exists at a time:
// starting again first fully stops the previous session.
type Signaler struct {
	clock      timing.Clock
	alerting   func() bool
	strategies []Strategy

	mu      sync.Mutex
	pulse   timing.Handle
	session string
}

func NewSignaler(clock timing.Clock, alerting func() bool, strategies ...Strategy) *Signaler {
	return &Signaler{
		clock:      clock,
		alerting:   alerting,
		strategies: strategies,
	}
}

// Start begins a new pulse session. The first pulse fires immediately;
// the repeating timer then checks the alerting state before every
// subsequent pulse and cancels itself the moment it no longer holds.
func (s *Signaler) Start() {
	s.Stop()

	s.mu.Lock()
	s.session = uuid.New().String()
	s.pulse = timing.Repeat(s.clock, PulseInterval, s.pulseTick)
	session := s.session
	s.mu.Unlock()

	log.Printf("Alert sound session %s started", session)
	s.playChain()
}

func (s *Signaler) pulseTick() {
	if !s.alerting() {
		s.Stop()
		return
	}
	s.playChain()
}

// playChain tries each strategy in order until one succeeds.
func (s *Signaler) playChain() {
	for _, strategy := range s.strategies {
		if err := strategy.Play(); err != nil {
			log.Printf("Sound strategy %s failed: %v", strategy.Name(), err)
			continue
		}
		return
	}
	log.Println("All sound strategies failed, alert stays visual only")
}

// Stop cancels the pulse timer and releases every held audio resource.
// Idempotent; called both when leaving the alert state and before any
// restart.
func (s *Signaler) Stop() {
	s.mu.Lock()
	pulse := s.pulse
	s.pulse = nil
	s.session = ""
	s.mu.Unlock()

	if pulse != nil {
		pulse.Stop()
	}
	for _, strategy := range s.strategies {
		if stopper, ok := strategy.(soundStopper); ok {
			stopper.StopSound()
		}
	}
}

// Active reports whether a pulse session is running.
func (s *Signaler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pulse != nil
}
