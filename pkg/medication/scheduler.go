// Package medication decides when the once-daily reminder should fire.
package medication

import (
	"sync"
	"time"

	"github.com/borgmon/colette/pkg/clockface"
)

// LedgerReader is the read side of the reminder ledger.
type LedgerReader interface {
	// Get returns the last confirmed calendar day, if any.
	Get() (string, bool)
}

// Scheduler compares the wall clock against the configured target time.
// It has two states, idle and alerting; once alerting it stays there
// until Acknowledge, so repeated checks within the target minute cannot
// re-fire.
//
// The match is string equality on the minute-granularity "HH:MM", which
// means a launch several minutes after the target time does not
// retroactively alert. That is deliberate: a reminder an hour late is
// worse than waiting for tomorrow's.
type Scheduler struct {
	target string
	ledger LedgerReader

	mu       sync.Mutex
	alerting bool
}

func New(target string, ledger LedgerReader) *Scheduler {
	return &Scheduler{target: target, ledger: ledger}
}

// ShouldAlert reports whether now is within the target minute and the
// medication has not been confirmed today. Pure decision, no state.
func (s *Scheduler) ShouldAlert(now time.Time) bool {
	snap := clockface.Format(now)
	if snap.Time != s.target {
		return false
	}
	taken, ok := s.ledger.Get()
	return !ok || taken != snap.Day
}

// Check runs the idle->alerting transition. It returns true exactly once
// per alert; further checks return false until Acknowledge.
func (s *Scheduler) Check(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alerting {
		return false
	}
	if !s.ShouldAlert(now) {
		return false
	}
	s.alerting = true
	return true
}

// Force latches the alerting state without a time match. Used by the
// manual double-tap trigger.
func (s *Scheduler) Force() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerting = true
}

// Acknowledge returns the scheduler to idle. Called on confirmation or
// when the view switches back to normal.
func (s *Scheduler) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerting = false
}

// Alerting reports whether the scheduler is currently latched.
func (s *Scheduler) Alerting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerting
}
