package kiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/borgmon/colette/pkg/clockface"
	"github.com/borgmon/colette/pkg/medication"
	"github.com/borgmon/colette/pkg/timing"
)

type fakeLedger struct {
	day    string
	set    bool
	setErr error
}

func (f *fakeLedger) Get() (string, bool) { return f.day, f.set }

func (f *fakeLedger) Set(day string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.day = day
	f.set = true
	return nil
}

type fakeSignaler struct {
	starts int
	stops  int
}

func (f *fakeSignaler) Start() { f.starts++ }
func (f *fakeSignaler) Stop()  { f.stops++ }

type recordingRenderer struct {
	clocks    []clockface.Snapshot
	views     []ViewState
	taken     []bool
	feedback  []bool
	confettis int
}

func (r *recordingRenderer) ShowClock(snap clockface.Snapshot) { r.clocks = append(r.clocks, snap) }
func (r *recordingRenderer) ShowView(view ViewState)           { r.views = append(r.views, view) }
func (r *recordingRenderer) ShowTakenToday(taken bool)         { r.taken = append(r.taken, taken) }
func (r *recordingRenderer) ShowConfirmFeedback(active bool)   { r.feedback = append(r.feedback, active) }
func (r *recordingRenderer) Confetti()                         { r.confettis++ }

type fixture struct {
	controller *Controller
	clock      *timing.FakeClock
	ledger     *fakeLedger
	signaler   *fakeSignaler
	renderer   *recordingRenderer
}

func newFixture(start time.Time, ledger *fakeLedger) *fixture {
	clock := timing.NewFakeClock(start)
	renderer := &recordingRenderer{}
	signaler := &fakeSignaler{}
	sched := medication.New("14:45", ledger)

	c := New(clock, ledger, sched, renderer)
	c.AttachSignaler(signaler)
	return &fixture{controller: c, clock: clock, ledger: ledger, signaler: signaler, renderer: renderer}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2024, 3, 4, hour, min, sec, 0, time.UTC)
}

func TestClockTicksEverySecond(t *testing.T) {
	f := newFixture(at(10, 0, 0), &fakeLedger{})
	f.controller.Start()

	f.clock.Advance(5 * time.Second)
	assert.Len(t, f.renderer.clocks, 6) // immediate tick plus five more
	assert.Equal(t, "10:00", f.renderer.clocks[0].Time)
}

func TestAlertFiresWhenClockReachesTarget(t *testing.T) {
	f := newFixture(at(14, 44, 30), &fakeLedger{})
	f.controller.Start()
	assert.Equal(t, ViewNormal, f.controller.View())

	f.clock.Advance(30 * time.Second)
	assert.Equal(t, ViewAlert, f.controller.View())
	assert.Equal(t, 1, f.signaler.starts)
	assert.Contains(t, f.renderer.views, ViewAlert)
}

func TestNoAlertWhenAlreadyTakenToday(t *testing.T) {
	today := clockface.DayKey(at(14, 45, 0))
	f := newFixture(at(14, 44, 30), &fakeLedger{day: today, set: true})
	f.controller.Start()

	f.clock.Advance(2 * time.Minute)
	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Zero(t, f.signaler.starts)
}

func TestStartupInsideTargetMinuteAlertsImmediately(t *testing.T) {
	f := newFixture(at(14, 45, 20), &fakeLedger{})
	f.controller.Start()

	assert.Equal(t, ViewAlert, f.controller.View())
	assert.Equal(t, 1, f.signaler.starts)
}

func TestStartupAfterTargetMinuteDoesNotRetroAlert(t *testing.T) {
	f := newFixture(at(14, 52, 0), &fakeLedger{})
	f.controller.Start()

	f.clock.Advance(5 * time.Minute)
	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Zero(t, f.signaler.starts)
}

func TestAlertPersistsUntilConfirmed(t *testing.T) {
	f := newFixture(at(14, 44, 59), &fakeLedger{})
	f.controller.Start()

	f.clock.Advance(time.Hour)
	assert.Equal(t, ViewAlert, f.controller.View())
	assert.Equal(t, 1, f.signaler.starts)
}

func TestConfirmFlow(t *testing.T) {
	f := newFixture(at(14, 44, 59), &fakeLedger{})
	f.controller.Start()
	f.clock.Advance(time.Second)
	assert.Equal(t, ViewAlert, f.controller.View())

	f.controller.Confirm()

	assert.True(t, f.ledger.set)
	assert.Equal(t, clockface.DayKey(f.clock.Now()), f.ledger.day)
	assert.GreaterOrEqual(t, f.signaler.stops, 1)
	assert.Equal(t, []bool{true}, f.renderer.feedback)
	assert.Equal(t, 1, f.renderer.confettis)
	// View reverts only after the feedback delay.
	assert.Equal(t, ViewAlert, f.controller.View())

	f.clock.Advance(2 * time.Second)
	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Equal(t, []bool{true, false}, f.renderer.feedback)
}

func TestNoSecondAlertSameDayAfterConfirm(t *testing.T) {
	f := newFixture(at(14, 44, 59), &fakeLedger{})
	f.controller.Start()
	f.clock.Advance(time.Second)
	f.controller.Confirm()
	f.clock.Advance(2 * time.Second)
	assert.Equal(t, ViewNormal, f.controller.View())

	// Remaining ticks inside the target minute must not re-alert.
	f.clock.Advance(time.Minute)
	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Equal(t, 1, f.signaler.starts)
}

func TestTakenTodayIndicatorFollowsLedger(t *testing.T) {
	ledger := &fakeLedger{}
	f := newFixture(at(10, 0, 0), ledger)
	f.controller.Start()
	assert.False(t, f.renderer.taken[len(f.renderer.taken)-1])

	ledger.Set(clockface.DayKey(f.clock.Now()))
	f.clock.Advance(time.Second)
	assert.True(t, f.renderer.taken[len(f.renderer.taken)-1])
}

func TestDoubleTapForcesAlert(t *testing.T) {
	f := newFixture(at(10, 0, 0), &fakeLedger{})
	f.controller.Start()

	f.controller.Tap()
	f.clock.Advance(100 * time.Millisecond)
	f.controller.Tap()
	f.clock.Advance(doubleTapWindow)

	assert.Equal(t, ViewAlert, f.controller.View())
	assert.Equal(t, 1, f.signaler.starts)
}

func TestSingleTapDoesNothing(t *testing.T) {
	f := newFixture(at(10, 0, 0), &fakeLedger{})
	f.controller.Start()

	f.controller.Tap()
	f.clock.Advance(time.Second)

	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Zero(t, f.signaler.starts)
}

func TestTripleTapDoesNothing(t *testing.T) {
	f := newFixture(at(10, 0, 0), &fakeLedger{})
	f.controller.Start()

	f.controller.Tap()
	f.controller.Tap()
	f.controller.Tap()
	f.clock.Advance(time.Second)

	assert.Equal(t, ViewNormal, f.controller.View())
	assert.Zero(t, f.signaler.starts)
}

func TestDoubleTapWhileAlertingDoesNotRestartSignaler(t *testing.T) {
	f := newFixture(at(14, 44, 59), &fakeLedger{})
	f.controller.Start()
	f.clock.Advance(time.Second)
	assert.Equal(t, ViewAlert, f.controller.View())

	f.controller.Tap()
	f.controller.Tap()
	f.clock.Advance(time.Second)
	assert.Equal(t, 1, f.signaler.starts)
}

func TestConfirmPersistFailureStillDismisses(t *testing.T) {
	// Launch inside the target minute so the alert is already up; the
	// feedback delay then carries the revert past the minute boundary.
	ledger := &fakeLedger{setErr: assert.AnError}
	f := newFixture(at(14, 45, 58), ledger)
	f.controller.Start()
	assert.Equal(t, ViewAlert, f.controller.View())

	f.controller.Confirm()
	f.clock.Advance(2 * time.Second)

	// The alert is dismissed even though nothing was persisted; the
	// ledger stays empty so tomorrow re-alerts (fail open).
	assert.Equal(t, ViewNormal, f.controller.View())
	assert.False(t, ledger.set)
}

func TestStopCancelsAllTimers(t *testing.T) {
	f := newFixture(at(14, 40, 0), &fakeLedger{})
	f.controller.Start()
	f.controller.Stop()

	ticks := len(f.renderer.clocks)
	f.clock.Advance(10 * time.Minute)
	assert.Len(t, f.renderer.clocks, ticks)
	assert.Equal(t, ViewNormal, f.controller.View())
}
