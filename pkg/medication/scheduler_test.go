package medication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/borgmon/colette/pkg/clockface"
)

// fakeLedger is an in-memory LedgerReader.
type fakeLedger struct {
	day string
	set bool
}

func (f *fakeLedger) Get() (string, bool) { return f.day, f.set }

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 4, hour, min, 0, 0, time.UTC)
}

func TestCheckFiresAtTargetMinuteWhenNotTaken(t *testing.T) {
	s := New("14:45", &fakeLedger{})

	assert.False(t, s.Check(at(14, 44)))
	assert.True(t, s.Check(at(14, 45)))
	assert.True(t, s.Alerting())
}

func TestCheckDoesNotFireWhenTakenToday(t *testing.T) {
	today := clockface.DayKey(at(14, 45))
	s := New("14:45", &fakeLedger{day: today, set: true})

	assert.False(t, s.Check(at(14, 45)))
	assert.False(t, s.Alerting())
}

func TestCheckFiresWhenTakenOnEarlierDay(t *testing.T) {
	s := New("14:45", &fakeLedger{day: "2024-03-03", set: true})

	assert.True(t, s.Check(at(14, 45)))
}

func TestCheckFiresOnlyOncePerAlert(t *testing.T) {
	s := New("14:45", &fakeLedger{})

	assert.True(t, s.Check(at(14, 45)))
	// Second-granularity ticks within the same minute must not re-fire.
	assert.False(t, s.Check(at(14, 45)))
	assert.False(t, s.Check(at(14, 45).Add(30*time.Second)))
}

func TestAlertingPersistsUntilAcknowledge(t *testing.T) {
	s := New("14:45", &fakeLedger{})

	assert.True(t, s.Check(at(14, 45)))
	// No automatic timeout: still alerting long after the minute passed.
	assert.False(t, s.Check(at(16, 0)))
	assert.True(t, s.Alerting())

	s.Acknowledge()
	assert.False(t, s.Alerting())
}

func TestNoRetroactiveAlertAfterTargetMinute(t *testing.T) {
	s := New("14:45", &fakeLedger{})

	// App (re)started a few minutes late: the minute no longer matches.
	assert.False(t, s.Check(at(14, 48)))
	assert.False(t, s.Alerting())
}

func TestCheckCanFireAgainNextDayAfterAcknowledge(t *testing.T) {
	ledger := &fakeLedger{}
	s := New("14:45", ledger)

	assert.True(t, s.Check(at(14, 45)))
	s.Acknowledge()
	ledger.day = clockface.DayKey(at(14, 45))
	ledger.set = true

	nextDay := at(14, 45).AddDate(0, 0, 1)
	assert.True(t, s.Check(nextDay))
}

func TestForceLatchesWithoutTimeMatch(t *testing.T) {
	s := New("14:45", &fakeLedger{})

	s.Force()
	assert.True(t, s.Alerting())
	assert.False(t, s.Check(at(14, 45)))
}
