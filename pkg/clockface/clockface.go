// Package clockface turns an instant into the strings shown on the kiosk
// clock panel. Formatting is pure; the caller owns the tick timer.
package clockface

import (
	"fmt"
	"time"
)

// The display is deployed for a French-speaking household, so the names
// are fixed rather than locale-negotiated.
var dayNames = [7]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

var monthNames = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Snapshot is one rendered clock state.
type Snapshot struct {
	DayName   string // "dimanche".."samedi"
	DayNumber int    // 1..31
	MonthName string // "janvier".."décembre"
	Year      int
	Time      string // zero-padded 24h "HH:MM"
	Day       string // calendar-day key, comparable with ledger entries
}

// Format renders the given instant.
func Format(t time.Time) Snapshot {
	return Snapshot{
		DayName:   dayNames[int(t.Weekday())],
		DayNumber: t.Day(),
		MonthName: monthNames[int(t.Month())-1],
		Year:      t.Year(),
		Time:      fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()),
		Day:       DayKey(t),
	}
}

// DayKey returns the calendar-day string used for day-granularity
// comparisons (ledger entries, "taken today" checks).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthYear returns the combined month/year line of the date panel.
func (s Snapshot) MonthYear() string {
	return fmt.Sprintf("%s %d", s.MonthName, s.Year)
}
