package store

import "log"

// ledgerKey is the single slot recording the calendar day on which the
// medication was last confirmed.
const ledgerKey = "lastMedicationTaken"

// Ledger is the durable record of the last confirmed medication day.
// One key, one value, no history.
type Ledger struct {
	db *DB
}

func NewLedger(db *DB) *Ledger {
	return &Ledger{db: db}
}

// Get returns the stored confirmation day and whether one exists. A
// storage error reads as absent so a broken database re-alerts rather
// than silently suppressing a needed reminder.
func (l *Ledger) Get() (string, bool) {
	data, err := l.db.GetBytes(ledgerKey)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			log.Printf("Ledger read failed, treating as not taken: %v", err)
		}
		return "", false
	}
	return string(data), true
}

// Set records the given day as confirmed, overwriting any previous value.
// Setting the same day twice is a no-op by effect.
func (l *Ledger) Set(day string) error {
	return l.db.SetBytes(ledgerKey, []byte(day))
}

// TakenOn reports whether the medication was confirmed on the given day.
func (l *Ledger) TakenOn(day string) bool {
	stored, ok := l.Get()
	return ok && stored == day
}
