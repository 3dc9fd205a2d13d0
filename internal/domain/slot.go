package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Slot is a derived bookable unit. Never stored on its own.
type Slot struct {
	TurfID          int64
	CourtID         int64
	Date            time.Time
	Start           types.TimeString
	DurationMinutes int
}

// Key returns the slot identity
func (s Slot) Key() SlotKey {
	return SlotKey{
		TurfID:  s.TurfID,
		CourtID: s.CourtID,
		Date:    s.Date.Format(DateFormat),
		Start:   s.Start,
	}
}

// End returns the slot end time
func (s Slot) End() (types.TimeString, error) {
	return s.Start.AddMinutes(s.DurationMinutes)
}

// SlotKey identifies a slot: two slots are the same if all four fields match
type SlotKey struct {
	TurfID  int64
	CourtID int64
	Date    string // YYYY-MM-DD
	Start   types.TimeString
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%d:%s:%s", k.TurfID, k.CourtID, k.Date, k.Start)
}

// LedgerKey returns the (turf, court, date) partition that serializes commits
func LedgerKey(turfID, courtID int64, date time.Time) string {
	return fmt.Sprintf("%d:%d:%s", turfID, courtID, date.Format(DateFormat))
}

// DateOnly strips the wall clock part, keeping the calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
