package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Booking is a committed reservation of one or more slots on a single court and date.
// Slots are not required to be contiguous.
type Booking struct {
	ID                  int64
	TurfID              int64
	CourtID             int64
	CustomerID          int64
	BookingDate         time.Time
	Slots               []types.TimeString // ascending
	SlotDurationMinutes int
	Game                string
	TeamSize            int

	PaymentStatus        PaymentStatus
	PaymentAmount        *float64
	PaymentMethod        *string
	PaymentFailureReason *string

	IdempotencyKey *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotKeys returns the ledger identities of every occupied slot
func (b *Booking) SlotKeys() []SlotKey {
	keys := make([]SlotKey, 0, len(b.Slots))
	date := b.BookingDate.Format(DateFormat)
	for _, s := range b.Slots {
		keys = append(keys, SlotKey{TurfID: b.TurfID, CourtID: b.CourtID, Date: date, Start: s})
	}
	return keys
}

// LedgerKey returns the (turf, court, date) partition of the booking
func (b *Booking) LedgerKey() string {
	return LedgerKey(b.TurfID, b.CourtID, b.BookingDate)
}

// TotalMinutes returns the booked play time
func (b *Booking) TotalMinutes() int {
	return len(b.Slots) * b.SlotDurationMinutes
}

// Clone returns a deep copy so that stored bookings are never shared with callers
func (b *Booking) Clone() *Booking {
	c := *b
	c.Slots = append([]types.TimeString(nil), b.Slots...)
	c.PaymentAmount = cloneFloat(b.PaymentAmount)
	c.PaymentMethod = cloneString(b.PaymentMethod)
	c.PaymentFailureReason = cloneString(b.PaymentFailureReason)
	c.IdempotencyKey = cloneString(b.IdempotencyKey)
	return &c
}

// TurfBookingsFilter selects bookings of a turf
type TurfBookingsFilter struct {
	TurfID  int64      // required
	CourtID *int64     // optional
	Date    *time.Time // optional, single day
}

// CustomerBookingsFilter selects bookings of a customer
type CustomerBookingsFilter struct {
	CustomerID int64  // required
	TurfID     *int64 // optional
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
