package domain

import "time"

// PaymentStatus is the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusNone     PaymentStatus = "none"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// allowedTransitions is the payment state machine.
// failed and refunded are terminal; a failed payment keeps its slots.
var allowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusNone:    {PaymentStatusPending},
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

// IsValid returns true for known statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusNone, PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to PaymentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentTransition is an audit record of one applied status change
type PaymentTransition struct {
	BookingID int64
	From      PaymentStatus
	To        PaymentStatus
	Amount    *float64
	Method    *string
	Reason    *string
	CreatedAt time.Time
}
