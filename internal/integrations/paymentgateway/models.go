package paymentgateway

// Status is the gateway payment state
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// IsKnown returns true for statuses this client understands
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Payment is the gateway view of a booking payment
type Payment struct {
	BookingID     int64   `json:"booking_id"`
	Status        Status  `json:"status"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	FailureReason string  `json:"failure_reason,omitempty"`
}
