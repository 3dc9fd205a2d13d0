package paymentevents

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

// Routing keys published by the payment gateway
const (
	RKPaymentPaid     = "payment.paid"
	RKPaymentFailed   = "payment.failed"
	RKPaymentRefunded = "payment.refunded"
)

// DefaultBindings are the routing keys the queue is bound to
var DefaultBindings = []string{RKPaymentPaid, RKPaymentFailed, RKPaymentRefunded}

// Event is the payload of every payment event
type Event struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount,omitempty"`
	Method    string  `json:"method,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// targetStatus maps a routing key to the payment status it announces
func targetStatus(routingKey string) (domain.PaymentStatus, bool) {
	switch routingKey {
	case RKPaymentPaid:
		return domain.PaymentStatusPaid, true
	case RKPaymentFailed:
		return domain.PaymentStatusFailed, true
	case RKPaymentRefunded:
		return domain.PaymentStatusRefunded, true
	}
	return "", false
}

func decodeEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id is required", ErrMalformedEvent)
	}
	return &ev, nil
}
